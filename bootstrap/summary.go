package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kbukum/promptprobe/component"
	"github.com/kbukum/promptprobe/observability"
)

// Summary tracks and displays the tool's startup.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
}

// NewSummary creates a new bootstrap summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Display writes the summary to w: describable components, the routes of
// any RouteProvider, and live health from the registry.
func (s *Summary) Display(ctx context.Context, w io.Writer, registry *component.Registry) {
	fmt.Fprintf(w, "\n%s %s started in %.2fs\n", s.serviceName, s.version, s.startupDuration.Seconds())
	if registry == nil {
		fmt.Fprintln(w)
		return
	}

	all := registry.All()
	if len(all) == 0 {
		fmt.Fprintf(w, "   └── No components registered\n\n")
		return
	}

	var routes []component.Route
	fmt.Fprintf(w, "\nComponents\n")
	for i, c := range all {
		desc := component.Description{Name: c.Name()}
		if d, ok := c.(component.Describable); ok {
			desc = d.Describe()
			if desc.Name == "" {
				desc.Name = c.Name()
			}
		}
		line := desc.Name
		if desc.Type != "" {
			line += " [" + desc.Type + "]"
		}
		if desc.Details != "" {
			line += ": " + desc.Details
		}
		if desc.Port > 0 {
			line += fmt.Sprintf(" (:%d)", desc.Port)
		}
		fmt.Fprintf(w, "   %s %s\n", treePrefix(i, len(all)), line)

		if rp, ok := c.(component.RouteProvider); ok {
			routes = append(routes, rp.Routes()...)
		}
	}

	if len(routes) > 0 {
		fmt.Fprintf(w, "\nRoutes (%d)\n", len(routes))
		for i, r := range routes {
			fmt.Fprintf(w, "   %s %-7s %s → %s\n", treePrefix(i, len(routes)), r.Method, r.Path, r.Handler)
		}
	}

	health := registry.HealthAll(ctx)
	fmt.Fprintf(w, "\nHealth\n")
	for i, h := range health {
		msg := ""
		if h.Message != "" {
			msg = " (" + h.Message + ")"
		}
		fmt.Fprintf(w, "   %s %s %s: %s%s\n", treePrefix(i, len(health)), healthStatusIcon(h.Status), h.Name, strings.ToLower(string(h.Status)), msg)
	}
	fmt.Fprintln(w)
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthStatusIcon(status observability.HealthStatus) string {
	switch status {
	case observability.HealthStatusUp:
		return "✅"
	case observability.HealthStatusDegraded:
		return "⚠️"
	case observability.HealthStatusDown:
		return "❌"
	default:
		return "❓"
	}
}
