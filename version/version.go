package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// Set with -ldflags "-X github.com/kbukum/promptprobe/version.Version=...".
var (
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
	GoVersion = ""
)

const shortCommit = 7

// Info is the build identity reported by --version and the mock's /version.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit,omitempty"`
	GitBranch string    `json:"git_branch,omitempty"`
	BuildTime string    `json:"build_time"`
	GoVersion string    `json:"go_version"`
	BuildDate time.Time `json:"build_date"`
	IsRelease bool      `json:"is_release"`
	IsDirty   bool      `json:"is_dirty"`
}

// Get merges the ldflags variables with the VCS stamp the go tool embeds.
// Values set through ldflags win.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		IsRelease: Version != "dev" && !strings.Contains(Version, "dirty"),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		applyBuildInfo(&info, bi)
	}
	if info.GoVersion == "" {
		info.GoVersion = runtime.Version()
	}
	if t, err := time.Parse(time.RFC3339, info.BuildTime); err == nil {
		info.BuildDate = t
	} else {
		info.BuildDate = time.Now().UTC()
		info.BuildTime = info.BuildDate.Format(time.RFC3339)
	}
	return info
}

func applyBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.GoVersion == "" {
		info.GoVersion = bi.GoVersion
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value[:min(len(s.Value), shortCommit)]
			}
		case "vcs.modified":
			info.IsDirty = s.Value == "true"
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		}
	}
}

// Short is "version[-commit][-dirty]".
func Short() string {
	info := Get()
	parts := []string{info.Version}
	if info.GitCommit != "" {
		parts = append(parts, info.GitCommit)
		if info.IsDirty {
			parts = append(parts, "dirty")
		}
	}
	return strings.Join(parts, "-")
}

// Full adds a non-default branch and the build date to Short.
func Full() string {
	info := Get()
	parts := []string{info.Version}
	if info.GitCommit != "" {
		parts = append(parts, info.GitCommit)
	}
	if b := info.GitBranch; b != "" && b != "main" && b != "master" {
		parts = append(parts, b)
	}
	if info.IsDirty {
		parts = append(parts, "dirty")
	}
	return fmt.Sprintf("%s (built %s)", strings.Join(parts, "-"), info.BuildDate.Format(time.RFC3339))
}

// Line formats the --version output of tool, e.g.
// "fanout v1.2.0-3f9c2a1 (built 2026-01-02T15:04:05Z) go1.26.0 linux/amd64".
func Line(tool string) string {
	return fmt.Sprintf("%s %s %s %s/%s", tool, Full(), Get().GoVersion, runtime.GOOS, runtime.GOARCH)
}
