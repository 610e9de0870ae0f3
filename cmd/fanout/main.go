// Command fanout sends the prompt file to a chat-completion endpoint N times
// at once and prints every response in submission order.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/kbukum/promptprobe"
	"github.com/kbukum/promptprobe/bootstrap"
	"github.com/kbukum/promptprobe/fanout"
	"github.com/kbukum/promptprobe/llm"
	"github.com/kbukum/promptprobe/logger"
	"github.com/kbukum/promptprobe/metrics"
	"github.com/kbukum/promptprobe/observability"
	"github.com/kbukum/promptprobe/prompt"
	"github.com/kbukum/promptprobe/util"
	"github.com/kbukum/promptprobe/version"
)

const toolName = "fanout"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", toolName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	f := promptprobe.NewFlags(toolName).WithAPIFlags()
	f.IntP("count", "n", 0, "number of concurrent submissions (default 5)")
	f.Int("concurrency", 0, "maximum submissions in flight; 0 sends all at once")
	f.Bool("stream", true, "accumulate streamed deltas instead of one JSON body")
	f.Bool("live", false, "print each fragment as \"[i] fragment\" while streams are open")
	f.String("prompt", "", "prompt file (default prompt.json)")
	f.String("metrics-textfile", "", "write a Prometheus textfile report to this path")
	f.Bind("count", "fanout.count")
	f.Bind("concurrency", "fanout.concurrency")
	f.Bind("stream", "fanout.stream")
	f.Bind("live", "fanout.live")
	f.Bind("prompt", "prompt.path")
	f.Bind("metrics-textfile", "metrics.textfile")
	if err := f.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if f.ShowVersion {
		fmt.Fprintln(stdout, version.Line(toolName))
		return nil
	}

	cfg, err := promptprobe.Load(toolName, f)
	if err != nil {
		return err
	}
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}

	msg, err := prompt.Load(cfg.Prompt.Path)
	if err != nil {
		return err
	}

	shutdown, err := observability.Setup(ctx, cfg.Name, app.Version, cfg.Environment, cfg.Telemetry)
	if err != nil {
		return err
	}
	app.OnStop(bootstrap.Hook(shutdown))

	adapter, err := cfg.NewAdapter(app.Logger)
	if err != nil {
		return err
	}
	if err := app.RegisterComponent(llm.NewComponent(adapter, false)); err != nil {
		return err
	}

	report := metrics.NewReport(cfg.Name, cfg.API.Model)
	if cfg.Metrics.Textfile != "" {
		app.OnStop(func(context.Context) error {
			return report.WriteTextfile(cfg.Metrics.Textfile)
		})
	}
	otelMetrics, err := observability.NewMetrics(observability.Meter(toolName))
	if err != nil {
		return err
	}

	out := fanout.NewSyncWriter(stdout)
	opts := fanout.CompletionOptions{Stream: cfg.FanOut.Stream}
	if cfg.FanOut.Live && cfg.FanOut.Stream {
		opts.OnFragment = func(index int, fragment string) {
			out.Printf("[%d] %s\n", index+1, fragment)
		}
	}

	return app.RunTask(ctx, func(ctx context.Context) error {
		app.Logger.Info("sending", logger.Fields(
			logger.FieldCount, cfg.FanOut.Count,
			logger.FieldModel, cfg.API.Model,
			logger.FieldEndpoint, cfg.API.BaseURL,
			"key", util.MaskSecret(cfg.API.Key, 4),
			"temperature", util.Deref(cfg.Sampling.Temperature),
			"stream", cfg.FanOut.Stream,
		))

		start := time.Now()
		results, err := fanout.Run(ctx, cfg.FanOut.Count,
			fanout.CompletionTask(adapter, cfg.Request(msg), opts),
			fanout.WithConcurrency(cfg.FanOut.Concurrency),
			fanout.WithObserver(report),
			fanout.WithObserver(otelMetrics),
			fanout.WithLogger(app.Logger),
		)
		if err != nil {
			return err
		}

		failed := printResults(out, results)
		app.Logger.Info("done", logger.Fields(
			logger.FieldCount, len(results),
			"failed", failed,
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
		return nil
	})
}

// printResults writes one "Response i: ..." line per submission, numbered
// from 1 in submission order, and returns how many failed.
func printResults(w io.Writer, results []fanout.Result[string]) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "Response %d: error: %v\n", r.Index+1, r.Err)
			continue
		}
		fmt.Fprintf(w, "Response %d: %s\n", r.Index+1, r.Value)
	}
	return failed
}
