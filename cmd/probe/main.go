// Command probe checks how a provider handles streaming, function calling,
// and structured output.
//
//	probe --test 2       run one probe
//	probe --all          run the whole suite
//	probe                choose from a menu
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/promptprobe"
	"github.com/kbukum/promptprobe/bootstrap"
	"github.com/kbukum/promptprobe/config"
	"github.com/kbukum/promptprobe/llm"
	"github.com/kbukum/promptprobe/observability"
	"github.com/kbukum/promptprobe/probe"
	"github.com/kbukum/promptprobe/provider"
	"github.com/kbukum/promptprobe/version"
)

const toolName = "probe"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", toolName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	f := promptprobe.NewFlags(toolName).WithAPIFlags()
	test := f.Int("test", 0, "test to run: 1 base case, 2 function calling, 3 parameter case, 4 structured output")
	all := f.Bool("all", false, "run all tests")
	f.Bind("test", config.SkipFlag)
	f.Bind("all", config.SkipFlag)
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
	if *test != 0 && (*test < probe.BaseCase || *test > probe.StructuredOutput) {
		return fmt.Errorf("--test must be one of 1, 2, 3, 4 (got %d)", *test)
	}

	cfg, err := promptprobe.Load(toolName, f)
	if err != nil {
		return err
	}
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}

	shutdown, err := observability.Setup(ctx, cfg.Name, app.Version, cfg.Environment, cfg.Telemetry)
	if err != nil {
		return err
	}
	app.OnStop(bootstrap.Hook(shutdown))

	adapter, err := cfg.NewUnsampledAdapter(app.Logger)
	if err != nil {
		return err
	}
	if err := app.RegisterComponent(llm.NewComponent(adapter, false)); err != nil {
		return err
	}

	otelMetrics, err := observability.NewMetrics(observability.Meter(toolName))
	if err != nil {
		return err
	}
	suite := probe.NewSuite(adapter, stdout,
		probe.WithLogger(app.Logger),
		probe.WithMiddleware(
			provider.WithLogging[llm.CompletionRequest, llm.CompletionResponse](app.Logger),
			provider.WithTracing[llm.CompletionRequest, llm.CompletionResponse](cfg.Name),
			provider.WithMetrics[llm.CompletionRequest, llm.CompletionResponse](otelMetrics),
		),
	)
	return app.RunTask(ctx, func(ctx context.Context) error {
		switch {
		case *test != 0:
			_ = suite.Run(ctx, *test)
		case *all:
			suite.RunAll(ctx)
		default:
			return suite.Menu(ctx, stdin)
		}
		return nil
	})
}
