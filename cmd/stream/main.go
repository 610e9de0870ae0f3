// Command stream sends the prompt file as one streaming chat completion and
// prints the text as it arrives.
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
	"github.com/kbukum/promptprobe/logger"
	"github.com/kbukum/promptprobe/observability"
	"github.com/kbukum/promptprobe/prompt"
	"github.com/kbukum/promptprobe/render"
	"github.com/kbukum/promptprobe/version"
)

const toolName = "stream"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", toolName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	f := promptprobe.NewFlags(toolName).WithAPIFlags()
	f.String("prompt", "", "prompt file (default prompt.json)")
	f.String("system", "", "system prompt sent ahead of the prompt file")
	renderMD := f.Bool("render", false, "re-render the final answer as markdown")
	style := f.String("style", render.StyleAuto, "markdown style: auto, dark, light, notty")
	f.Bind("prompt", "prompt.path")
	f.Bind("system", "prompt.system")
	f.Bind("render", config.SkipFlag)
	f.Bind("style", config.SkipFlag)
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

	var renderer *render.Renderer
	if *renderMD {
		if renderer, err = render.New(render.DefaultWidth, *style); err != nil {
			return err
		}
	}

	return app.RunTask(ctx, func(ctx context.Context) error {
		text, err := streamOnce(ctx, adapter, cfg.Request(msg), stdout)
		if err != nil {
			app.Logger.Warn("stream failed", logger.ErrorFields("stream", err))
			fmt.Fprintf(stdout, "Error: %v\n", err)
			return nil
		}
		app.Logger.Debug("stream finished", logger.Fields(logger.FieldChars, len(text)))
		if renderer != nil {
			fmt.Fprint(stdout, renderer.Render(text))
		}
		return nil
	})
}

// streamOnce prints every fragment without a newline, then ends the line.
// The text received before a failure is returned along with the error.
func streamOnce(ctx context.Context, c streamer, req llm.CompletionRequest, w io.Writer) (string, error) {
	ch, err := c.Stream(ctx, req)
	if err != nil {
		return "", err
	}
	text, err := llm.CollectFunc(ch, func(fragment string) {
		_, _ = io.WriteString(w, fragment)
	})
	fmt.Fprintln(w)
	return text, err
}

type streamer interface {
	Stream(ctx context.Context, req llm.CompletionRequest) (<-chan llm.StreamChunk, error)
}
