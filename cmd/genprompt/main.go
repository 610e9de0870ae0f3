// Command genprompt writes a large synthetic user message to the prompt
// file read by fanout and stream.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kbukum/promptprobe"
	"github.com/kbukum/promptprobe/bootstrap"
	"github.com/kbukum/promptprobe/logger"
	"github.com/kbukum/promptprobe/prompt"
	"github.com/kbukum/promptprobe/version"
)

const toolName = "genprompt"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", toolName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	f := promptprobe.NewFlags(toolName)
	f.String("out", "", "prompt file to write (default prompt.json)")
	f.String("sentence", "", "sentence to repeat")
	f.Int("words", 0, "approximate number of words")
	f.Int("max-chars", 0, "character cap of the message")
	f.Bind("out", "prompt.path")
	f.Bind("sentence", "prompt.sentence")
	f.Bind("words", "prompt.words")
	f.Bind("max-chars", "prompt.max_chars")
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

	return app.RunTask(ctx, func(ctx context.Context) error {
		msg := prompt.Generate(prompt.Options{
			Sentence: cfg.Prompt.Sentence,
			Words:    cfg.Prompt.Words,
			MaxChars: cfg.Prompt.MaxChars,
		})
		if err := prompt.Save(cfg.Prompt.Path, msg); err != nil {
			return err
		}
		words := len(strings.Fields(msg.Content))
		app.Logger.Info("prompt written", logger.Fields(
			"path", cfg.Prompt.Path,
			logger.FieldChars, len(msg.Content),
			"words", words,
		))
		fmt.Fprintf(stdout, "Wrote %s: %d words, %d characters\n", cfg.Prompt.Path, words, len(msg.Content))
		return nil
	})
}
