package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	paypal "github.com/hartenfels/beancount-paypal"
	"github.com/hartenfels/beancount-paypal/formatter"
	"github.com/hartenfels/beancount-paypal/telemetry"
)

type ExtractCmd struct {
	ImporterFlags

	File   string `help:"PayPal CSV file to extract." arg:"" type:"existingfile"`
	Output string `help:"Write output to a file instead of stdout." short:"o" type:"path"`
	Force  bool   `help:"Overwrite the output file without confirmation." short:"f"`
	Watch  bool   `help:"Keep running and re-extract whenever the input file changes." short:"w"`
}

func (cmd *ExtractCmd) Run(ctx *kong.Context, globals *Globals) error {
	imp, err := cmd.Importer()
	if err != nil {
		return err
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr)
		}()
	}

	if cmd.Output != "" && !cmd.Force {
		if _, err := os.Stat(cmd.Output); err == nil {
			overwrite, err := promptYesNo(fmt.Sprintf("Overwrite %s?", cmd.Output))
			if err != nil {
				return err
			}
			if !overwrite {
				printError(ctx.Stderr, fmt.Sprintf("%s already exists (use --force to overwrite)", cmd.Output))
				return NewCommandError(1)
			}
		}
	}

	if err := cmd.extractOnce(runCtx, imp, ctx); err != nil {
		return err
	}

	if !cmd.Watch {
		return nil
	}

	return cmd.watch(runCtx, imp, ctx)
}

// extractOnce runs a single extraction and writes the formatted directives.
func (cmd *ExtractCmd) extractOnce(runCtx context.Context, imp *paypal.Importer, ctx *kong.Context) error {
	f, err := os.Open(cmd.File)
	if err != nil {
		return err
	}
	defer f.Close()

	directives, err := imp.Extract(runCtx, cmd.File, f)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	if cmd.Output == "" {
		return formatter.New().Format(directives, ctx.Stdout)
	}

	out, err := os.Create(cmd.Output)
	if err != nil {
		return err
	}

	if err := formatter.New().Format(directives, out); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("wrote %d directive(s) to %s", len(directives), cmd.Output))
	return nil
}

// watch re-extracts whenever the input file changes, until interrupted.
// Editors and PayPal re-downloads tend to produce bursts of events, so
// changes are debounced before re-running.
func (cmd *ExtractCmd) watch(runCtx context.Context, imp *paypal.Importer, ctx *kong.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cmd.File); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cmd.File, err)
	}

	printInfof(ctx.Stderr, "watching %s for changes (ctrl-c to stop)", cmd.File)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	var debounce *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(100 * time.Millisecond)
				fire = debounce.C
			} else {
				debounce.Reset(100 * time.Millisecond)
			}

		case <-fire:
			debounce = nil
			fire = nil

			// A failed extraction should not end the watch; the user is
			// likely mid-edit and the next change may fix it.
			if err := cmd.extractOnce(runCtx, imp, ctx); err != nil {
				printError(ctx.Stderr, "extraction failed, still watching")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, fmt.Sprintf("watch error: %v", err))

		case <-interrupt:
			return nil
		}
	}
}
