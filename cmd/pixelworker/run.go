package main

import (
	"fmt"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/pixelworker/pkg/adapters/filesink"
	"github.com/user/pixelworker/pkg/adapters/ggrenderer"
	"github.com/user/pixelworker/pkg/adapters/imagecodec"
	"github.com/user/pixelworker/pkg/adapters/logger"
	"github.com/user/pixelworker/pkg/adapters/nullsink"
	"github.com/user/pixelworker/pkg/adapters/osfilesystem"
	"github.com/user/pixelworker/pkg/batch"
	"github.com/user/pixelworker/pkg/config"
	"github.com/user/pixelworker/pkg/dispatcher"
	"github.com/user/pixelworker/pkg/juxtapose"
	"github.com/user/pixelworker/pkg/orchestrator"
	"github.com/user/pixelworker/pkg/ports"
	"github.com/user/pixelworker/pkg/summarizer"
	"github.com/user/pixelworker/pkg/worker"
)

// newLogger creates the logger selected by --quiet and --log-level.
func newLogger(c *cli.Context) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
}

// processor bundles a worker with the orchestrator that drives it.
type processor struct {
	worker *worker.Worker
	orch   *orchestrator.Orchestrator
}

func newProcessor(recipe config.Recipe, fs ports.FileSystem, sink ports.DebugSink, log ports.Logger) *processor {
	w := worker.New(dispatcher.New(log), log, worker.Options{QueueSize: recipe.QueueSize})
	codec := imagecodec.New(recipe.AutoOrient)
	return &processor{
		worker: w,
		orch:   orchestrator.New(w, codec, fs, sink, log),
	}
}

// execute runs a single-file recipe and writes the optional extras.
func execute(c *cli.Context, recipe config.Recipe) error {
	log := newLogger(c)
	ctx := c.Context

	if err := recipe.Validate(); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	orchConfig, err := recipe.ToOrchestratorConfig("", "")
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	if orchConfig.InputPath == "" || orchConfig.OutputPath == "" {
		return cli.Exit(l10n.T("Both an input and an output path are required"), 2)
	}

	fs := osfilesystem.New()
	sink, err := newSink(recipe, fs)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	proc := newProcessor(recipe, fs, sink, log)
	defer proc.worker.Close()

	result, runErr := proc.orch.Run(ctx, orchConfig)
	if runErr != nil && ctx.Err() != nil {
		log.Warn("Interrupted, shutting down...")
	}

	if recipe.Summary != "" {
		run := summarizer.RunFromResult(result)
		if runErr != nil {
			run = summarizer.FailedRun(orchConfig.InputPath, orchConfig.OutputPath, runErr)
		}
		summary := summarizer.NewBuilder().
			WithSettings(settings(c.Command.Name, recipe)).
			AddRun(run).
			Build()
		if err := writeSummary(fs, recipe.Summary, summary); err != nil {
			log.Error("Failed to write summary: %s", err)
		} else {
			log.Info("Summary saved to %s", recipe.Summary)
		}
	}

	if runErr != nil {
		return cli.Exit(runErr.Error(), 1)
	}

	if recipe.Compare.Path != "" {
		stage := juxtapose.New(ggrenderer.New(), imagecodec.New(false), fs, log, compareOptions(recipe))
		sheet, err := stage.Execute(ctx, juxtapose.Input{
			Before:     result.Source,
			After:      result.Output,
			OutputPath: recipe.Compare.Path,
		})
		if err != nil {
			return cli.Exit(l10n.F("Failed to write comparison: %s", err), 1)
		}
		log.Info("Comparison saved to %s (%dx%d)", recipe.Compare.Path, sheet.Width, sheet.Height)
	}

	return nil
}

// executeBatch runs recipe over every file matched by patterns.
func executeBatch(c *cli.Context, recipe config.Recipe, patterns []string, outDir, ext string) error {
	log := newLogger(c)
	ctx := c.Context

	if err := recipe.Validate(); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	base, err := recipe.ToOrchestratorConfig("", "")
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	fs := osfilesystem.New()
	inputs, err := expandInputs(fs, patterns)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if len(inputs) == 0 {
		return cli.Exit(l10n.T("No input files matched"), 1)
	}
	if err := fs.MkdirAll(outDir); err != nil {
		return cli.Exit(l10n.F("Failed to create output directory: %s", err), 1)
	}

	sink := nullsink.New()
	runner := batch.New(func() (batch.Processor, func() error) {
		p := newProcessor(recipe, fs, sink, log)
		return p.orch, p.worker.Close
	}, log, recipe.Workers)

	result, runErr := runner.Run(ctx, base, batch.Plan(inputs, outDir, ext))
	if ctx.Err() != nil {
		log.Warn("Interrupted, shutting down...")
	}

	if recipe.Summary != "" {
		b := summarizer.NewBuilder().WithSettings(settings(c.Command.Name, recipe))
		for _, item := range result.Items {
			if item.Err != nil {
				b.AddRun(summarizer.FailedRun(item.Item.Input, item.Item.Output, item.Err))
				continue
			}
			b.AddResult(item.Result)
		}
		if err := writeSummary(fs, recipe.Summary, b.Build()); err != nil {
			log.Error("Failed to write summary: %s", err)
		} else {
			log.Info("Summary saved to %s", recipe.Summary)
		}
	}

	if runErr != nil {
		return cli.Exit(l10n.F("%d of %d files failed: %s", result.Failed, len(result.Items), runErr), 1)
	}
	return nil
}

// expandInputs resolves glob patterns. A pattern without matches is kept
// as a literal path so a missing file is reported by the batch.
func expandInputs(fs ports.FileSystem, patterns []string) ([]string, error) {
	var inputs []string
	seen := make(map[string]bool)
	for _, p := range patterns {
		matches, err := fs.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", p, err)
		}
		if len(matches) == 0 {
			matches = []string{p}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				inputs = append(inputs, m)
			}
		}
	}
	return inputs, nil
}

func newSink(recipe config.Recipe, fs ports.FileSystem) (ports.DebugSink, error) {
	if !recipe.Debug {
		return nullsink.New(), nil
	}
	if err := fs.MkdirAll(recipe.DebugDir); err != nil {
		return nil, fmt.Errorf("create debug directory: %w", err)
	}
	return filesink.New(recipe.DebugDir, fs, imagecodec.New(false)), nil
}

func compareOptions(recipe config.Recipe) juxtapose.Options {
	opts := juxtapose.DefaultOptions()
	opts.Gap = recipe.Compare.Gap
	opts.BeforeLabel = l10n.T("Before")
	opts.AfterLabel = l10n.T("After")
	theme := recipe.Compare.Theme
	if theme.BackgroundColor != "" {
		opts.Background = config.ParseColor(theme.BackgroundColor)
	}
	if theme.TextColor != "" {
		opts.TextColor = config.ParseColor(theme.TextColor)
	}
	if theme.BorderColor != "" {
		opts.BorderColor = config.ParseColor(theme.BorderColor)
	}
	return opts
}

func settings(command string, recipe config.Recipe) summarizer.Settings {
	return summarizer.Settings{
		Command:    command,
		Quality:    recipe.Quality,
		AutoOrient: recipe.AutoOrient,
		Workers:    recipe.Workers,
		QueueSize:  recipe.QueueSize,
	}
}

func writeSummary(fs ports.FileSystem, path string, summary *summarizer.Summary) error {
	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	return summarizer.NewWriter(formatter, fs).Write(path, summary)
}
