// Package main provides the CLI entry point for pixelworker.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/pixelworker/pkg/config"
	"github.com/user/pixelworker/pkg/juxtapose"
	"github.com/user/pixelworker/pkg/pipeline"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:        "pixelworker",
		Usage:       l10n.T("Transform images with classic pixel-buffer algorithms"),
		Description: l10n.T("pixelworker scales, rotates and filters RGBA images on a background worker."),
		Version:     version,
		HideVersion: true,
		Commands: []*cli.Command{
			scaleCommand(),
			rotateCommand(),
			medianCommand(),
			convolveCommand(),
			runCommand(),
			batchCommand(),
			compareCommand(),
			versionCommand(),
		},
	}
}

// Flag categories
var (
	categoryOutput    = l10n.T("Output")
	categoryTransform = l10n.T("Transform")
	categoryExtras    = l10n.T("Reports and Comparison")
	categoryDebug     = l10n.T("Debug")
	categoryLogging   = l10n.T("Logging")
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "output",
		Aliases:  []string{"o"},
		Usage:    l10n.T("Output image path; the extension selects the format (required)"),
		Required: true,
		Category: categoryOutput,
	}
}

// commonFlags are shared by every command that writes an image.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:     "quality",
			Aliases:  []string{"q"},
			Usage:    l10n.T("JPEG output quality (1-100)"),
			Value:    config.Defaults().Quality,
			Category: categoryOutput,
		},
		&cli.BoolFlag{
			Name:     "no-auto-orient",
			Usage:    l10n.T("Ignore the EXIF orientation of the input"),
			Category: categoryOutput,
		},
		&cli.IntFlag{
			Name:     "queue-size",
			Usage:    l10n.T("Number of jobs that may wait on the worker"),
			Value:    config.Defaults().QueueSize,
			Category: categoryOutput,
		},
		&cli.StringFlag{
			Name:     "summary",
			Usage:    l10n.T("Output execution summary to file (Markdown format)"),
			Category: categoryExtras,
		},
		&cli.StringFlag{
			Name:     "compare",
			Usage:    l10n.T("Write a before/after comparison sheet (PNG)"),
			Category: categoryExtras,
		},
		&cli.BoolFlag{
			Name:     "debug",
			Aliases:  []string{"d"},
			Usage:    l10n.T("Save every intermediate step"),
			Category: categoryDebug,
		},
		&cli.StringFlag{
			Name:     "debug-dir",
			Usage:    l10n.T("Directory for debug output"),
			Value:    config.Defaults().DebugDir,
			Category: categoryDebug,
		},
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			Value:    "info",
			Category: categoryLogging,
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: categoryLogging,
		},
	}
}

func withCommon(flags ...cli.Flag) []cli.Flag {
	return append(flags, commonFlags()...)
}

func scaleCommand() *cli.Command {
	return &cli.Command{
		Name:      "scale",
		Usage:     l10n.T("Resize an image"),
		ArgsUsage: "<input>",
		Description: l10n.T("Resize an image to an explicit size or by a factor. " +
			"With only one of --width and --height the aspect ratio is kept."),
		Flags: withCommon(
			outputFlag(),
			&cli.StringFlag{
				Name:     "method",
				Aliases:  []string{"m"},
				Usage:    l10n.T("Scaling method (nearest, bilinear, kscale)"),
				Value:    "bilinear",
				Category: categoryTransform,
			},
			&cli.IntFlag{
				Name:     "width",
				Aliases:  []string{"W"},
				Usage:    l10n.T("Target width in pixels"),
				Category: categoryTransform,
			},
			&cli.IntFlag{
				Name:     "height",
				Aliases:  []string{"H"},
				Usage:    l10n.T("Target height in pixels"),
				Category: categoryTransform,
			},
			&cli.Float64Flag{
				Name:     "factor",
				Aliases:  []string{"k"},
				Usage:    l10n.T("Scale factor, overrides --width and --height"),
				Category: categoryTransform,
			},
		),
		Action: func(c *cli.Context) error {
			input, err := singleInput(c)
			if err != nil {
				return err
			}

			method := c.String("method")
			if op, ok := pipeline.ParseOp(method); !ok || !op.IsScale() {
				return cli.Exit(l10n.F("Unknown scaling method: %s", method), 2)
			}

			b := config.NewRecipeBuilder().WithInput(input).WithOutput(c.String("output"))
			if f := c.Float64("factor"); f > 0 {
				b.ScaleBy(method, f)
			} else {
				b.Scale(method, c.Int("width"), c.Int("height"))
			}
			return execute(c, applyCommon(c, b).Build())
		},
	}
}

func rotateCommand() *cli.Command {
	return &cli.Command{
		Name:        "rotate",
		Usage:       l10n.T("Rotate an image by any angle"),
		ArgsUsage:   "<input>",
		Description: l10n.T("Rotate an image about its center. The canvas grows to hold the rotated image; uncovered pixels are transparent."),
		Flags: withCommon(
			outputFlag(),
			&cli.Float64Flag{
				Name:     "angle",
				Aliases:  []string{"a"},
				Usage:    l10n.T("Rotation angle in degrees (-360 to 360)"),
				Required: true,
				Category: categoryTransform,
			},
		),
		Action: func(c *cli.Context) error {
			input, err := singleInput(c)
			if err != nil {
				return err
			}

			angle := c.Float64("angle")
			if angle < -config.MaxAngle || angle > config.MaxAngle {
				return cli.Exit(l10n.F("Angle must be between -360 and 360, got %v", angle), 2)
			}

			b := config.NewRecipeBuilder().WithInput(input).WithOutput(c.String("output")).Rotate(angle)
			return execute(c, applyCommon(c, b).Build())
		},
	}
}

func medianCommand() *cli.Command {
	return &cli.Command{
		Name:      "median",
		Usage:     l10n.T("Apply a 3x3 median filter"),
		ArgsUsage: "<input>",
		Flags:     withCommon(outputFlag()),
		Action: func(c *cli.Context) error {
			input, err := singleInput(c)
			if err != nil {
				return err
			}

			b := config.NewRecipeBuilder().WithInput(input).WithOutput(c.String("output")).Median()
			return execute(c, applyCommon(c, b).Build())
		},
	}
}

func convolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "convolve",
		Usage:     l10n.T("Apply a 3x3 convolution kernel"),
		ArgsUsage: "<input>",
		Flags: withCommon(
			outputFlag(),
			&cli.StringFlag{
				Name:     "kernel",
				Usage:    l10n.T("Nine comma separated weights in row-major order"),
				Value:    "1,1,1,1,1,1,1,1,1",
				Category: categoryTransform,
			},
		),
		Action: func(c *cli.Context) error {
			input, err := singleInput(c)
			if err != nil {
				return err
			}

			kernel, err := config.ParseKernel(c.String("kernel"))
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}

			b := config.NewRecipeBuilder().WithInput(input).WithOutput(c.String("output")).Convolve(kernel)
			return execute(c, applyCommon(c, b).Build())
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     l10n.T("Apply a multi-step recipe"),
		ArgsUsage: "<recipe.yaml>",
		Description: l10n.T("Apply the steps of a YAML recipe in order. " +
			"Flags given on the command line override the recipe."),
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    l10n.T("Input image path, overrides the recipe"),
				Category: categoryOutput,
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    l10n.T("Output image path, overrides the recipe"),
				Category: categoryOutput,
			},
		}, commonFlags()...),
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return cli.Exit(l10n.T("A recipe argument is required"), 2)
			}

			recipe, err := config.LoadFromFile(c.Args().First())
			if err != nil {
				return cli.Exit(l10n.F("Failed to load recipe: %s", err), 1)
			}
			if c.IsSet("input") {
				recipe.Input = c.String("input")
			}
			if c.IsSet("output") {
				recipe.Output = c.String("output")
			}
			overrideRecipe(c, &recipe)

			return execute(c, recipe)
		},
	}
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     l10n.T("Apply a recipe to many files"),
		ArgsUsage: "<recipe.yaml> <inputs...>",
		Description: l10n.T("Apply a YAML recipe to every input. Inputs may be glob patterns. " +
			"Files are processed in parallel, each by its own worker."),
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "out-dir",
				Usage:    l10n.T("Directory for the results (required)"),
				Required: true,
				Category: categoryOutput,
			},
			&cli.StringFlag{
				Name:     "ext",
				Usage:    l10n.T("Output extension, e.g. png (default: same as input)"),
				Category: categoryOutput,
			},
			&cli.IntFlag{
				Name:     "workers",
				Aliases:  []string{"w"},
				Usage:    l10n.T("Number of files processed in parallel"),
				Value:    config.Defaults().Workers,
				Category: categoryOutput,
			},
		}, commonFlags()...),
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 2 {
				return cli.Exit(l10n.T("A recipe and at least one input are required"), 2)
			}

			recipe, err := config.LoadFromFile(c.Args().First())
			if err != nil {
				return cli.Exit(l10n.F("Failed to load recipe: %s", err), 1)
			}
			overrideRecipe(c, &recipe)
			if c.IsSet("workers") {
				recipe.Workers = c.Int("workers")
			}

			return executeBatch(c, recipe, c.Args().Tail(), c.String("out-dir"), c.String("ext"))
		},
	}
}

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     l10n.T("Create a side-by-side comparison sheet"),
		ArgsUsage: "<before> <after>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    l10n.T("Output PNG file path (required)"),
				Required: true,
				Category: categoryOutput,
			},
			&cli.IntFlag{
				Name:     "gap",
				Usage:    l10n.T("Gap between images in pixels"),
				Value:    juxtapose.DefaultOptions().Gap,
				Category: categoryOutput,
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 2 {
				return cli.Exit(l10n.T("Two image arguments are required"), 2)
			}

			opts := juxtapose.DefaultOptions()
			opts.Gap = c.Int("gap")

			result, err := juxtapose.Combine(c.Args().Get(0), c.Args().Get(1), c.String("output"), opts)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			fmt.Println(l10n.F("Comparison saved to %s (%dx%d)", c.String("output"), result.Width, result.Height))
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Println(l10n.F("pixelworker version %s", version))
			return nil
		},
	}
}

func singleInput(c *cli.Context) (string, error) {
	if c.Args().Len() != 1 {
		return "", cli.Exit(l10n.T("An input image argument is required"), 2)
	}
	return c.Args().First(), nil
}

// applyCommon copies the shared flags onto a builder.
func applyCommon(c *cli.Context, b *config.RecipeBuilder) *config.RecipeBuilder {
	b.WithQuality(c.Int("quality")).
		WithAutoOrient(!c.Bool("no-auto-orient")).
		WithQueueSize(c.Int("queue-size")).
		WithSummary(c.String("summary")).
		WithCompare(c.String("compare"))
	if c.Bool("debug") {
		b.WithDebug(c.String("debug-dir"))
	}
	return b
}

// overrideRecipe applies shared flags that were set explicitly.
func overrideRecipe(c *cli.Context, r *config.Recipe) {
	if c.IsSet("quality") {
		r.Quality = c.Int("quality")
	}
	if c.IsSet("no-auto-orient") {
		r.AutoOrient = !c.Bool("no-auto-orient")
	}
	if c.IsSet("queue-size") {
		r.QueueSize = c.Int("queue-size")
	}
	if c.IsSet("summary") {
		r.Summary = c.String("summary")
	}
	if c.IsSet("compare") {
		r.Compare.Path = c.String("compare")
	}
	if c.IsSet("debug") {
		r.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		r.DebugDir = c.String("debug-dir")
	}
}
