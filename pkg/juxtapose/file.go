package juxtapose

import (
	"context"
	"fmt"
	"image"

	"github.com/user/pixelworker/pkg/adapters/ggrenderer"
	"github.com/user/pixelworker/pkg/adapters/imagecodec"
	"github.com/user/pixelworker/pkg/adapters/logger"
	"github.com/user/pixelworker/pkg/adapters/osfilesystem"
	"github.com/user/pixelworker/pkg/ports"
)

// Combine writes a comparison sheet of two image files to outputPath.
// This is a convenience function that uses default adapters.
// For custom dependencies (e.g., custom logger), use the Stage API instead.
//
// Example using Stage API with custom logger:
//
//	stage := juxtapose.New(
//	    ggrenderer.New(),
//	    imagecodec.New(true),
//	    osfilesystem.New(),
//	    myCustomLogger,
//	    juxtapose.DefaultOptions(),
//	)
//	result, err := stage.Execute(ctx, juxtapose.Input{
//	    Before:     before,
//	    After:      after,
//	    OutputPath: "compare.png",
//	})
func Combine(beforePath, afterPath, outputPath string, opts Options) (Result, error) {
	fs := osfilesystem.New()
	codec := imagecodec.New(true)
	stage := New(ggrenderer.New(), codec, fs, logger.NewNoop(), opts)

	before, err := load(fs, codec, beforePath)
	if err != nil {
		return Result{}, err
	}
	after, err := load(fs, codec, afterPath)
	if err != nil {
		return Result{}, err
	}

	return stage.Execute(context.Background(), Input{
		Before:     before,
		After:      after,
		OutputPath: outputPath,
	})
}

func load(fs ports.FileSystem, codec ports.ImageCodec, path string) (image.Image, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	img, _, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
