// Package imagecodec implements ports.ImageCodec for the common raster formats.
package imagecodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/png"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/user/pixelworker/pkg/ports"
)

// DefaultQuality is used for JPEG output when quality is out of 1..100.
const DefaultQuality = 90

var (
	// ErrUnsupportedFormat is returned when encoding to a format without an encoder.
	ErrUnsupportedFormat = errors.New("imagecodec: unsupported output format")
	// ErrEmptyImage is returned for zero-sized or nil images.
	ErrEmptyImage = errors.New("imagecodec: empty image")
)

// Codec decodes with EXIF orientation applied and encodes PNG, JPEG, GIF,
// BMP and TIFF.
type Codec struct {
	autoOrient bool
}

// New creates a Codec. With autoOrient, JPEG inputs are rotated according to
// their EXIF orientation tag.
func New(autoOrient bool) *Codec {
	return &Codec{autoOrient: autoOrient}
}

// Decode decodes data, detecting the format from its content.
func (c *Codec) Decode(data []byte) (image.Image, ports.ImageFormat, error) {
	_, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ports.FormatUnknown, fmt.Errorf("detect format: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(c.autoOrient))
	if err != nil {
		return nil, ports.FormatUnknown, fmt.Errorf("decode %s: %w", name, err)
	}
	if img.Bounds().Empty() {
		return nil, ports.FormatUnknown, ErrEmptyImage
	}

	return img, formatFromName(name), nil
}

// Encode encodes img in format. quality applies to JPEG only.
func (c *Codec) Encode(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}

	var buf bytes.Buffer
	var err error

	switch format {
	case ports.FormatPNG:
		err = png.Encode(&buf, img)
	case ports.FormatJPEG:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case ports.FormatGIF:
		err = gif.Encode(&buf, img, nil)
	case ports.FormatBMP:
		err = bmp.Encode(&buf, img)
	case ports.FormatTIFF:
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}

	return buf.Bytes(), nil
}

func formatFromName(name string) ports.ImageFormat {
	switch name {
	case "png":
		return ports.FormatPNG
	case "jpeg":
		return ports.FormatJPEG
	case "gif":
		return ports.FormatGIF
	case "bmp":
		return ports.FormatBMP
	case "tiff":
		return ports.FormatTIFF
	case "webp":
		return ports.FormatWebP
	default:
		return ports.FormatUnknown
	}
}

var _ ports.ImageCodec = (*Codec)(nil)
