package imagecodec

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/user/pixelworker/pkg/ports"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
	}
	return img
}

func TestCodec_LosslessRoundTrip(t *testing.T) {
	codec := New(true)
	src := checker(5, 3)

	for _, format := range []ports.ImageFormat{ports.FormatPNG, ports.FormatBMP, ports.FormatTIFF} {
		t.Run(format.String(), func(t *testing.T) {
			data, err := codec.Encode(src, format, 0)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			img, detected, err := codec.Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if detected != format {
				t.Errorf("expected format %s, got %s", format, detected)
			}
			if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 3 {
				t.Fatalf("expected 5x3, got %v", img.Bounds())
			}

			r, g, b, _ := img.At(1, 0).RGBA()
			if r>>8 != 0 || g>>8 != 0 || b>>8 != 255 {
				t.Errorf("pixel (1,0): expected blue, got %d,%d,%d", r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestCodec_JPEG(t *testing.T) {
	codec := New(true)

	data, err := codec.Encode(checker(16, 16), ports.FormatJPEG, 80)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		t.Fatal("expected JPEG SOI marker")
	}

	img, format, err := codec.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if format != ports.FormatJPEG {
		t.Errorf("expected jpeg, got %s", format)
	}
	if img.Bounds().Dx() != 16 {
		t.Errorf("expected width 16, got %d", img.Bounds().Dx())
	}
}

func TestCodec_EncodeErrors(t *testing.T) {
	codec := New(false)

	if _, err := codec.Encode(checker(2, 2), ports.FormatWebP, 0); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := codec.Encode(image.NewNRGBA(image.Rect(0, 0, 0, 0)), ports.FormatPNG, 0); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("expected ErrEmptyImage, got %v", err)
	}
}

func TestCodec_DecodeGarbage(t *testing.T) {
	if _, _, err := New(true).Decode([]byte("not an image")); err == nil {
		t.Error("expected error for garbage input")
	}
}
