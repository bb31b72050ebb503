package mocks

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/user/pixelworker/pkg/ports"
)

// ImageCodec is a mock implementation of ports.ImageCodec.
//
// By default Decode returns Source (or a 4x4 opaque gray image) and Encode
// records the image and returns a short marker naming the format.
type ImageCodec struct {
	DecodeFunc func(data []byte) (image.Image, ports.ImageFormat, error)
	EncodeFunc func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)

	Source image.Image

	mu      sync.Mutex
	Encoded []image.Image
	Formats []ports.ImageFormat
}

func (m *ImageCodec) Decode(data []byte) (image.Image, ports.ImageFormat, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(data)
	}
	if m.Source != nil {
		return m.Source, ports.FormatPNG, nil
	}
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}
	return img, ports.FormatPNG, nil
}

func (m *ImageCodec) Encode(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeFunc != nil {
		return m.EncodeFunc(img, format, quality)
	}
	m.mu.Lock()
	m.Encoded = append(m.Encoded, img)
	m.Formats = append(m.Formats, format)
	m.mu.Unlock()
	b := img.Bounds()
	return []byte(fmt.Sprintf("%s:%dx%d", format, b.Dx(), b.Dy())), nil
}

var _ ports.ImageCodec = (*ImageCodec)(nil)
