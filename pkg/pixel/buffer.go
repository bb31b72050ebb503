package pixel

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// BytesPerPixel is the size of one pixel in the wire form.
const BytesPerPixel = 4

// ErrLength is returned when a byte or pixel slice does not match the
// declared dimensions.
var ErrLength = errors.New("pixel: buffer length does not match dimensions")

// Buffer is a row-major image of packed pixels. Pix[y*Width+x] is the
// pixel at (x, y) and len(Pix) == Width*Height.
//
// Engines treat a Buffer as immutable: every operation allocates a new one.
type Buffer struct {
	Width  int
	Height int
	Pix    []Pixel
}

// New allocates a zeroed (fully transparent) buffer.
func New(width, height int) Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]Pixel, width*height),
	}
}

// Wrap builds a buffer around an existing pixel slice without copying.
func Wrap(width, height int, pix []Pixel) (Buffer, error) {
	if width < 0 || height < 0 || len(pix) != width*height {
		return Buffer{}, fmt.Errorf("%w: %dx%d with %d pixels", ErrLength, width, height, len(pix))
	}
	return Buffer{Width: width, Height: height, Pix: pix}, nil
}

// At returns the pixel at (x, y). The caller guarantees the bounds.
func (b Buffer) At(x, y int) Pixel {
	return b.Pix[y*b.Width+x]
}

// Set stores the pixel at (x, y). The caller guarantees the bounds.
func (b Buffer) Set(x, y int, p Pixel) {
	b.Pix[y*b.Width+x] = p
}

// In reports whether (x, y) lies inside the buffer.
func (b Buffer) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// Valid reports whether the buffer satisfies its length invariant.
func (b Buffer) Valid() bool {
	return b.Width >= 0 && b.Height >= 0 && len(b.Pix) == b.Width*b.Height
}

// Clone returns a deep copy.
func (b Buffer) Clone() Buffer {
	pix := make([]Pixel, len(b.Pix))
	copy(pix, b.Pix)
	return Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// FromBytes decodes the wire form: 4 bytes per pixel in R, G, B, A order,
// row-major, no padding and no header.
func FromBytes(width, height int, data []byte) (Buffer, error) {
	if width < 0 || height < 0 || len(data) != width*height*BytesPerPixel {
		return Buffer{}, fmt.Errorf("%w: %dx%d with %d bytes", ErrLength, width, height, len(data))
	}
	buf := New(width, height)
	for i := range buf.Pix {
		buf.Pix[i] = Pixel(binary.LittleEndian.Uint32(data[i*BytesPerPixel:]))
	}
	return buf, nil
}

// Bytes encodes the buffer in its wire form.
func (b Buffer) Bytes() []byte {
	out := make([]byte, len(b.Pix)*BytesPerPixel)
	for i, p := range b.Pix {
		binary.LittleEndian.PutUint32(out[i*BytesPerPixel:], uint32(p))
	}
	return out
}

// FromImage converts any image to a buffer of straight RGBA pixels.
// The result always starts at (0, 0).
func FromImage(img image.Image) Buffer {
	bounds := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()
	buf := New(w, h)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*BytesPerPixel]
		for x := 0; x < w; x++ {
			buf.Pix[y*w+x] = Pixel(binary.LittleEndian.Uint32(row[x*BytesPerPixel:]))
		}
	}
	return buf
}

// ToImage converts the buffer to a new *image.NRGBA.
func (b Buffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, p := range b.Pix {
		binary.LittleEndian.PutUint32(img.Pix[i*BytesPerPixel:], uint32(p))
	}
	return img
}
