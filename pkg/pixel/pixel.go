// Package pixel defines the packed RGBA pixel and the flat pixel buffer
// shared by every transform engine.
package pixel

// Pixel is a 32-bit packed color. Channels are stored low to high as
// R, G, B, A, so channel c is (p >> (8*c)) & 0xFF. Values are straight
// (not premultiplied) and every channel is treated independently.
type Pixel uint32

// Channel indexes in packing order.
const (
	Red = iota
	Green
	Blue
	Alpha
)

// Sentinel is substituted for neighbors that fall outside a buffer.
// It is opaque white.
const Sentinel Pixel = 0xFFFFFFFF

// RGBA packs four channels into a Pixel.
func RGBA(r, g, b, a uint8) Pixel {
	return Pixel(uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r))
}

// Channel returns channel c (Red, Green, Blue or Alpha).
func (p Pixel) Channel(c int) uint8 {
	return uint8(p >> (8 * uint(c)))
}

// R returns the red channel.
func (p Pixel) R() uint8 { return uint8(p) }

// G returns the green channel.
func (p Pixel) G() uint8 { return uint8(p >> 8) }

// B returns the blue channel.
func (p Pixel) B() uint8 { return uint8(p >> 16) }

// A returns the alpha channel.
func (p Pixel) A() uint8 { return uint8(p >> 24) }

// Brightness is the raw sum of all four channels, in [0, 1020].
// It is used as the rank key of the median filter and is not a
// perceptual luma.
func (p Pixel) Brightness() int {
	return int(p.R()) + int(p.G()) + int(p.B()) + int(p.A())
}

// FromChannels packs per-channel float results, truncating toward zero.
// Values are clamped to [0, 255] first because converting an out of range
// float to an integer is not defined in Go.
func FromChannels(r, g, b, a float64) Pixel {
	return RGBA(truncate(r), truncate(g), truncate(b), truncate(a))
}

func truncate(v float64) uint8 {
	switch {
	case v != v, v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
