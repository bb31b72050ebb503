// Package filter implements the 3x3 neighborhood filters: a median (rank)
// filter and a convolution filter with a caller supplied kernel.
package filter

import "github.com/user/pixelworker/pkg/pixel"

// Size is the number of pixels in a neighborhood.
const Size = 9

// offsets is the gather order: row-major from (-1,-1) to (1,1), center
// included. Neighbor idx lines up with kernel entry [idx/3][idx%3].
var offsets = [Size][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {0, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Neighborhood gathers the 3x3 neighborhood of (x, y) into out.
//
// Neighbors are addressed by flat index (y+dy)*width + x+dx, so a neighbor
// left of column 0 or right of the last column reads the adjacent row.
// Only indexes outside the pixel slice read as pixel.Sentinel, which biases
// the first and last rows toward opaque white.
func Neighborhood(buf pixel.Buffer, x, y int, out *[Size]pixel.Pixel) {
	for i, o := range offsets {
		idx := (y+o[1])*buf.Width + x + o[0]
		if idx < 0 || idx >= len(buf.Pix) {
			out[i] = pixel.Sentinel
		} else {
			out[i] = buf.Pix[idx]
		}
	}
}

// mapBuffer calls fn with the neighborhood of every pixel and stores the
// returned value in a new buffer of the same size.
func mapBuffer(src pixel.Buffer, fn func(points *[Size]pixel.Pixel) pixel.Pixel) pixel.Buffer {
	out := pixel.New(src.Width, src.Height)
	var points [Size]pixel.Pixel
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			Neighborhood(src, x, y, &points)
			out.Pix[y*src.Width+x] = fn(&points)
		}
	}
	return out
}
