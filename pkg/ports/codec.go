package ports

import (
	"image"
	"path/filepath"
	"strings"
)

// ImageFormat specifies an image file format.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatJPEG
	FormatBMP
	FormatTIFF
	FormatGIF
	FormatWebP
	FormatUnknown
)

// String returns the conventional format name.
func (f ImageFormat) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	case FormatGIF:
		return "gif"
	case FormatWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) ImageFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".bmp":
		return FormatBMP
	case ".tif", ".tiff":
		return FormatTIFF
	case ".gif":
		return FormatGIF
	case ".webp":
		return FormatWebP
	default:
		return FormatUnknown
	}
}

// ImageCodec abstracts image file decoding and encoding.
type ImageCodec interface {
	// Decode decodes image data, detecting the format from its content.
	Decode(data []byte) (image.Image, ImageFormat, error)

	// Encode encodes an image to the specified format.
	// quality is used by lossy formats only (JPEG, 1-100).
	Encode(img image.Image, format ImageFormat, quality int) ([]byte, error)
}
