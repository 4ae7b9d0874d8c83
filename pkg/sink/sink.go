// Package sink publishes composed panel frames: to an image file rewritten
// every frame, or to browsers over a websocket live view.
package sink

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Frame is one composed panel image. Sinks must finish reading Image
// before Publish returns; the panel reuses it for the next frame.
type Frame struct {
	Seq   uint64
	Time  time.Time
	Image image.Image
}

// Sink receives every presented frame.
type Sink interface {
	Publish(ctx context.Context, f Frame) error
	Close() error
}

// Format is an image encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// ParseFormat parses a format name; the empty string means PNG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPNG, nil
	case FormatPNG, FormatBMP, FormatTIFF:
		return f, nil
	case "tif":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("unknown image format %q (want png, bmp or tiff)", s)
	}
}

// FormatFromPath guesses a format from a file extension, defaulting to PNG.
func FormatFromPath(path string) Format {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return FormatPNG
	}
	f, err := ParseFormat(path[i+1:])
	if err != nil {
		return FormatPNG
	}
	return f
}

// Extension returns the file extension for the format, with the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	default:
		return "image/png"
	}
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG, "":
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		return enc.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unknown image format %q", f)
	}
}
