package sink

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-drift/exoclock/pkg/errors"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		err  bool
	}{
		{"", FormatPNG, false},
		{"png", FormatPNG, false},
		{" PNG ", FormatPNG, false},
		{"bmp", FormatBMP, false},
		{"tif", FormatTIFF, false},
		{"tiff", FormatTIFF, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.err {
			require.Error(t, err, "ParseFormat(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseFormat(%q)", tt.in)
		require.Equal(t, tt.want, got, "ParseFormat(%q)", tt.in)
	}
}

func TestFormatFromPath(t *testing.T) {
	require.Equal(t, FormatPNG, FormatFromPath("panel"))
	require.Equal(t, FormatPNG, FormatFromPath("out/panel.png"))
	require.Equal(t, FormatBMP, FormatFromPath("panel.BMP"))
	require.Equal(t, FormatTIFF, FormatFromPath("panel.tif"))
	require.Equal(t, FormatPNG, FormatFromPath("panel.jpeg"))
}

func TestEncode_Decodes(t *testing.T) {
	for _, f := range []Format{FormatPNG, FormatBMP, FormatTIFF} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, testImage(4, 3), f))

			img, name, err := image.Decode(&buf)
			require.NoError(t, err)
			require.Equal(t, string(f), name)
			require.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())

			r, g, b, _ := img.At(1, 1).RGBA()
			require.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b})
			r, g, b, _ = img.At(0, 0).RGBA()
			require.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
		})
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, Encode(&buf, testImage(1, 1), Format("webp")))
}

func TestNewFile(t *testing.T) {
	_, err := NewFile("", "")
	require.True(t, errors.IsConfig(err))

	_, err = NewFile("panel.png", Format("gif"))
	require.True(t, errors.IsConfig(err))

	s, err := NewFile("panel.tif", "")
	require.NoError(t, err)
	require.Equal(t, FormatTIFF, s.format)
	require.Equal(t, "panel.tif", s.Path())
}

func TestFile_PublishReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "panel.png")
	s, err := NewFile(path, "")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, s.Publish(ctx, Frame{Seq: 0, Time: time.Now(), Image: testImage(4, 3)}))
	require.NoError(t, s.Publish(ctx, Frame{Seq: 1, Time: time.Now(), Image: testImage(8, 6)}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Width)
	require.Equal(t, 6, cfg.Height)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	require.NoError(t, s.Close())
}

func TestFile_PublishError(t *testing.T) {
	s, err := NewFile(filepath.Join(t.TempDir(), "missing", "panel.png"), "")
	require.NoError(t, err)

	err = s.Publish(context.Background(), Frame{Image: testImage(2, 2)})
	require.Error(t, err)
	require.Equal(t, errors.KindSink, errors.KindOf(err))
}

func TestFile_PublishCanceled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.png")
	s, err := NewFile(path, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, s.Publish(ctx, Frame{Image: testImage(2, 2)}), context.Canceled)
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}
