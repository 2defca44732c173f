package service

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestThumbnailPath(t *testing.T) {
	assert.Equal(t, "uploads/photo-1-thumb.webp", ThumbnailPath("uploads/photo-1.jpg"))
	assert.Equal(t, "scan-thumb.webp", ThumbnailPath("scan"))
}

func TestPhotoService_Thumbnail(t *testing.T) {
	src := filepath.Join(t.TempDir(), "photo-1767261600000.png")
	writePNG(t, src, 400, 400)

	dst, err := NewPhotoService().Thumbnail(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, ThumbnailPath(src), dst)

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "webp", format)
	assert.Equal(t, ThumbnailWidth, cfg.Width)
	assert.Equal(t, ThumbnailHeight, cfg.Height)
}

func TestPhotoService_ThumbnailRejectsNonImage(t *testing.T) {
	src := filepath.Join(t.TempDir(), "photo.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.7"), 0o600))
	_, err := NewPhotoService().Thumbnail(context.Background(), src)
	assert.Error(t, err)
}
