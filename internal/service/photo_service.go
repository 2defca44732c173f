package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/middleware"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	ThumbnailWidth  = 240
	ThumbnailHeight = 300
	WebPQuality     = 75
)

// PhotoService renders passport-size thumbnails of applicant photos.
type PhotoService struct{}

func NewPhotoService() *PhotoService {
	return &PhotoService{}
}

// ThumbnailPath is where the thumbnail of src is written.
func ThumbnailPath(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + "-thumb.webp"
}

// Thumbnail crops src to the portrait ratio, scales it and writes it as webp.
func (s *PhotoService) Thumbnail(ctx context.Context, src string) (string, error) {
	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode photo: %w", err)
	}
	thumb := imaging.Fill(img, ThumbnailWidth, ThumbnailHeight, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, thumb, &webp.Options{Quality: WebPQuality}); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}
	dst := ThumbnailPath(src)
	if err := os.WriteFile(dst, buf.Bytes(), 0o640); err != nil {
		return "", err
	}
	middleware.Logger.DebugContext(ctx, "photo thumbnail written", "path", dst)
	return dst, nil
}
