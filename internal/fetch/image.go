package fetch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"gourmet/internal/domain"
)

const jpegQuality = 85

// GetImage downloads a single image, rejecting non-image and GIF content,
// and returns it decoded, fitted into the configured bounding box and
// re-encoded as JPEG.
func (c *Client) GetImage(ctx context.Context, rawURL string, timeout time.Duration) (domain.Image, error) {
	var img image.Image
	err := c.get(ctx, rawURL, nil, timeout, "image/*", false, checkImageContentType, func(body io.Reader) error {
		decoded, err := imaging.Decode(body, imaging.AutoOrientation(true))
		if err != nil {
			return fmt.Errorf("decode image: %w", err)
		}
		img = decoded
		return nil
	})
	if err != nil {
		return domain.Image{}, err
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return domain.Image{}, c.fail(rawURL, fmt.Errorf("decode image: empty bounds"))
	}
	if bounds.Dx() > c.maxDimension || bounds.Dy() > c.maxDimension {
		img = imaging.Fit(img, c.maxDimension, c.maxDimension, imaging.Lanczos)
	}
	// JPEG has no alpha channel; flatten transparent pixels onto white.
	bounds = img.Bounds()
	canvas := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	flat := imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return domain.Image{}, c.fail(rawURL, fmt.Errorf("encode image: %w", err))
	}
	return domain.Image{
		URL:    rawURL,
		Width:  flat.Bounds().Dx(),
		Height: flat.Bounds().Dy(),
		Format: "jpeg",
		Data:   buf.Bytes(),
	}, nil
}

func checkImageContentType(contentType string) error {
	ct := strings.ToLower(contentType)
	if !strings.Contains(ct, "image") || strings.Contains(ct, "gif") {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedContent, contentType)
	}
	return nil
}
