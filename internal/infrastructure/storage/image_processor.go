package storage

import (
	"bytes"
	"errors"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"jewelry-backend/pkg/logger"

	"github.com/disintegration/imaging"
)

// ErrUnsupportedMedia is returned when an upload does not declare an
// image MIME type. Only this check hard-fails an upload; decode problems
// degrade to passing the original bytes through.
var ErrUnsupportedMedia = errors.New("unsupported media type")

const (
	// Optimized images fit within this bounding box, aspect preserved,
	// never upscaled.
	maxDimension = 1200

	// JPEG quality for the optimized rendition.
	optimizeQuality = 85

	thumbnailDimension = 300
	thumbnailQuality   = 80
)

// ImageProcessor normalizes uploaded images to a bounded size and a
// single lossy format before they are published.
type ImageProcessor struct{}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// Optimize re-encodes data to fit within 1200x1200 at JPEG quality 85.
// Non-image content types are rejected. If the bytes cannot be decoded
// (corrupt upload, exotic format) the original bytes are returned
// unchanged with a warning: an upload must not fail solely because
// optimization did.
func (p *ImageProcessor) Optimize(data []byte, contentType string) ([]byte, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedMedia
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		logger.Warn("image optimization failed, keeping original bytes", map[string]interface{}{
			"content_type": contentType,
			"error":        err.Error(),
		})
		return data, nil
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(optimizeQuality)); err != nil {
		logger.Warn("image re-encode failed, keeping original bytes", map[string]interface{}{
			"error": err.Error(),
		})
		return data, nil
	}

	return buf.Bytes(), nil
}

// Thumbnail produces a 300x300-bounded JPEG rendition, or nil if the
// bytes cannot be decoded. Callers treat nil as "no thumbnail".
func (p *ImageProcessor) Thumbnail(data []byte) []byte {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	img = imaging.Fit(img, thumbnailDimension, thumbnailDimension, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(thumbnailQuality)); err != nil {
		return nil
	}
	return buf.Bytes()
}

// dimensions reads the pixel size of encoded image bytes without a full
// decode. Returns zeros when the bytes are not a known image format.
func dimensions(data []byte) (width, height int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
