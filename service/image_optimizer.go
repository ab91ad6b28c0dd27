package service

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const (
	// Size settings (max dimension)
	maxSizeThumb  = 96
	maxSizeMedium = 256

	SpriteSizeThumb  = "thumb"
	SpriteSizeMedium = "medium"
)

// ImageOptimizer resizes sprite images
type ImageOptimizer struct {
	logger *zap.Logger
}

// NewImageOptimizer creates a new ImageOptimizer
func NewImageOptimizer(logger *zap.Logger) *ImageOptimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageOptimizer{logger: logger}
}

// OptimizeSprite fits imageData into the bound for size and re-encodes it as PNG.
// size is "thumb" or "medium"; anything else falls back to medium.
// Images already inside the bound are only re-encoded.
func (o *ImageOptimizer) OptimizeSprite(imageData []byte, size string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var maxDim int
	switch size {
	case SpriteSizeThumb:
		maxDim = maxSizeThumb
	case SpriteSizeMedium:
		maxDim = maxSizeMedium
	default:
		maxDim = maxSizeMedium
		o.logger.Debug("unknown sprite size, defaulting to medium", zap.String("size", size))
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		// Sprites are pixel art; nearest neighbor keeps the edges sharp
		img = imaging.Fit(img, maxDim, maxDim, imaging.NearestNeighbor)
		o.logger.Debug("sprite resized",
			zap.Int("from_width", bounds.Dx()),
			zap.Int("from_height", bounds.Dy()),
			zap.Int("to_width", img.Bounds().Dx()),
			zap.Int("to_height", img.Bounds().Dy()),
		)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode to PNG: %w", err)
	}
	return buf.Bytes(), nil
}
