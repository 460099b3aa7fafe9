// Package vision pre-processes screenshots before vision model dispatch.
// Downscaling bounds per-call cost; the dispatcher assumes this already
// happened and never re-compresses.
package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoding for screenshots

	"golang.org/x/image/draw"
)

const (
	// MaxDimension bounds the longest image side sent to vision models.
	MaxDimension = 1024
	// JPEGQuality is the fixed re-encode quality.
	JPEGQuality = 80
)

// Downscale decodes an image (JPEG or PNG), scales it so its longest side
// is at most maxDim without ever upscaling, and re-encodes it as JPEG at
// the given quality. The output MIME type is always image/jpeg.
func Downscale(data []byte, maxDim, quality int) ([]byte, string, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > maxDim || height > maxDim {
		if width >= height {
			height = height * maxDim / width
			width = maxDim
		} else {
			width = width * maxDim / height
			height = maxDim
		}
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return nil, "", fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), "image/jpeg", nil
}
