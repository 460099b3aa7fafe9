package vision

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodedBounds(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestDownscale_ShrinksWideImage(t *testing.T) {
	out, mime, err := Downscale(encodePNG(t, 2048, 1024), MaxDimension, JPEGQuality)

	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
	w, h := decodedBounds(t, out)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 512, h)
}

func TestDownscale_ShrinksTallImage(t *testing.T) {
	out, _, err := Downscale(encodePNG(t, 750, 3000), MaxDimension, JPEGQuality)

	require.NoError(t, err)
	w, h := decodedBounds(t, out)
	assert.Equal(t, 256, w)
	assert.Equal(t, 1024, h)
}

func TestDownscale_NeverUpscales(t *testing.T) {
	out, mime, err := Downscale(encodePNG(t, 320, 480), MaxDimension, JPEGQuality)

	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
	w, h := decodedBounds(t, out)
	assert.Equal(t, 320, w)
	assert.Equal(t, 480, h)
}

func TestDownscale_ReencodesJPEGInput(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	var src bytes.Buffer
	require.NoError(t, jpeg.Encode(&src, img, nil))

	out, mime, err := Downscale(src.Bytes(), MaxDimension, JPEGQuality)

	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
	w, h := decodedBounds(t, out)
	assert.Equal(t, 100, w)
	assert.Equal(t, 100, h)
}

func TestDownscale_RejectsNonImageData(t *testing.T) {
	_, _, err := Downscale([]byte("definitely not an image"), MaxDimension, JPEGQuality)

	assert.Error(t, err)
}
