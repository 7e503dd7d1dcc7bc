package imageproc

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 32 {
		for y := 0; y < height; y += 32 {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDerivativesFitWithinBounds(t *testing.T) {
	data := encodePNG(t, 1080, 2160)

	portrait, square, err := Derivatives(data)
	require.NoError(t, err)

	portraitImg, _, err := image.Decode(bytes.NewReader(portrait))
	require.NoError(t, err)
	squareImg, _, err := image.Decode(bytes.NewReader(square))
	require.NoError(t, err)

	pb := portraitImg.Bounds()
	assert.LessOrEqual(t, pb.Dx(), PortraitWidth)
	assert.LessOrEqual(t, pb.Dy(), PortraitHeight)
	// Aspect ratio 1:2 preserved within the portrait box.
	assert.Equal(t, 960, pb.Dx())
	assert.Equal(t, 1920, pb.Dy())

	sb := squareImg.Bounds()
	assert.LessOrEqual(t, sb.Dx(), SquareWidth)
	assert.LessOrEqual(t, sb.Dy(), SquareHeight)
	assert.Equal(t, 540, sb.Dx())
	assert.Equal(t, 1080, sb.Dy())
}

func TestDerivativesKeepSmallImagesUnscaled(t *testing.T) {
	data := encodePNG(t, 64, 64)

	portrait, square, err := Derivatives(data)
	require.NoError(t, err)

	portraitImg, _, err := image.Decode(bytes.NewReader(portrait))
	require.NoError(t, err)
	squareImg, _, err := image.Decode(bytes.NewReader(square))
	require.NoError(t, err)

	assert.Equal(t, 64, portraitImg.Bounds().Dx())
	assert.Equal(t, 64, squareImg.Bounds().Dx())
}

func TestDerivativesRejectNonImageData(t *testing.T) {
	_, _, err := Derivatives([]byte("definitely not an image"))
	assert.Error(t, err)
}
