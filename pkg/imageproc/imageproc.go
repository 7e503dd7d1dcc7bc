package imageproc

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Derivative bounds for uploaded post media.
const (
	PortraitWidth  = 1080
	PortraitHeight = 1920
	SquareWidth    = 1080
	SquareHeight   = 1080
)

// Derivatives decodes an uploaded image and produces the portrait-cropped and
// square-cropped variants stored alongside each other in the blob store.
func Derivatives(data []byte) (portrait, square []byte, err error) {
	img, format, err := decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	portrait, err = resize(img, format, PortraitWidth, PortraitHeight)
	if err != nil {
		return nil, nil, err
	}
	square, err = resize(img, format, SquareWidth, SquareHeight)
	if err != nil {
		return nil, nil, err
	}
	return portrait, square, nil
}

func decode(data []byte) (image.Image, imaging.Format, error) {
	_, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	format, err := imaging.FormatFromExtension(name)
	if err != nil {
		format = imaging.JPEG
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, 0, err
	}
	return img, format, nil
}

func resize(img image.Image, format imaging.Format, width, height int) ([]byte, error) {
	fitted := imaging.Fit(img, width, height, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, format); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}
	return buf.Bytes(), nil
}
