package image

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned when the encoded data is in no known
// image format.
var ErrUnsupportedFormat = errors.New("image: unsupported file format")

// LoadImage loads an image file into a buffer of the given pixel format.
// PNG, JPEG and BMP are recognized by extension, anything else by content.
func LoadImage(path string, format Format) (*ImageBuf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		img, err = png.Decode(f)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(f)
	case ".bmp":
		img, err = bmp.Decode(f)
	default:
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("image: decode %s: %w", filepath.Base(path), err)
	}
	return FromStdImage(img, format)
}

// Decode decodes an image from r, auto-detecting PNG, JPEG or BMP.
func Decode(r io.Reader, format Format) (*ImageBuf, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedFormat
		}
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img, format)
}

// EncodePNG encodes the image as PNG to the given writer.
func (b *ImageBuf) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, b.ToStdImage()); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// EncodeBMP encodes the image as BMP to the given writer.
func (b *ImageBuf) EncodeBMP(w io.Writer) error {
	if err := bmp.Encode(w, b.ToStdImage()); err != nil {
		return fmt.Errorf("image: encode BMP: %w", err)
	}
	return nil
}

// Save writes the image to path: BMP for a .bmp extension, PNG otherwise.
func (b *ImageBuf) Save(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	encode := b.EncodePNG
	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		encode = b.EncodeBMP
	}
	if err := encode(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
