package image

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Filter selects the resampling kernel used by Scale.
type Filter uint8

const (
	// FilterNearest picks the nearest source pixel.
	FilterNearest Filter = iota

	// FilterBilinear interpolates linearly between neighbors.
	FilterBilinear

	// FilterCatmullRom uses the Catmull-Rom cubic kernel.
	FilterCatmullRom
)

// scaler returns the x/image scaler for f.
func (f Filter) scaler() xdraw.Scaler {
	switch f {
	case FilterBilinear:
		return xdraw.BiLinear
	case FilterCatmullRom:
		return xdraw.CatmullRom
	default:
		return xdraw.NearestNeighbor
	}
}

// String returns a string representation of the filter.
func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "Nearest"
	case FilterBilinear:
		return "Bilinear"
	case FilterCatmullRom:
		return "CatmullRom"
	default:
		return "Unknown"
	}
}

// FromStdImage converts any image.Image into a tightly packed ImageBuf of
// the given format.
func FromStdImage(img image.Image, format Format) (*ImageBuf, error) {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Draw(nrgba, nrgba.Bounds(), img, b.Min, xdraw.Src)
	}
	return packNRGBA(nrgba, format)
}

// Scale resamples img to width x height and packs it into format.
func Scale(img image.Image, width, height int, format Format, filter Filter) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	filter.scaler().Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return packNRGBA(dst, format)
}

// packNRGBA copies an NRGBA image into a new buffer of format.
func packNRGBA(src *image.NRGBA, format Format) (*ImageBuf, error) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	buf, err := NewImageBuf(w, h, format)
	if err != nil {
		return nil, err
	}

	if format == FormatRGBA8 {
		for y := range h {
			copy(buf.RowBytes(y), src.Pix[y*src.Stride:y*src.Stride+w*4])
		}
		return buf, nil
	}

	for y := range h {
		row := src.Pix[y*src.Stride:]
		for x := range w {
			p := row[x*4 : x*4+4]
			_ = buf.SetRGBA(x, y, p[0], p[1], p[2], p[3])
		}
	}
	return buf, nil
}

// ToStdImage converts the buffer to a standard library image.
// Gray8 becomes *image.Gray, every other format *image.NRGBA.
func (b *ImageBuf) ToStdImage() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)

	if b.format == FormatGray8 {
		gray := image.NewGray(rect)
		for y := range b.height {
			copy(gray.Pix[y*gray.Stride:], b.RowBytes(y))
		}
		return gray
	}

	nrgba := image.NewNRGBA(rect)
	for y := range b.height {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := range b.width {
			r, g, bl, a := b.GetRGBA(x, y)
			row[x*4] = r
			row[x*4+1] = g
			row[x*4+2] = bl
			row[x*4+3] = a
		}
	}
	return nrgba
}
