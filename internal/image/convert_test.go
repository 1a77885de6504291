package image

import (
	"image"
	"image/color"
	"testing"
)

func TestFromStdImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(2, 3, 5, 5))
	src.Set(2, 3, color.RGBA{R: 255, A: 255})
	src.Set(4, 4, color.RGBA{G: 255, B: 255, A: 255})

	buf, err := FromStdImage(src, FormatRGBA8)
	if err != nil {
		t.Fatalf("FromStdImage() error = %v", err)
	}
	if w, h := buf.Bounds(); w != 3 || h != 2 {
		t.Fatalf("Bounds() = %dx%d, want 3x2", w, h)
	}
	if r, _, _, a := buf.GetRGBA(0, 0); r != 255 || a != 255 {
		t.Errorf("origin pixel = r%d a%d, want red", r, a)
	}
	if _, g, b, _ := buf.GetRGBA(2, 1); g != 255 || b != 255 {
		t.Errorf("corner pixel = g%d b%d, want cyan", g, b)
	}
}

func TestFromStdImage_Gray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.SetGray(1, 0, color.Gray{Y: 77})

	buf, err := FromStdImage(src, FormatGray8)
	if err != nil {
		t.Fatalf("FromStdImage() error = %v", err)
	}
	if got := buf.PixelBytes(1, 0)[0]; got != 77 {
		t.Errorf("gray value = %d, want 77", got)
	}
}

func TestToStdImage(t *testing.T) {
	buf, _ := NewImageBuf(2, 2, FormatRG8)
	_ = buf.SetRGBA(1, 0, 10, 20, 0, 0)

	img := buf.ToStdImage()
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("ToStdImage() = %T, want *image.NRGBA", img)
	}
	if c := nrgba.NRGBAAt(1, 0); c.R != 10 || c.G != 20 || c.B != 0 || c.A != 255 {
		t.Errorf("NRGBAAt(1,0) = %v", c)
	}

	gray, _ := NewImageBuf(1, 1, FormatGray8)
	if _, ok := gray.ToStdImage().(*image.Gray); !ok {
		t.Error("Gray8 should convert to *image.Gray")
	}
}

func TestScale(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 200
		if i%4 == 3 {
			src.Pix[i] = 255
		}
	}

	for _, f := range []Filter{FilterNearest, FilterBilinear, FilterCatmullRom} {
		t.Run(f.String(), func(t *testing.T) {
			buf, err := Scale(src, 8, 2, FormatRGBA8, f)
			if err != nil {
				t.Fatalf("Scale() error = %v", err)
			}
			if w, h := buf.Bounds(); w != 8 || h != 2 {
				t.Errorf("Bounds() = %dx%d, want 8x2", w, h)
			}
			// Kernel weights may round by one step.
			if r, _, _, _ := buf.GetRGBA(3, 1); r < 199 || r > 201 {
				t.Errorf("uniform source should stay uniform, r = %d", r)
			}
		})
	}

	if _, err := Scale(src, 0, 2, FormatRGBA8, FilterNearest); err == nil {
		t.Error("Scale to zero width should fail")
	}
}

func TestFilter_String(t *testing.T) {
	if Filter(99).String() != "Unknown" {
		t.Error("unknown filter should stringify as Unknown")
	}
}
