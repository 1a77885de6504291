package tiler

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func texture2D(w, h int, format gputypes.TextureFormat, usage Usage, bind BindFlags) Shape {
	return Shape{
		Dimension:   DimensionTexture2D,
		Width:       w,
		Height:      h,
		MipLevels:   1,
		ArraySize:   1,
		SampleCount: 1,
		Format:      format,
		Usage:       usage,
		Bind:        bind,
	}
}

func mustClass(t *testing.T, f gputypes.TextureFormat) FormatClass {
	t.Helper()
	c, err := ClassOf(f)
	if err != nil {
		t.Fatalf("ClassOf(%v) = %v", f, err)
	}
	return c
}

func TestComputeLayout_SampledTextureIsTiled(t *testing.T) {
	s := texture2D(64, 64, gputypes.TextureFormatRGBA8Unorm, UsageDefault, BindShaderResource)

	l, err := ComputeLayout(s, ClassByte4)
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	if l.Kind != LayoutTiled {
		t.Fatalf("Kind = %v, want Tiled", l.Kind)
	}
	if l.TilesX != 2 || l.TilesY != 2 {
		t.Errorf("tiles = %dx%d, want 2x2", l.TilesX, l.TilesY)
	}
	if l.Size != 16384 {
		t.Errorf("Size = %d, want 16384", l.Size)
	}
	if l.Width != 64 || l.Height != 64 {
		t.Errorf("padded extent = %dx%d, want 64x64", l.Width, l.Height)
	}
	if l.Pitch != 0 {
		t.Errorf("Pitch = %d, want 0 for tiled", l.Pitch)
	}
	if l.Class != ClassByte4 || l.Tile.BitsPerPixel != 32 {
		t.Errorf("class = %v at %d bpp, want X8888 at 32", l.Class, l.Tile.BitsPerPixel)
	}
}

func TestComputeLayout_RenderTargetIsLinear(t *testing.T) {
	s := texture2D(64, 64, gputypes.TextureFormatRGBA8Unorm, UsageDefault, BindShaderResource|BindRenderTarget)

	l, err := ComputeLayout(s, ClassByte4)
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	if l.Kind != LayoutLinear {
		t.Fatalf("Kind = %v, want Linear", l.Kind)
	}
	if l.Pitch != 256 {
		t.Errorf("Pitch = %d, want 256", l.Pitch)
	}
	if l.Size != 256*64 {
		t.Errorf("Size = %d, want %d", l.Size, 256*64)
	}
	if l.TilesX != 1 || l.TilesY != 1 || l.TileWidthPixels != BinningTilePixels {
		t.Errorf("binning tiles = %dx%d of %d px", l.TilesX, l.TilesY, l.TileWidthPixels)
	}
}

func TestComputeLayout_ConstantBuffer(t *testing.T) {
	s := ShapeForBuffer(256, gputypes.BufferUsageUniform)

	// The class argument is ignored for buffers.
	l, err := ComputeLayout(s, FormatClass(200))
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	if l.Kind != LayoutLinear || l.Class != ClassByte1 {
		t.Errorf("Kind, Class = %v, %v, want Linear, X8", l.Kind, l.Class)
	}
	if l.Pitch != 256 || l.Size != 256 {
		t.Errorf("Pitch, Size = %d, %d, want 256, 256", l.Pitch, l.Size)
	}
	if l.Width != 256 || l.Height != 1 {
		t.Errorf("extent = %dx%d, want 256x1", l.Width, l.Height)
	}
}

func TestComputeLayout_Linear(t *testing.T) {
	tests := []struct {
		name      string
		shape     Shape
		wantClass FormatClass
		wantW     int
		wantH     int
		wantPitch int
		wantSize  int
	}{
		{
			name:      "dynamic texture",
			shape:     texture2D(100, 50, gputypes.TextureFormatRGBA8Unorm, UsageDynamic, BindShaderResource),
			wantClass: ClassByte4,
			wantW:     128,
			wantH:     64,
			wantPitch: 512,
			wantSize:  512 * 64,
		},
		{
			name:      "staging 8 bpp",
			shape:     texture2D(10, 10, gputypes.TextureFormatR8Unorm, UsageStaging, 0),
			wantClass: ClassByte4,
			wantW:     64,
			wantH:     64,
			wantPitch: 64,
			wantSize:  64 * 64,
		},
		{
			name:      "depth render target",
			shape:     texture2D(65, 1, gputypes.TextureFormatDepth24PlusStencil8, UsageDefault, BindDepthStencil|BindShaderResource),
			wantClass: ClassByte4Depth,
			wantW:     128,
			wantH:     64,
			wantPitch: 512,
			wantSize:  512 * 64,
		},
		{
			name:      "empty render target",
			shape:     texture2D(0, 0, gputypes.TextureFormatRGBA8Unorm, UsageDefault, BindRenderTarget),
			wantClass: ClassByte4,
			wantW:     64,
			wantH:     64,
			wantPitch: 256,
			wantSize:  256 * 64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ComputeLayout(tt.shape, mustClass(t, tt.shape.Format))
			if err != nil {
				t.Fatalf("ComputeLayout() error = %v", err)
			}
			if l.Kind != LayoutLinear {
				t.Fatalf("Kind = %v, want Linear", l.Kind)
			}
			if l.Class != tt.wantClass {
				t.Errorf("Class = %v, want %v", l.Class, tt.wantClass)
			}
			if l.Width != tt.wantW || l.Height != tt.wantH {
				t.Errorf("extent = %dx%d, want %dx%d", l.Width, l.Height, tt.wantW, tt.wantH)
			}
			if l.Pitch != tt.wantPitch {
				t.Errorf("Pitch = %d, want %d", l.Pitch, tt.wantPitch)
			}
			if l.Size != tt.wantSize {
				t.Errorf("Size = %d, want %d", l.Size, tt.wantSize)
			}
		})
	}
}

func TestComputeLayout_LinearMipChain(t *testing.T) {
	s := texture2D(64, 64, gputypes.TextureFormatRGBA8Unorm, UsageDynamic, BindShaderResource)
	s.MipLevels = 3

	l, err := ComputeLayout(s, ClassByte4)
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	if want := 256*64 + 128*32 + 64*16; l.Size != want {
		t.Errorf("Size = %d, want %d", l.Size, want)
	}
}

func TestComputeLayout_TiledPerFormat(t *testing.T) {
	tests := []struct {
		format       gputypes.TextureFormat
		w, h         int
		wantTilesX   int
		wantTilesY   int
		wantW, wantH int
	}{
		{gputypes.TextureFormatR8Unorm, 100, 100, 2, 2, 128, 128},
		{gputypes.TextureFormatRG8Unorm, 100, 40, 2, 2, 128, 64},
		{gputypes.TextureFormatBGRA8Unorm, 33, 31, 2, 1, 64, 32},
		{gputypes.TextureFormatRGBA8Unorm, 0, 0, 1, 1, 32, 32},
	}

	for _, tt := range tests {
		s := texture2D(tt.w, tt.h, tt.format, UsageDefault, BindShaderResource)
		l, err := ComputeLayout(s, mustClass(t, tt.format))
		if err != nil {
			t.Fatalf("ComputeLayout(%v %dx%d) error = %v", tt.format, tt.w, tt.h, err)
		}
		if l.TilesX != tt.wantTilesX || l.TilesY != tt.wantTilesY {
			t.Errorf("%v %dx%d: tiles = %dx%d, want %dx%d", tt.format, tt.w, tt.h, l.TilesX, l.TilesY, tt.wantTilesX, tt.wantTilesY)
		}
		if l.Width != tt.wantW || l.Height != tt.wantH {
			t.Errorf("%v %dx%d: extent = %dx%d, want %dx%d", tt.format, tt.w, tt.h, l.Width, l.Height, tt.wantW, tt.wantH)
		}
		if l.Size != l.TilesX*l.TilesY*tileSizeBytes {
			t.Errorf("%v %dx%d: Size = %d, not a whole number of tiles", tt.format, tt.w, tt.h, l.Size)
		}
	}
}

func TestComputeLayout_Errors(t *testing.T) {
	tiledMips := texture2D(64, 64, gputypes.TextureFormatRGBA8Unorm, UsageDefault, BindShaderResource)
	tiledMips.MipLevels = 2

	tallBuffer := ShapeForBuffer(16, gputypes.BufferUsageUniform)
	tallBuffer.Height = 2

	volume := texture2D(8, 8, gputypes.TextureFormatRGBA8Unorm, UsageDefault, BindShaderResource)
	volume.Dimension = DimensionTexture3D

	line := volume
	line.Dimension = DimensionTexture1D

	negative := texture2D(-1, 8, gputypes.TextureFormatRGBA8Unorm, UsageDefault, BindShaderResource)

	huge := texture2D(1<<40, 1<<40, gputypes.TextureFormatRGBA8Unorm, UsageStaging, 0)
	hugeTiled := texture2D(1<<40, 1<<40, gputypes.TextureFormatRGBA8Unorm, UsageDefault, BindShaderResource)
	wide := texture2D(MaxTextureDimension+1, 1, gputypes.TextureFormatRGBA8Unorm, UsageStaging, 0)

	tests := []struct {
		name  string
		shape Shape
		class FormatClass
		want  error
	}{
		{"tiled mips", tiledMips, ClassByte4, ErrUnsupportedMipLevels},
		{"buffer height", tallBuffer, ClassByte1, ErrInvalidBufferHeight},
		{"3D", volume, ClassByte4, ErrUnsupportedDimension},
		{"1D", line, ClassByte4, ErrUnsupportedDimension},
		{"negative width", negative, ClassByte4, ErrInvalidDimensions},
		{"huge linear", huge, ClassByte4, ErrInvalidDimensions},
		{"huge tiled", hugeTiled, ClassByte4, ErrInvalidDimensions},
		{"past max width", wide, ClassByte4, ErrInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ComputeLayout(tt.shape, tt.class); !errors.Is(err, tt.want) {
				t.Errorf("ComputeLayout() error = %v, want %v", err, tt.want)
			}
		})
	}

	s := texture2D(8, 8, gputypes.TextureFormatRGBA8Unorm, UsageDefault, BindShaderResource)
	if _, err := ComputeLayout(s, FormatClass(9)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("unknown class error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestComputeLayout_MaxDimension(t *testing.T) {
	s := texture2D(MaxTextureDimension, 1, gputypes.TextureFormatRGBA8Unorm, UsageDefault, BindShaderResource)
	l, err := ComputeLayout(s, ClassByte4)
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	// 2048 x 1 tiles of 32x32 RGBA texels.
	if l.Size != 2048*4096 {
		t.Errorf("Size = %d, want %d", l.Size, 2048*4096)
	}
}

func TestComputeLayout_Idempotent(t *testing.T) {
	s := texture2D(300, 200, gputypes.TextureFormatRGBA8Unorm, UsageDefault, BindShaderResource)
	a, err := ComputeLayout(s, ClassByte4)
	if err != nil {
		t.Fatalf("ComputeLayout() error = %v", err)
	}
	b, _ := ComputeLayout(s, ClassByte4)
	if a != b {
		t.Errorf("layouts differ:\n%+v\n%+v", a, b)
	}
}

func TestComputeLayout_Coverage(t *testing.T) {
	formats := []gputypes.TextureFormat{
		gputypes.TextureFormatR8Unorm,
		gputypes.TextureFormatRG8Unorm,
		gputypes.TextureFormatRGBA8Unorm,
	}
	binds := []BindFlags{BindShaderResource, BindRenderTarget}

	for _, f := range formats {
		class := mustClass(t, f)
		for _, bind := range binds {
			for _, size := range [][2]int{{1, 1}, {17, 93}, {64, 64}, {255, 129}} {
				s := texture2D(size[0], size[1], f, UsageDefault, bind)
				l, err := ComputeLayout(s, class)
				if err != nil {
					t.Fatalf("ComputeLayout(%v %v %v) error = %v", f, bind, size, err)
				}

				if l.Width < s.Width || l.Height < s.Height {
					t.Errorf("%v %v %v: padded extent %dx%d smaller than surface", f, bind, size, l.Width, l.Height)
				}
				if l.Width != l.TilesX*l.TileWidthPixels || l.Height != l.TilesY*l.TileHeightPixels {
					t.Errorf("%v %v %v: extent is not a whole number of tiles", f, bind, size)
				}

				switch l.Kind {
				case LayoutTiled:
					if l.Size != l.TilesX*l.TilesY*l.Tile.TileSizeBytes() {
						t.Errorf("%v %v %v: tiled size %d", f, bind, size, l.Size)
					}
				case LayoutLinear:
					if l.Pitch%strideAlignment != 0 {
						t.Errorf("%v %v %v: pitch %d not aligned", f, bind, size, l.Pitch)
					}
					if l.Size < l.Pitch*l.Height {
						t.Errorf("%v %v %v: size %d below pitch*height", f, bind, size, l.Size)
					}
				}
			}
		}
	}
}

func TestLayoutKind_String(t *testing.T) {
	if LayoutTiled.String() != "Tiled" || LayoutLinear.String() != "Linear" || LayoutKind(7).String() != "Unknown" {
		t.Error("unexpected LayoutKind names")
	}
}
