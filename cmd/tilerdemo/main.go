// Command tilerdemo plans the memory layout of an image surface, converts
// the image into hardware byte order and reports the result.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gputypes"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/tiler"
	"github.com/gogpu/tiler/internal/image"
)

func main() {
	var (
		input   = flag.String("input", "", "image file (PNG, JPEG or BMP), - for stdin; a test pattern when empty")
		format  = flag.String("format", "rgba8", "surface format: r8, rg8, rgba8, bgra8")
		usage   = flag.String("usage", "default", "resource usage: default, dynamic, staging")
		bind    = flag.String("bind", "sr", "comma separated bind flags: sr, rt, ds, uav")
		width   = flag.Int("width", 0, "rescale to this width (0 keeps the source width)")
		height  = flag.Int("height", 0, "rescale to this height (0 keeps the source height)")
		filter  = flag.String("filter", "bilinear", "rescale filter: nearest, bilinear, catmullrom")
		mips    = flag.Int("mips", 1, "mip levels for linear surfaces; 0 asks for the full chain, which tiled surfaces reduce to one level")
		output  = flag.String("output", "", "write the converted bytes to this file")
		preview = flag.String("preview", "", "convert the output back to linear order and save it as PNG (or BMP by extension)")
		verify  = flag.Bool("verify", false, "convert tiled output back and compare with the source")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		tiler.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	texFormat, imgFormat, err := parseFormat(*format)
	if err != nil {
		log.Fatal(err)
	}
	u, err := parseUsage(*usage)
	if err != nil {
		log.Fatal(err)
	}
	b, err := parseBind(*bind)
	if err != nil {
		log.Fatal(err)
	}
	f, err := parseFilter(*filter)
	if err != nil {
		log.Fatal(err)
	}

	src, err := loadSource(*input, imgFormat, *width, *height, f)
	if err != nil {
		log.Fatalf("Failed to load source: %v", err)
	}

	levels := *mips
	if levels <= 0 {
		levels = image.FullChainLevels(src.Width(), src.Height())
	}

	shape := tiler.Shape{
		Dimension:   tiler.DimensionTexture2D,
		Width:       src.Width(),
		Height:      src.Height(),
		MipLevels:   levels,
		ArraySize:   1,
		SampleCount: 1,
		Format:      texFormat,
		Usage:       u,
		Bind:        b,
	}
	res, err := newResource(shape, *mips <= 0)
	if err != nil {
		log.Fatalf("Failed to plan layout: %v", err)
	}
	levels = res.Shape().MipLevels

	out, err := upload(res, src, levels)
	if err != nil {
		log.Fatalf("Failed to convert: %v", err)
	}

	report(res.Exchange(), res.Layout(), len(out))

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o600); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Converted bytes saved to %s\n", *output)
	}

	if *verify {
		if err := verifyRoundTrip(res.Layout(), src, out); err != nil {
			log.Fatalf("Verification failed: %v", err)
		}
		log.Println("Verification passed")
	}

	if *preview != "" {
		img, err := detileImage(res.Layout(), src, out)
		if err != nil {
			log.Fatalf("Failed to build preview: %v", err)
		}
		if err := img.Save(*preview); err != nil {
			log.Fatalf("Failed to save preview: %v", err)
		}
		log.Printf("Preview saved to %s\n", *preview)
	}
}

// newResource plans shape. A full chain request for a surface that comes
// out tiled falls back to a single level, the only one tiled surfaces hold.
func newResource(shape tiler.Shape, fullChain bool) (*tiler.Resource, error) {
	res, err := tiler.NewResource(shape)
	if fullChain && errors.Is(err, tiler.ErrUnsupportedMipLevels) {
		shape.MipLevels = 1
		return tiler.NewResource(shape)
	}
	return res, err
}

func parseFormat(s string) (gputypes.TextureFormat, image.Format, error) {
	switch strings.ToLower(s) {
	case "r8":
		return gputypes.TextureFormatR8Unorm, image.FormatGray8, nil
	case "rg8":
		return gputypes.TextureFormatRG8Unorm, image.FormatRG8, nil
	case "rgba8":
		return gputypes.TextureFormatRGBA8Unorm, image.FormatRGBA8, nil
	case "bgra8":
		return gputypes.TextureFormatBGRA8Unorm, image.FormatBGRA8, nil
	default:
		return gputypes.TextureFormatUndefined, 0, fmt.Errorf("unknown format %q", s)
	}
}

func parseUsage(s string) (tiler.Usage, error) {
	switch strings.ToLower(s) {
	case "default":
		return tiler.UsageDefault, nil
	case "dynamic":
		return tiler.UsageDynamic, nil
	case "staging":
		return tiler.UsageStaging, nil
	default:
		return 0, fmt.Errorf("unknown usage %q", s)
	}
}

func parseBind(s string) (tiler.BindFlags, error) {
	var b tiler.BindFlags
	for _, name := range strings.Split(s, ",") {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "":
		case "sr":
			b |= tiler.BindShaderResource
		case "rt":
			b |= tiler.BindRenderTarget
		case "ds":
			b |= tiler.BindDepthStencil
		case "uav":
			b |= tiler.BindUnorderedAccess
		default:
			return 0, fmt.Errorf("unknown bind flag %q", name)
		}
	}
	return b, nil
}

func parseFilter(s string) (image.Filter, error) {
	switch strings.ToLower(s) {
	case "nearest":
		return image.FilterNearest, nil
	case "bilinear":
		return image.FilterBilinear, nil
	case "catmullrom":
		return image.FilterCatmullRom, nil
	default:
		return 0, fmt.Errorf("unknown filter %q", s)
	}
}

// loadSource reads the input image, or draws a test pattern, and rescales
// it when a target size is given.
func loadSource(path string, format image.Format, w, h int, filter image.Filter) (*image.ImageBuf, error) {
	var (
		src *image.ImageBuf
		err error
	)
	switch path {
	case "":
		src, err = testPattern(256, 256, format)
	case "-":
		src, err = image.Decode(os.Stdin, format)
	default:
		src, err = image.LoadImage(path, format)
	}
	if err != nil {
		return nil, err
	}

	if w <= 0 && h <= 0 {
		return src, nil
	}
	if w <= 0 {
		w = src.Width()
	}
	if h <= 0 {
		h = src.Height()
	}
	return image.Scale(src.ToStdImage(), w, h, format, filter)
}

// testPattern draws a gradient with a checker overlay.
func testPattern(w, h int, format image.Format) (*image.ImageBuf, error) {
	buf, err := image.NewImageBuf(w, h, format)
	if err != nil {
		return nil, err
	}
	for y := range h {
		for x := range w {
			r := uint8(x * 255 / max(1, w-1))
			g := uint8(y * 255 / max(1, h-1))
			bl := uint8(0)
			if (x/16+y/16)%2 == 0 {
				bl = 255
			}
			_ = buf.SetRGBA(x, y, r, g, bl, 255)
		}
	}
	return buf, nil
}

func upload(res *tiler.Resource, src *image.ImageBuf, levels int) ([]byte, error) {
	if levels <= 1 {
		return res.Upload(src.Data(), src.Stride())
	}

	chain := image.GenerateMipmaps(src, levels)
	mipLevels := make([]tiler.MipLevel, chain.NumLevels())
	for i := range mipLevels {
		lvl := chain.Level(i)
		mipLevels[i] = tiler.MipLevel{Data: lvl.Data(), RowStride: lvl.Stride()}
	}
	return res.UploadMipChain(mipLevels)
}

func report(x tiler.AllocationExchange, l tiler.Layout, n int) {
	p := message.NewPrinter(language.English)
	p.Printf("surface   %dx%d %v\n", x.TexelWidth, x.TexelHeight, x.Format)
	p.Printf("layout    %s %s\n", x.Kind, x.Class)
	p.Printf("padded    %dx%d (%dx%d tiles of %dx%d)\n",
		x.HWWidth, x.HWHeight, l.TilesX, l.TilesY, l.TileWidthPixels, l.TileHeightPixels)
	if x.Kind == tiler.LayoutLinear {
		p.Printf("pitch     %d bytes\n", x.Pitch)
	}
	p.Printf("size      %d bytes\n", x.Size)
	p.Printf("converted %d bytes\n", n)
}

// detile returns the level 0 pixels of out in linear order and their row
// stride. Linear output is returned as is, at the layout pitch.
func detile(l tiler.Layout, out []byte) ([]byte, int, error) {
	if l.Kind != tiler.LayoutTiled {
		return out, l.Pitch, nil
	}
	stride := l.TilesX * l.Tile.TileWidthBytes
	linear, err := tiler.ConvertTiledToLinear(out, stride, l.Tile, l.TilesX, l.TilesY)
	if err != nil {
		return nil, 0, err
	}
	return linear, stride, nil
}

// verifyRoundTrip compares every source row with the detiled output.
func verifyRoundTrip(l tiler.Layout, src *image.ImageBuf, out []byte) error {
	linear, stride, err := detile(l, out)
	if err != nil {
		return err
	}

	rowBytes := src.Format().RowBytes(src.Width())
	for y := range src.Height() {
		if !bytes.Equal(linear[y*stride:y*stride+rowBytes], src.RowBytes(y)) {
			return fmt.Errorf("row %d differs", y)
		}
	}
	return nil
}

// detileImage wraps the detiled output in an image of the source extent.
func detileImage(l tiler.Layout, src *image.ImageBuf, out []byte) (*image.ImageBuf, error) {
	linear, stride, err := detile(l, out)
	if err != nil {
		return nil, err
	}
	return image.FromRaw(linear, src.Width(), src.Height(), src.Format(), stride)
}
