package vlass

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
)

// Image renders the cutout as a Gray16 image. Finite samples are mapped
// linearly from [opt.Lo, opt.Hi] onto the gray range; sentinel pixels render
// as black so missing coverage stays visible. When Lo == Hi the range is
// taken from the cutout's own finite samples.
func (c *Cutout) Image(opts ...func(o *ExportOptions)) *image.Gray16 {
	opt := ExportOptions{}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	lo, hi := opt.Lo, opt.Hi
	if lo == hi {
		s := c.Stats()
		lo, hi = s.Min, s.Max
	}

	img := image.NewGray16(image.Rect(0, 0, c.Size, c.Size))
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			v := c.At(x, y)
			if !isFinite(v) {
				img.SetGray16(x, y, color.Gray16{Y: sentinelGray})
				continue
			}
			img.SetGray16(x, y, color.Gray16{Y: grayScale(v, lo, hi)})
		}
	}
	return img
}

// Preview renders the cutout and scales it to size x size pixels using
// Lanczos resampling.
func (c *Cutout) Preview(size int, opts ...func(o *ExportOptions)) image.Image {
	if size <= 0 {
		size = defaultPreviewSize
	}
	return resize.Resize(uint(size), uint(size), c.Image(opts...), resize.Lanczos3)
}

// WriteCutoutPNG renders a cutout and writes it to outPath as PNG.
// If ExportOptions.PreviewSize is set, the image is scaled first.
func WriteCutoutPNG(c *Cutout, outPath string, opts ...func(o *ExportOptions)) error {
	if c == nil {
		return errors.New("nil cutout")
	}
	opt := ExportOptions{}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	var img image.Image = c.Image(opts...)
	if opt.PreviewSize > 0 {
		img = resize.Resize(uint(opt.PreviewSize), uint(opt.PreviewSize), img, resize.Lanczos3)
	}

	f, err := os.Create(filepath.Clean(outPath))
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", outPath, err)
	}
	return f.Close()
}
