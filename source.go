package vlass

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for ImageFileSource
	_ "image/png"
	"os"
	"path/filepath"
)

// ImageSource provides the 2D raster to cut from. Implementations own file
// access and axis handling: the returned raster must already be 2D, and
// degenerate reports how many size-1 axes were collapsed to get there.
type ImageSource interface {
	Raster() (r *Raster, degenerate int, err error)
}

// Projector converts sky positions to raster pixel coordinates. The projection
// math (WCS) lives outside this package; catalog-driven extraction only needs
// the resulting pixel pairs.
type Projector interface {
	ToPixel(coords []WorldCoord) ([]PixelCenter, error)
}

// RasterSource is an ImageSource over an in-memory raster.
type RasterSource struct {
	R          *Raster
	Degenerate int
}

// Raster implements ImageSource.
func (s RasterSource) Raster() (*Raster, int, error) {
	if err := s.R.validate(); err != nil {
		return nil, 0, err
	}
	return s.R, s.Degenerate, nil
}

// ImageFileSource is an ImageSource that decodes a PNG or JPEG file into a
// grayscale raster.
type ImageFileSource struct {
	Path string
}

// Raster implements ImageSource.
func (s ImageFileSource) Raster() (*Raster, int, error) {
	f, err := os.Open(filepath.Clean(s.Path))
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	r, err := RasterFromImage(img)
	if err != nil {
		return nil, 0, err
	}
	return r, 0, nil
}

// ExtractFromSource chains an image source and a projector into ExtractMany:
// it loads the raster, projects the sky coordinates to pixel space, and
// extracts one cutout per coordinate in input order.
func ExtractFromSource(src ImageSource, proj Projector, coords []WorldCoord, size int, opts ...func(o *ExtractOptions)) ([]*Cutout, error) {
	r, _, err := src.Raster()
	if err != nil {
		return nil, fmt.Errorf("load raster: %w", err)
	}
	centers, err := proj.ToPixel(coords)
	if err != nil {
		return nil, fmt.Errorf("project coordinates: %w", err)
	}
	if len(centers) != len(coords) {
		return nil, fmt.Errorf("projector returned %d centers for %d coordinates", len(centers), len(coords))
	}
	return ExtractMany(r, centers, size, opts...)
}
