package vlass

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"gonum.org/v1/gonum/mat"
)

// Raster is a 2D grid of real-valued samples, stored row-major.
// Row 0 orientation (top or bottom) is the caller's convention and must match
// how pixel centers were derived. The extraction code never mutates a Raster.
type Raster struct {
	Width  int
	Height int
	Stride int // samples per row
	Pix    []float64
}

// ErrEmptyRaster is returned when a raster has a zero dimension.
var ErrEmptyRaster = errors.New("raster has zero rows or columns")

// NewRaster allocates a zero-filled raster of the given dimensions.
func NewRaster(width, height int) (*Raster, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyRaster, width, height)
	}
	return &Raster{
		Width:  width,
		Height: height,
		Stride: width,
		Pix:    make([]float64, width*height),
	}, nil
}

// At returns the sample at column x, row y. Bounds are the caller's problem.
func (r *Raster) At(x, y int) float64 {
	return r.Pix[y*r.Stride+x]
}

// Set stores a sample at column x, row y.
func (r *Raster) Set(x, y int, v float64) {
	r.Pix[y*r.Stride+x] = v
}

func (r *Raster) validate() error {
	if r == nil {
		return errors.New("nil raster")
	}
	if r.Width < 1 || r.Height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyRaster, r.Width, r.Height)
	}
	if r.Stride < r.Width {
		return fmt.Errorf("raster stride %d smaller than width %d", r.Stride, r.Width)
	}
	if need := (r.Height-1)*r.Stride + r.Width; len(r.Pix) < need {
		return fmt.Errorf("raster pix length %d, need at least %d", len(r.Pix), need)
	}
	return nil
}

// RasterFromImage converts an image to a grayscale raster, one sample per
// pixel, using the Gray16 luma in [0, 65535]. Convenient glue for driving the
// extractor from PNG/JPEG files; real survey data should come from an
// ImageSource instead.
func RasterFromImage(img image.Image) (*Raster, error) {
	b := img.Bounds()
	r, err := NewRaster(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			r.Set(x, y, float64(c.Y))
		}
	}
	return r, nil
}

// RasterFromMatrix copies a gonum matrix into a raster, with matrix row i
// becoming raster row i and matrix column j becoming raster column j.
func RasterFromMatrix(m mat.Matrix) (*Raster, error) {
	rows, cols := m.Dims()
	r, err := NewRaster(cols, rows)
	if err != nil {
		return nil, err
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r.Set(x, y, m.At(y, x))
		}
	}
	return r, nil
}

// Matrix returns a dense gonum matrix copy of the raster.
func (r *Raster) Matrix() *mat.Dense {
	m := mat.NewDense(r.Height, r.Width, nil)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			m.Set(y, x, r.At(x, y))
		}
	}
	return m
}
