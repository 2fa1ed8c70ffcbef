package vlass

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// ErrBadSize is returned when the requested cutout size is even or not positive.
var ErrBadSize = errors.New("cutout size must be a positive odd integer")

// Cutout is a fixed-size square window extracted from a raster.
// Pixels the raster does not cover hold NaN. A Cutout owns its storage and
// never aliases the source raster.
type Cutout struct {
	Size   int
	Center PixelCenter // the requested center, as given
	Pix    []float64   // Size*Size samples, row-major
}

// At returns the sample at column x, row y of the cutout.
func (c *Cutout) At(x, y int) float64 {
	return c.Pix[y*c.Size+x]
}

// IsSentinel reports whether the sample at column x, row y is the
// "no data" fill.
func (c *Cutout) IsSentinel(x, y int) bool {
	return math.IsNaN(c.At(x, y))
}

// ExtractMany extracts one size x size cutout per center, in input order.
//
// size must be a positive odd integer; half = (size-1)/2. Fractional centers
// are rounded with math.Round, so halves round away from zero: 2.5 becomes 3
// and -2.5 becomes -3. Centers outside the raster yield partially or fully
// NaN-filled cutouts rather than errors; non-finite coordinates yield a fully
// NaN-filled cutout. The raster is only read, never retained.
func ExtractMany(r *Raster, centers []PixelCenter, size int, opts ...func(o *ExtractOptions)) ([]*Cutout, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	if size < 1 || size%2 == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadSize, size)
	}

	opt := ExtractOptions{}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	out := make([]*Cutout, len(centers))
	if opt.Parallelism > 1 && len(centers) > 1 {
		extractParallel(r, centers, size, &opt, out)
		return out, nil
	}
	for i, center := range centers {
		out[i] = extractOne(r, center, size)
		if opt.OnCutout != nil {
			opt.OnCutout(i, out[i])
		}
	}
	return out, nil
}

func extractParallel(r *Raster, centers []PixelCenter, size int, opt *ExtractOptions, out []*Cutout) {
	workers := opt.Parallelism
	if workers > len(centers) {
		workers = len(centers)
	}
	idx := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idx {
				out[i] = extractOne(r, centers[i], size)
				if opt.OnCutout != nil {
					opt.OnCutout(i, out[i])
				}
			}
		}()
	}
	for i := range centers {
		idx <- i
	}
	close(idx)
	wg.Wait()
}

// maxCenterCoord bounds center coordinates before conversion to int, so the
// conversion cannot overflow. Anything beyond it misses every real raster.
const maxCenterCoord = 1 << 40

func extractOne(r *Raster, center PixelCenter, size int) *Cutout {
	c := &Cutout{
		Size:   size,
		Center: center,
		Pix:    make([]float64, size*size),
	}
	for i := range c.Pix {
		c.Pix[i] = math.NaN()
	}

	if !isFinite(center.X) || !isFinite(center.Y) {
		return c
	}
	if math.Abs(center.X) > maxCenterCoord || math.Abs(center.Y) > maxCenterCoord {
		return c
	}

	half := (size - 1) / 2
	xi := int(math.Round(center.X))
	yi := int(math.Round(center.Y))

	// Window [xi-half, xi+half] intersected with the raster, as half-open ranges.
	xStart := max(0, xi-half)
	xEnd := min(r.Width, xi+half+1)
	yStart := max(0, yi-half)
	yEnd := min(r.Height, yi+half+1)
	if xEnd <= xStart || yEnd <= yStart {
		return c
	}

	// Same rectangle in cutout-local coordinates.
	cxStart := max(0, half-xi)
	cyStart := max(0, half-yi)

	// Re-clamp to the smaller shape on each axis so independently computed
	// ranges cannot write past either grid.
	w := min(xEnd-xStart, size-cxStart)
	h := min(yEnd-yStart, size-cyStart)

	for row := 0; row < h; row++ {
		srcOff := (yStart+row)*r.Stride + xStart
		dstOff := (cyStart+row)*size + cxStart
		copy(c.Pix[dstOff:dstOff+w], r.Pix[srcOff:srcOff+w])
	}
	return c
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
