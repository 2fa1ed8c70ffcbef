package vlass

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CutoutStats summarizes the finite samples of a cutout.
type CutoutStats struct {
	Valid    int // samples covered by the raster
	Sentinel int // NaN-filled samples
	Min      float64
	Max      float64
	Mean     float64
	StdDev   float64
}

// SentinelFraction is the share of the cutout not covered by the raster.
func (s CutoutStats) SentinelFraction() float64 {
	total := s.Valid + s.Sentinel
	if total == 0 {
		return 0
	}
	return float64(s.Sentinel) / float64(total)
}

// Stats computes summary statistics over the cutout's finite samples.
// For an all-sentinel cutout Min, Max, Mean and StdDev are NaN.
func (c *Cutout) Stats() CutoutStats {
	valid := make([]float64, 0, len(c.Pix))
	for _, v := range c.Pix {
		if isFinite(v) {
			valid = append(valid, v)
		}
	}
	s := CutoutStats{
		Valid:    len(valid),
		Sentinel: len(c.Pix) - len(valid),
	}
	if len(valid) == 0 {
		s.Min, s.Max, s.Mean, s.StdDev = nan, nan, nan, nan
		return s
	}
	s.Min = floats.Min(valid)
	s.Max = floats.Max(valid)
	s.Mean, s.StdDev = stat.MeanStdDev(valid, nil)
	return s
}
