package vlass

// PixelCenter is a target position in raster index space.
// Coordinates need not be integral or in bounds.
type PixelCenter struct {
	X float64
	Y float64
}

// WorldCoord is a sky position in ICRS degrees, to be converted to pixel
// space by a Projector.
type WorldCoord struct {
	RA  float64
	Dec float64
}

// ExtractOptions controls batch cutout extraction.
type ExtractOptions struct {
	// Parallelism is the number of workers extracting cutouts concurrently.
	// Values <= 1 select the serial path. Output is identical either way.
	Parallelism int
	// OnCutout, if set, is called once per finished cutout with its input index.
	// Callbacks may arrive out of order when Parallelism > 1.
	OnCutout func(i int, c *Cutout)
}

// ExportOptions controls rendering of a cutout to a grayscale image.
type ExportOptions struct {
	// Lo and Hi bound the linear value-to-gray mapping. When Lo == Hi the
	// range is taken from the cutout's finite samples.
	Lo float64
	Hi float64
	// PreviewSize, if > 0, scales the exported image to PreviewSize on its
	// longer side before writing.
	PreviewSize int
}
