package vlass

const (
	// DefaultCutoutSize matches the VLASS quick-look convention of a
	// 61x61 pixel window (about 1 arcmin at 1"/pixel).
	DefaultCutoutSize = 61
)

const (
	defaultPreviewSize = 256
	sentinelGray       = 0 // Gray16 value used for NaN pixels in exports
)
