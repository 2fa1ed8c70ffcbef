// Package vlass provides pure-Go tooling for working with VLASS quick-look images.
//
// The core operation is bounded square-window extraction: pulling fixed-size
// square cutouts out of a large 2D raster at arbitrary pixel positions, with
// NaN fill for any part of a window that falls outside the raster. Opening the
// image container and projecting sky coordinates to pixel space are left to
// the caller (see ImageSource and Projector).
package vlass
