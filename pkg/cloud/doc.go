// Package cloud draws word clouds from frequency maps.
//
// Generate wraps the placement engine behind an owned Rendering value: the
// caller gets raster pixels, the binarized mask, and traced contour
// polygons, never a handle into the engine. Sinks under cloud/sink turn a
// Rendering into PNG or SVG bytes.
//
// Mask convention follows the usual stencil polarity: white source pixels
// block word placement, everything else is free.
package cloud
