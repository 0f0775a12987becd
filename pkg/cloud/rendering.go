package cloud

import (
	"image"

	"github.com/hed-standard/hedviz/pkg/config"
)

// Rendering is the owned output of Generate: the drawn raster plus the
// metadata sinks need to serialize it. It holds no handle into the drawing
// engine, so callers may retain it freely.
type Rendering struct {
	// Image is the composited raster, words plus contour.
	Image *image.RGBA

	// Width and Height are the canvas size in pixels.
	Width, Height int

	// Words is the frequency set that was drawn, after dropping
	// non-positive weights.
	Words Frequencies

	// Mask is the stencil used for placement, nil when none was configured.
	Mask *Mask

	// Contours is the traced mask outline; empty without a mask.
	Contours [][]Point

	// Config echoes the effective configuration the cloud was drawn with,
	// defaults applied.
	Config config.WordCloudConfig
}

// Empty reports whether the rendering carries no raster.
func (r *Rendering) Empty() bool {
	return r == nil || r.Image == nil
}

// Bounds returns the raster bounds, or the zero rectangle when empty.
func (r *Rendering) Bounds() image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	return r.Image.Bounds()
}
