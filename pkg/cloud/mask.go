package cloud

import (
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/hed-standard/hedviz/pkg/errors"
)

// whiteThreshold is the gray level at or above which a pixel counts as
// white. Antialiased and JPEG-compressed stencils rarely hit 255 exactly.
const whiteThreshold = 250

// Mask is the binarized keep-out stencil derived from a mask image. True
// cells block word placement, false cells accept it.
type Mask struct {
	width, height int
	blocked       []bool
	free          int
	source        string
}

// LoadMask reads an image file and binarizes it to a width×height stencil.
func LoadMask(path string, width, height int) (*Mask, error) {
	img, err := imaging.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "mask file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileUnreadable, err, "mask image %s", path)
	}
	return NewMask(img, width, height, path)
}

// NewMask grayscales the image, resizes it to width×height, and thresholds
// it into a stencil: white and near-white pixels block, the rest is free.
// A stencil with no free cells is rejected, there would be nowhere to put
// words.
func NewMask(img image.Image, width, height int, source string) (*Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mask dimensions must be positive")
	}

	gray := imaging.Grayscale(img)
	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), gray, gray.Bounds(), draw.Src, nil)

	m := &Mask{
		width:   width,
		height:  height,
		blocked: make([]bool, width*height),
		source:  source,
	}
	for y := range height {
		for x := range width {
			r, _, _, _ := scaled.At(x, y).RGBA()
			if uint8(r>>8) >= whiteThreshold {
				m.blocked[y*width+x] = true
			} else {
				m.free++
			}
		}
	}
	if m.free == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mask blocks the entire canvas: %s", source)
	}
	return m, nil
}

// Width returns the stencil width in cells.
func (m *Mask) Width() int { return m.width }

// Height returns the stencil height in cells.
func (m *Mask) Height() int { return m.height }

// Source returns the path or label the mask came from.
func (m *Mask) Source() string { return m.source }

// Blocked reports whether the cell at (x, y) rejects word placement.
// Out-of-range cells block.
func (m *Mask) Blocked(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return true
	}
	return m.blocked[y*m.width+x]
}

// FreeFraction returns the share of cells words may occupy.
func (m *Mask) FreeFraction() float64 {
	return float64(m.free) / float64(m.width*m.height)
}

// WriteStencil saves the normalized stencil as a PNG: blocked cells white,
// free cells black. Reloading the file reproduces the mask exactly.
func (m *Mask) WriteStencil(path string) error {
	img := image.NewRGBA(image.Rect(0, 0, m.width, m.height))
	for y := range m.height {
		for x := range m.width {
			c := color.RGBA{A: 255}
			if m.blocked[y*m.width+x] {
				c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, err, "write mask stencil %s", path)
	}
	return nil
}

// ===== Contour tracing =====

// Point is a vertex in raster coordinates.
type Point struct {
	X, Y float64
}

// gridPoint is a contour vertex in doubled coordinates, so edge midpoints
// stay integral and usable as map keys.
type gridPoint struct {
	x, y int
}

type segment struct {
	a, b gridPoint
}

// Contours traces the boundary between blocked and free cells as closed
// polygons using midpoint marching squares. Each loop's closing edge back
// to its first point is implicit. Coordinates are raster pixels.
func (m *Mask) Contours() [][]Point {
	segs := m.marchSquares()
	if len(segs) == 0 {
		return nil
	}

	adjacency := make(map[gridPoint][]gridPoint, len(segs)*2)
	for _, s := range segs {
		adjacency[s.a] = append(adjacency[s.a], s.b)
		adjacency[s.b] = append(adjacency[s.b], s.a)
	}

	// Every midpoint has degree two, so the segments form disjoint simple
	// cycles; a greedy walk from any unvisited segment closes one loop.
	visited := make(map[gridPoint]bool, len(adjacency))
	var loops [][]Point
	for _, s := range segs {
		if visited[s.a] {
			continue
		}
		loop := []gridPoint{s.a}
		visited[s.a] = true
		cur := s.a
		for {
			var next gridPoint
			found := false
			for _, n := range adjacency[cur] {
				if !visited[n] || (n == loop[0] && len(loop) >= 3) {
					next, found = n, true
					break
				}
			}
			if !found || next == loop[0] {
				break
			}
			visited[next] = true
			loop = append(loop, next)
			cur = next
		}
		if len(loop) < 3 {
			continue
		}
		pts := make([]Point, len(loop))
		for i, gp := range loop {
			pts[i] = Point{X: float64(gp.x) / 2, Y: float64(gp.y) / 2}
		}
		loops = append(loops, pts)
	}
	return loops
}

// marchSquares emits one or two boundary segments per 2×2 sample cell.
// Samples sit at pixel centers and out-of-range samples are free, so
// contours always close.
func (m *Mask) marchSquares() []segment {
	sample := func(x, y int) bool {
		if x < 0 || y < 0 || x >= m.width || y >= m.height {
			return false
		}
		return m.blocked[y*m.width+x]
	}

	var segs []segment
	for cy := -1; cy < m.height; cy++ {
		for cx := -1; cx < m.width; cx++ {
			idx := 0
			if sample(cx, cy) {
				idx |= 8 // top-left
			}
			if sample(cx+1, cy) {
				idx |= 4 // top-right
			}
			if sample(cx+1, cy+1) {
				idx |= 2 // bottom-right
			}
			if sample(cx, cy+1) {
				idx |= 1 // bottom-left
			}

			top := gridPoint{2*cx + 2, 2*cy + 1}
			bottom := gridPoint{2*cx + 2, 2*cy + 3}
			left := gridPoint{2*cx + 1, 2*cy + 2}
			right := gridPoint{2*cx + 3, 2*cy + 2}

			switch idx {
			case 0, 15:
			case 1:
				segs = append(segs, segment{left, bottom})
			case 2:
				segs = append(segs, segment{bottom, right})
			case 3:
				segs = append(segs, segment{left, right})
			case 4:
				segs = append(segs, segment{top, right})
			case 5:
				segs = append(segs, segment{top, left}, segment{bottom, right})
			case 6:
				segs = append(segs, segment{top, bottom})
			case 7:
				segs = append(segs, segment{top, left})
			case 8:
				segs = append(segs, segment{top, left})
			case 9:
				segs = append(segs, segment{top, bottom})
			case 10:
				segs = append(segs, segment{top, right}, segment{bottom, left})
			case 11:
				segs = append(segs, segment{top, right})
			case 12:
				segs = append(segs, segment{left, right})
			case 13:
				segs = append(segs, segment{bottom, right})
			case 14:
				segs = append(segs, segment{left, bottom})
			}
		}
	}
	return segs
}
