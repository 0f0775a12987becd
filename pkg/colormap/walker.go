package colormap

import (
	"image/color"
	"math/rand/v2"
)

// Walker produces word colors by stepping through a slice of a colormap.
// Starting from a random fraction, each call advances by a random step in
// the configured step range, wraps modulo 1, and scales the fraction into
// the configured color range before sampling. Successive colors therefore
// stay within one band of the map while still varying visibly, which is
// what keeps large clouds readable.
type Walker struct {
	cm       Colormap
	rangeLo  float64
	rangeHi  float64
	stepLo   float64
	stepHi   float64
	fraction float64
	rng      *rand.Rand
}

// NewWalker creates a walker over cm restricted to colorRange, advancing
// by steps drawn from stepRange. The seed fixes the starting fraction and
// the step sequence.
func NewWalker(cm Colormap, colorRange, stepRange [2]float64, seed uint64) *Walker {
	rng := rand.New(rand.NewPCG(seed, seed^0xda7a5eed))
	return &Walker{
		cm:       cm,
		rangeLo:  colorRange[0],
		rangeHi:  colorRange[1],
		stepLo:   stepRange[0],
		stepHi:   stepRange[1],
		fraction: rng.Float64(),
		rng:      rng,
	}
}

// Next advances the walker and returns the next color.
func (w *Walker) Next() color.Color {
	step := w.stepLo + w.rng.Float64()*(w.stepHi-w.stepLo)
	w.fraction += step
	for w.fraction >= 1.0 {
		w.fraction -= 1.0
	}
	scaled := w.rangeLo + w.fraction*(w.rangeHi-w.rangeLo)
	return w.cm.Sample(scaled)
}

// Palette returns the next n colors as a slice.
func (w *Walker) Palette(n int) []color.Color {
	palette := make([]color.Color, n)
	for i := range palette {
		palette[i] = w.Next()
	}
	return palette
}
