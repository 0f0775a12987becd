// Package colormap provides named color gradients for word-cloud palettes.
//
// Each colormap is a sequence of gradient stops sampled by a fraction in
// [0, 1]. The named maps approximate the matplotlib colormaps the HED
// tooling historically used, so configurations written for the Python
// tools keep producing comparable palettes.
package colormap

import (
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/hed-standard/hedviz/pkg/errors"
)

// Colormap is an immutable named gradient.
type Colormap struct {
	name  string
	stops []colorful.Color
}

// Default is the colormap used when a configuration does not name one.
const Default = "nipy_spectral"

var colormaps = map[string]Colormap{
	"autumn":        mustMap("autumn", "#FF0000", "#FFFF00"),
	"cividis":       mustMap("cividis", "#00224E", "#123570", "#3B496C", "#575D6D", "#707173", "#8A8678", "#A59C74", "#C3B369", "#E1CC55", "#FEE838"),
	"cool":          mustMap("cool", "#00FFFF", "#FF00FF"),
	"gray":          mustMap("gray", "#000000", "#FFFFFF"),
	"hot":           mustMap("hot", "#0B0000", "#E60000", "#FFB300", "#FFFFFF"),
	"inferno":       mustMap("inferno", "#000004", "#1B0C41", "#4A0C6B", "#781C6D", "#A52C60", "#CF4446", "#ED6925", "#FB9A06", "#F7D03C", "#FCFFA4"),
	"jet":           mustMap("jet", "#000080", "#0000FF", "#00FFFF", "#80FF80", "#FFFF00", "#FF0000", "#800000"),
	"magma":         mustMap("magma", "#000004", "#180F3D", "#440F76", "#721F81", "#9E2F7F", "#CD4071", "#F1605D", "#FD9668", "#FEC98D", "#FCFDBF"),
	"nipy_spectral": mustMap("nipy_spectral", "#000000", "#7A0099", "#0000CC", "#0077DD", "#00AAAA", "#00A344", "#00BB00", "#55FF00", "#CCFF00", "#FFEE00", "#FF9900", "#EE2200", "#CC0000", "#CCCCCC"),
	"plasma":        mustMap("plasma", "#0D0887", "#46039F", "#7201A8", "#9C179E", "#BD3786", "#D8576B", "#ED7953", "#FB9F3A", "#FDCA26", "#F0F921"),
	"rainbow":       mustMap("rainbow", "#8000FF", "#00B5EB", "#80FF80", "#FFB360", "#FF0000"),
	"spring":        mustMap("spring", "#FF00FF", "#FFFF00"),
	"summer":        mustMap("summer", "#008066", "#FFFF66"),
	"viridis":       mustMap("viridis", "#440154", "#482878", "#3E4A89", "#31688E", "#26828E", "#1F9E89", "#35B779", "#6DCD59", "#B4DE2C", "#FDE725"),
	"winter":        mustMap("winter", "#0000FF", "#00FF80"),
}

func mustMap(name string, hexes ...string) Colormap {
	stops := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic("colormap: bad stop " + h + " in " + name)
		}
		stops[i] = c
	}
	return Colormap{name: name, stops: stops}
}

// Lookup returns the colormap registered under name.
func Lookup(name string) (Colormap, error) {
	cm, ok := colormaps[name]
	if !ok {
		return Colormap{}, errors.New(errors.ErrCodeInvalidColormap, "unknown colormap: %q (see colormap.Names)", name)
	}
	return cm, nil
}

// IsRegistered reports whether name identifies a known colormap.
func IsRegistered(name string) bool {
	_, ok := colormaps[name]
	return ok
}

// Names returns every registered colormap name in sorted order.
func Names() []string {
	names := make([]string, 0, len(colormaps))
	for name := range colormaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Name returns the registered name of the colormap.
func (c Colormap) Name() string {
	return c.name
}

// Sample interpolates the gradient at fraction t. Values outside [0, 1]
// are clamped. Interpolation happens in Lab space so perceived lightness
// changes evenly between stops.
func (c Colormap) Sample(t float64) colorful.Color {
	if len(c.stops) == 0 {
		return colorful.Color{}
	}
	if len(c.stops) == 1 {
		return c.stops[0]
	}

	t = max(0.0, min(t, 1.0))
	scaled := t * float64(len(c.stops)-1)
	idx := int(scaled)
	if idx >= len(c.stops)-1 {
		return c.stops[len(c.stops)-1]
	}
	frac := scaled - float64(idx)
	return c.stops[idx].BlendLab(c.stops[idx+1], frac).Clamped()
}
