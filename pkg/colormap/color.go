package colormap

import (
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/hed-standard/hedviz/pkg/errors"
)

// namedColors covers the CSS color names that show up in HED visualization
// configurations. Anything fancier has to be written as a hex triplet.
var namedColors = map[string]string{
	"black":   "#000000",
	"blue":    "#0000FF",
	"brown":   "#A52A2A",
	"cyan":    "#00FFFF",
	"gold":    "#FFD700",
	"gray":    "#808080",
	"green":   "#008000",
	"grey":    "#808080",
	"lime":    "#00FF00",
	"magenta": "#FF00FF",
	"maroon":  "#800000",
	"navy":    "#000080",
	"olive":   "#808000",
	"orange":  "#FFA500",
	"pink":    "#FFC0CB",
	"purple":  "#800080",
	"red":     "#FF0000",
	"silver":  "#C0C0C0",
	"teal":    "#008080",
	"white":   "#FFFFFF",
	"yellow":  "#FFFF00",
}

// ParseColor converts a color specification to a concrete color. Accepted
// forms are a known color name ("black", case-insensitive) or a hex
// triplet ("#1a2b3c" or "#abc").
func ParseColor(spec string) (color.Color, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "color cannot be empty")
	}

	if hex, ok := namedColors[strings.ToLower(s)]; ok {
		s = hex
	}

	if !strings.HasPrefix(s, "#") {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown color name: %q", spec)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid hex color: %q", spec)
	}
	return c, nil
}

// IsColor reports whether spec parses as a color.
func IsColor(spec string) bool {
	_, err := ParseColor(spec)
	return err == nil
}

// Hex formats any color as a "#rrggbb" string. Fully transparent colors
// collapse to black.
func Hex(c color.Color) string {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cc.Hex()
}
