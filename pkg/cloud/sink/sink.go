// Package sink serializes renderings to their output formats.
//
// Each format gets a dedicated entry point (PNG, SVG); Render dispatches on
// a format name from config.ValidFormats. Sinks never mutate the rendering.
package sink

import (
	"os"

	"github.com/hed-standard/hedviz/pkg/cloud"
	"github.com/hed-standard/hedviz/pkg/config"
	"github.com/hed-standard/hedviz/pkg/errors"
)

// Render serializes a rendering to the named format.
func Render(format string, r *cloud.Rendering) ([]byte, error) {
	switch format {
	case config.FormatPNG:
		return PNG(r)
	case config.FormatSVG:
		return SVG(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported output format: %q", format)
	}
}

// WriteFile writes serialized output to path.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, err, "write %s", path)
	}
	return nil
}
