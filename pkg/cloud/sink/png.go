package sink

import (
	"bytes"
	"image/png"

	"github.com/hed-standard/hedviz/pkg/cloud"
	"github.com/hed-standard/hedviz/pkg/errors"
)

// PNG encodes the rendering's raster losslessly.
func PNG(r *cloud.Rendering) ([]byte, error) {
	if r.Empty() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing rendered yet")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.Image); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
