package sink

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/hed-standard/hedviz/pkg/cloud"
	"github.com/hed-standard/hedviz/pkg/colormap"
	"github.com/hed-standard/hedviz/pkg/errors"
)

// SVGOption configures SVG serialization.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title      string
	background bool
}

// WithTitle embeds a <title> element, which viewers show as a tooltip and
// screen readers announce.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithoutBackground skips the background rect, leaving the area around the
// raster transparent.
func WithoutBackground() SVGOption { return func(r *svgRenderer) { r.background = false } }

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// SVG serializes a rendering: a canvas-sized root, an optional background
// rect, the raster embedded as a base64 PNG image, and the traced mask
// contour as vector paths on top so the outline stays crisp at any zoom.
func SVG(r *cloud.Rendering, opts ...SVGOption) ([]byte, error) {
	if r.Empty() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing rendered yet")
	}
	sr := svgRenderer{background: true}
	for _, opt := range opts {
		opt(&sr)
	}

	raster, err := PNG(r)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		r.Width, r.Height, r.Width, r.Height)

	if sr.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", xmlEscaper.Replace(sr.title))
	}

	if sr.background && r.Config.BackgroundColor != "" {
		bg, err := colormap.ParseColor(r.Config.BackgroundColor)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", colormap.Hex(bg))
	}

	fmt.Fprintf(&buf, `  <image width="%d" height="%d" href="data:image/png;base64,%s"/>`+"\n",
		r.Width, r.Height, base64.StdEncoding.EncodeToString(raster))

	if err := renderContours(&buf, r); err != nil {
		return nil, err
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func renderContours(buf *bytes.Buffer, r *cloud.Rendering) error {
	if len(r.Contours) == 0 || r.Config.ContourWidth <= 0 {
		return nil
	}
	stroke, err := colormap.ParseColor(r.Config.ContourColor)
	if err != nil {
		return err
	}
	hex := colormap.Hex(stroke)
	for _, loop := range r.Contours {
		if len(loop) < 2 {
			continue
		}
		buf.WriteString(`  <path d="`)
		for i, p := range loop {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			fmt.Fprintf(buf, "%s%.1f %.1f ", cmd, p.X, p.Y)
		}
		fmt.Fprintf(buf, `Z" fill="none" stroke="%s" stroke-width="%.1f" stroke-linejoin="round"/>`+"\n",
			hex, r.Config.ContourWidth)
	}
	return nil
}
