package cloud

import (
	"hash/fnv"
	"image"
	"image/color"
	stddraw "image/draw"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/psykhi/wordclouds"

	"github.com/hed-standard/hedviz/pkg/colormap"
	"github.com/hed-standard/hedviz/pkg/config"
	"github.com/hed-standard/hedviz/pkg/errors"
	"github.com/hed-standard/hedviz/pkg/fonts"
)

// Generate draws a word cloud for the given frequencies and returns the
// owned rendering. The config is validated and defaulted first, so a
// zero-value optional field behaves like the documented default. Input
// problems (no drawable words, bad config, unresolvable font or mask)
// surface as coded errors before any drawing happens.
func Generate(freqs Frequencies, cfg config.WordCloudConfig) (*Rendering, error) {
	if err := freqs.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	words := freqs.Positive()

	fontPath, err := fonts.Resolve(cfg.FontPath)
	if err != nil {
		return nil, err
	}

	var mask *Mask
	var contours [][]Point
	var boxes []*wordclouds.Box
	if cfg.UseMask {
		mask, err = LoadMask(cfg.MaskPath, cfg.Width, cfg.Height)
		if err != nil {
			return nil, err
		}
		contours = mask.Contours()
		boxes, err = exclusionBoxes(mask)
		if err != nil {
			return nil, err
		}
	}

	background := color.Color(color.Transparent)
	if cfg.BackgroundColor != "" {
		if background, err = colormap.ParseColor(cfg.BackgroundColor); err != nil {
			return nil, err
		}
	}
	palette, err := buildPalette(words, cfg)
	if err != nil {
		return nil, err
	}

	maxFont := cfg.MaxFontSize
	if maxFont == 0 {
		maxFont = int(math.Round(float64(cfg.Height) / 4 * (1 + cfg.ScaleAdjustment)))
	}
	maxFont = max(maxFont, cfg.MinFontSize)

	opts := []wordclouds.Option{
		wordclouds.FontFile(fontPath),
		wordclouds.FontMinSize(cfg.MinFontSize),
		wordclouds.FontMaxSize(maxFont),
		wordclouds.Width(cfg.Width),
		wordclouds.Height(cfg.Height),
		wordclouds.Colors(palette),
		wordclouds.BackgroundColor(background),
		wordclouds.RandomPlacement(false),
	}
	if len(boxes) > 0 {
		opts = append(opts, wordclouds.MaskBoxes(boxes))
	}

	engine := wordclouds.NewWordcloud(shapeWeights(words, cfg.RelativeScaling), opts...)
	raster := rasterize(engine.Draw())

	if mask != nil && cfg.ContourWidth > 0 {
		contourColor, err := colormap.ParseColor(cfg.ContourColor)
		if err != nil {
			return nil, err
		}
		drawContours(raster, contours, contourColor, cfg.ContourWidth)
	}

	return &Rendering{
		Image:    raster,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Words:    words,
		Mask:     mask,
		Contours: contours,
		Config:   cfg,
	}, nil
}

// buildPalette walks the configured colormap once per word. The walk is
// seeded from the word set, so the same input draws with the same colors.
func buildPalette(words Frequencies, cfg config.WordCloudConfig) ([]color.Color, error) {
	cm, err := colormap.Lookup(cfg.Colormap)
	if err != nil {
		return nil, err
	}
	h := fnv.New64a()
	for _, word := range words.Words() {
		h.Write([]byte(word))
	}
	walker := colormap.NewWalker(cm, cfg.ColorRange, cfg.ColorStepRange, h.Sum64())
	return walker.Palette(len(words)), nil
}

// exclusionBoxes feeds the engine the keep-out zones of a mask. The engine
// derives zones from an image file, so the normalized stencil goes through
// a temporary PNG: blocked cells white, free cells black, black excluded.
func exclusionBoxes(m *Mask) ([]*wordclouds.Box, error) {
	tmp, err := os.CreateTemp("", "hedviz-stencil-*.png")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileWrite, err, "stage mask stencil")
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := m.WriteStencil(path); err != nil {
		return nil, err
	}
	return wordclouds.Mask(path, m.Width(), m.Height(), color.RGBA{A: 255}), nil
}

func rasterize(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	stddraw.Draw(rgba, bounds, img, bounds.Min, stddraw.Src)
	return rgba
}

func drawContours(dst *image.RGBA, loops [][]Point, c color.Color, width float64) {
	dc := gg.NewContextForRGBA(dst)
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	for _, loop := range loops {
		if len(loop) < 2 {
			continue
		}
		dc.MoveTo(loop[0].X, loop[0].Y)
		for _, p := range loop[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
	}
	dc.Stroke()
}
