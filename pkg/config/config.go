// Package config defines the option structures controlling word-cloud
// generation and visualization output.
//
// Two structures cover the surface:
//
//   - WordCloudConfig: layout, color, mask, and font options for a single
//     rendered cloud.
//   - VisualizationConfig: output formats, save directory, and an embedded
//     WordCloudConfig.
//
// Both are plain value types. Construct them with DefaultWordCloud, with
// New and functional options, or decode them from JSON, TOML, or YAML (see
// decode.go). Decoding is strict: unknown keys are a configuration error,
// never silently dropped. Validation never touches the filesystem; whether
// a mask or font file actually loads is checked at render time.
package config

import (
	"github.com/hed-standard/hedviz/pkg/colormap"
	"github.com/hed-standard/hedviz/pkg/errors"
	"github.com/hed-standard/hedviz/pkg/fonts"
)

// =============================================================================
// Default Values - Single Source of Truth for Library and CLI
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 600

	// DefaultPreferHorizontal is the default fraction of horizontal text.
	DefaultPreferHorizontal = 0.75

	// DefaultMinFontSize is the default minimum font size in points.
	DefaultMinFontSize = 8

	// DefaultColormap is the default colormap name.
	DefaultColormap = colormap.Default

	// DefaultContourWidth is the default mask contour stroke width.
	DefaultContourWidth = 3.0

	// DefaultContourColor is the default mask contour stroke color.
	DefaultContourColor = "black"

	// DefaultRelativeScaling is the default frequency-to-size coupling.
	// 1 sizes words proportionally to their counts, 0 by rank only.
	DefaultRelativeScaling = 1.0
)

// Default sampling windows for the colormap walker.
var (
	// DefaultColorRange restricts palette sampling to a band of the colormap.
	DefaultColorRange = [2]float64{0.0, 0.5}

	// DefaultColorStepRange bounds the random walk step between words.
	DefaultColorStepRange = [2]float64{0.15, 0.25}
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// WordCloudConfig
// =============================================================================

// WordCloudConfig holds every option for rendering a single word cloud.
// The zero value is not usable: Width and Height are required. All other
// fields are optional and fall back to the documented defaults.
//
// The struct has value semantics and is comparable with ==; a validated
// config is treated as immutable.
type WordCloudConfig struct {
	// Width and Height are the canvas dimensions in pixels. Required,
	// must be positive.
	Width  int `json:"width" toml:"width" yaml:"width"`
	Height int `json:"height" toml:"height" yaml:"height"`

	// BackgroundColor is a color name or #hex triplet. Empty means a
	// transparent background.
	BackgroundColor string `json:"background_color,omitempty" toml:"background_color" yaml:"background_color"`

	// PreferHorizontal is the preferred fraction of horizontally laid out
	// words, between 0 and 1. Zero selects the default (0.75).
	PreferHorizontal float64 `json:"prefer_horizontal,omitempty" toml:"prefer_horizontal" yaml:"prefer_horizontal"`

	// MinFontSize is the smallest font size used, in points. Zero selects
	// the default (8).
	MinFontSize int `json:"min_font_size,omitempty" toml:"min_font_size" yaml:"min_font_size"`

	// MaxFontSize is the largest font size used, in points. Zero derives
	// the maximum from the canvas height and ScaleAdjustment.
	MaxFontSize int `json:"max_font_size,omitempty" toml:"max_font_size" yaml:"max_font_size"`

	// FontPath names a .ttf/.otf/.ttc file. Empty discovers a system font.
	FontPath string `json:"font_path,omitempty" toml:"font_path" yaml:"font_path"`

	// Colormap names the palette gradient. Empty selects the default
	// ("nipy_spectral").
	Colormap string `json:"colormap,omitempty" toml:"colormap" yaml:"colormap"`

	// ColorRange restricts palette sampling to [lo, hi] within the
	// colormap, 0 <= lo <= hi <= 1. The zero value selects the default.
	ColorRange [2]float64 `json:"color_range,omitempty" toml:"color_range" yaml:"color_range"`

	// ColorStepRange bounds the random palette step between consecutive
	// words, 0 < lo <= hi <= 1. The zero value selects the default.
	ColorStepRange [2]float64 `json:"color_step_range,omitempty" toml:"color_step_range" yaml:"color_step_range"`

	// UseMask constrains word placement to the shape in MaskPath.
	UseMask bool `json:"use_mask,omitempty" toml:"use_mask" yaml:"use_mask"`

	// MaskPath is the mask image file (PNG/JPEG). Required when UseMask
	// is set; ignored otherwise.
	MaskPath string `json:"mask_path,omitempty" toml:"mask_path" yaml:"mask_path"`

	// ContourWidth is the stroke width of the mask outline. Only applies
	// when a mask is used. Zero in a decoded document disables the
	// contour; the documented default is 3.
	ContourWidth float64 `json:"contour_width,omitempty" toml:"contour_width" yaml:"contour_width"`

	// ContourColor is the stroke color of the mask outline.
	ContourColor string `json:"contour_color,omitempty" toml:"contour_color" yaml:"contour_color"`

	// ScaleAdjustment scales the derived maximum font size by
	// 1+ScaleAdjustment when MaxFontSize is zero. Must be greater
	// than -1.
	ScaleAdjustment float64 `json:"scale_adjustment,omitempty" toml:"scale_adjustment" yaml:"scale_adjustment"`

	// RelativeScaling couples word size to frequency: 1 proportional,
	// 0 by rank. Zero selects the default (1).
	RelativeScaling float64 `json:"relative_scaling,omitempty" toml:"relative_scaling" yaml:"relative_scaling"`
}

// DefaultWordCloud returns a WordCloudConfig with every documented default.
func DefaultWordCloud() WordCloudConfig {
	return WordCloudConfig{
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		PreferHorizontal: DefaultPreferHorizontal,
		MinFontSize:      DefaultMinFontSize,
		Colormap:         DefaultColormap,
		ColorRange:       DefaultColorRange,
		ColorStepRange:   DefaultColorStepRange,
		ContourWidth:     DefaultContourWidth,
		ContourColor:     DefaultContourColor,
		RelativeScaling:  DefaultRelativeScaling,
	}
}

// Option mutates a WordCloudConfig under construction.
type Option func(*WordCloudConfig)

// WithDimensions sets the canvas width and height.
func WithDimensions(width, height int) Option {
	return func(c *WordCloudConfig) { c.Width, c.Height = width, height }
}

// WithBackgroundColor sets the background color ("" for transparent).
func WithBackgroundColor(spec string) Option {
	return func(c *WordCloudConfig) { c.BackgroundColor = spec }
}

// WithPreferHorizontal sets the horizontal text preference fraction.
func WithPreferHorizontal(fraction float64) Option {
	return func(c *WordCloudConfig) { c.PreferHorizontal = fraction }
}

// WithFontSizes sets the minimum and maximum font size (max 0 = derive).
func WithFontSizes(minSize, maxSize int) Option {
	return func(c *WordCloudConfig) { c.MinFontSize, c.MaxFontSize = minSize, maxSize }
}

// WithFontPath sets an explicit font file.
func WithFontPath(path string) Option {
	return func(c *WordCloudConfig) { c.FontPath = path }
}

// WithColormap selects the palette gradient by name.
func WithColormap(name string) Option {
	return func(c *WordCloudConfig) { c.Colormap = name }
}

// WithColorRange restricts palette sampling to [lo, hi].
func WithColorRange(lo, hi float64) Option {
	return func(c *WordCloudConfig) { c.ColorRange = [2]float64{lo, hi} }
}

// WithColorStepRange bounds the palette walk step between words.
func WithColorStepRange(lo, hi float64) Option {
	return func(c *WordCloudConfig) { c.ColorStepRange = [2]float64{lo, hi} }
}

// WithMask enables mask-constrained placement using the given image.
func WithMask(path string) Option {
	return func(c *WordCloudConfig) { c.UseMask, c.MaskPath = true, path }
}

// WithContour sets the mask outline stroke (width 0 disables it).
func WithContour(width float64, color string) Option {
	return func(c *WordCloudConfig) { c.ContourWidth, c.ContourColor = width, color }
}

// WithScaleAdjustment adjusts the derived maximum font size.
func WithScaleAdjustment(adjustment float64) Option {
	return func(c *WordCloudConfig) { c.ScaleAdjustment = adjustment }
}

// WithRelativeScaling sets the frequency-to-size coupling.
func WithRelativeScaling(scaling float64) Option {
	return func(c *WordCloudConfig) { c.RelativeScaling = scaling }
}

// New builds a WordCloudConfig by applying opts over the defaults and
// validating the result. Unlike ValidateAndSetDefaults, explicit zero
// values set by options survive (for example WithContour(0, "black")).
func New(opts ...Option) (WordCloudConfig, error) {
	c := DefaultWordCloud()
	for _, opt := range opts {
		opt(&c)
	}
	if err := c.Validate(); err != nil {
		return WordCloudConfig{}, err
	}
	return c, nil
}

// SetDefaults fills unset optional fields with the documented defaults.
// Width and Height are never defaulted; they are required. A zero optional
// field is indistinguishable from an absent one here, so callers that need
// explicit zeros (contour width 0) should construct via New or a decoder,
// both of which preserve them.
func (c *WordCloudConfig) SetDefaults() {
	if c.PreferHorizontal == 0 {
		c.PreferHorizontal = DefaultPreferHorizontal
	}
	if c.MinFontSize == 0 {
		c.MinFontSize = DefaultMinFontSize
	}
	if c.Colormap == "" {
		c.Colormap = DefaultColormap
	}
	if c.ColorRange == [2]float64{} {
		c.ColorRange = DefaultColorRange
	}
	if c.ColorStepRange == [2]float64{} {
		c.ColorStepRange = DefaultColorStepRange
	}
	if c.ContourWidth == 0 {
		c.ContourWidth = DefaultContourWidth
	}
	if c.ContourColor == "" {
		c.ContourColor = DefaultContourColor
	}
	if c.RelativeScaling == 0 {
		c.RelativeScaling = DefaultRelativeScaling
	}
}

// ValidateAndSetDefaults fills unset optional fields and validates the
// result. This is the entry point for configs built as struct literals.
func (c *WordCloudConfig) ValidateAndSetDefaults() error {
	c.SetDefaults()
	return c.Validate()
}

// Validate checks every constraint without mutating the config.
func (c *WordCloudConfig) Validate() error {
	if c.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "width must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "height must be positive, got %d", c.Height)
	}
	if c.PreferHorizontal < 0 || c.PreferHorizontal > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "prefer_horizontal must be in [0, 1], got %v", c.PreferHorizontal)
	}
	if c.MinFontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min_font_size must be positive, got %d", c.MinFontSize)
	}
	if c.MaxFontSize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_font_size cannot be negative, got %d", c.MaxFontSize)
	}
	if c.MaxFontSize > 0 && c.MaxFontSize < c.MinFontSize {
		return errors.New(errors.ErrCodeInvalidConfig,
			"max_font_size (%d) cannot be smaller than min_font_size (%d)", c.MaxFontSize, c.MinFontSize)
	}
	if c.FontPath != "" && !fonts.ValidExtension(c.FontPath) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"font_path %q must end in .ttf, .otf, or .ttc", c.FontPath)
	}
	if !colormap.IsRegistered(c.Colormap) {
		return errors.New(errors.ErrCodeInvalidColormap, "unknown colormap: %q", c.Colormap)
	}
	if err := validateUnitRange("color_range", c.ColorRange, false); err != nil {
		return err
	}
	if err := validateUnitRange("color_step_range", c.ColorStepRange, true); err != nil {
		return err
	}
	if c.UseMask && c.MaskPath == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "use_mask is set but mask_path is empty")
	}
	if c.ContourWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "contour_width cannot be negative, got %v", c.ContourWidth)
	}
	if c.ContourColor != "" && !colormap.IsColor(c.ContourColor) {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid contour_color: %q", c.ContourColor)
	}
	if c.BackgroundColor != "" && !colormap.IsColor(c.BackgroundColor) {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid background_color: %q", c.BackgroundColor)
	}
	if c.ScaleAdjustment <= -1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"scale_adjustment must be greater than -1, got %v", c.ScaleAdjustment)
	}
	if c.RelativeScaling < 0 || c.RelativeScaling > 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"relative_scaling must be in [0, 1], got %v", c.RelativeScaling)
	}
	return nil
}

func validateUnitRange(name string, r [2]float64, positiveLo bool) error {
	if r[0] < 0 || r[1] > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s must lie within [0, 1], got [%v, %v]", name, r[0], r[1])
	}
	if r[0] > r[1] {
		return errors.New(errors.ErrCodeInvalidConfig, "%s low bound %v exceeds high bound %v", name, r[0], r[1])
	}
	if positiveLo && r[0] <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s low bound must be positive, got %v", name, r[0])
	}
	return nil
}

// =============================================================================
// VisualizationConfig
// =============================================================================

// VisualizationConfig aggregates a word-cloud configuration with output
// selection: which formats to produce and where to save them. An empty
// SaveDirectory means results stay in memory.
type VisualizationConfig struct {
	// WordCloud configures the rendering. Nil means all defaults.
	WordCloud *WordCloudConfig `json:"word_cloud,omitempty" toml:"word_cloud" yaml:"word_cloud"`

	// OutputFormats lists the formats written on save, each "svg" or
	// "png". Nil selects the default ["svg"]; an explicit empty list
	// saves nothing.
	OutputFormats []string `json:"output_formats,omitempty" toml:"output_formats" yaml:"output_formats"`

	// SaveDirectory is where outputs are written. Empty disables saving.
	SaveDirectory string `json:"save_directory,omitempty" toml:"save_directory" yaml:"save_directory"`
}

// DefaultVisualization returns a VisualizationConfig with the documented
// defaults: SVG output, no saving, default word-cloud options.
func DefaultVisualization() VisualizationConfig {
	wc := DefaultWordCloud()
	return VisualizationConfig{
		WordCloud:     &wc,
		OutputFormats: []string{FormatSVG},
	}
}

// ValidateAndSetDefaults fills unset fields and validates the result.
func (v *VisualizationConfig) ValidateAndSetDefaults() error {
	if v.OutputFormats == nil {
		v.OutputFormats = []string{FormatSVG}
	}
	if err := ValidateFormats(v.OutputFormats); err != nil {
		return err
	}
	if v.WordCloud != nil {
		return v.WordCloud.ValidateAndSetDefaults()
	}
	return nil
}

// EffectiveWordCloud returns the word-cloud configuration to render with:
// the embedded one, or the defaults when none is set.
func (v *VisualizationConfig) EffectiveWordCloud() WordCloudConfig {
	if v.WordCloud != nil {
		return *v.WordCloud
	}
	return DefaultWordCloud()
}

// Clone returns a deep copy.
func (v *VisualizationConfig) Clone() VisualizationConfig {
	out := VisualizationConfig{SaveDirectory: v.SaveDirectory}
	if v.WordCloud != nil {
		wc := *v.WordCloud
		out.WordCloud = &wc
	}
	if v.OutputFormats != nil {
		out.OutputFormats = append([]string(nil), v.OutputFormats...)
	}
	return out
}

// Equal reports field-wise equality.
func (v *VisualizationConfig) Equal(other *VisualizationConfig) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.SaveDirectory != other.SaveDirectory {
		return false
	}
	if (v.WordCloud == nil) != (other.WordCloud == nil) {
		return false
	}
	if v.WordCloud != nil && *v.WordCloud != *other.WordCloud {
		return false
	}
	if len(v.OutputFormats) != len(other.OutputFormats) {
		return false
	}
	for i := range v.OutputFormats {
		if v.OutputFormats[i] != other.OutputFormats[i] {
			return false
		}
	}
	return true
}
