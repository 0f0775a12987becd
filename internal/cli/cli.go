// Package cli implements the hedviz command-line interface.
//
// The main commands are:
//   - cloud: render a single word cloud from tag counts or an events file
//   - batch: walk a dataset tree, merge tag counts, and render the result
//   - colormaps: list the registered palette names
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hed-standard/hedviz/pkg/buildinfo"
	"github.com/hed-standard/hedviz/pkg/config"
	"github.com/hed-standard/hedviz/pkg/errors"
	"github.com/hed-standard/hedviz/pkg/hed"
	"github.com/hed-standard/hedviz/pkg/visualizer"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "hedviz",
		Short:        "Hedviz renders HED tag usage as word clouds",
		Long:         `Hedviz turns HED-annotated event files and tag counts into word-cloud visualizations, making it easy to see which annotations dominate a dataset.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.cloudCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.colormapsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Rendering Flags
// =============================================================================

// renderFlags holds the word-cloud flags shared by the cloud and batch
// commands. A flag overrides the config file only when the user set it, so
// TOML settings survive unless explicitly overridden on the command line.
type renderFlags struct {
	configPath      string
	width           int
	height          int
	background      string
	colormapName    string
	fontPath        string
	maskPath        string
	contourWidth    float64
	contourColor    string
	minFontSize     int
	maxFontSize     int
	relativeScaling float64
	scaleAdjustment float64
	formatsStr      string
	outDir          string
	basename        string
	templatePath    string
}

// register adds the shared rendering flags to cmd.
func (f *renderFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "TOML config file with [word_cloud] settings")
	flags.IntVar(&f.width, "width", config.DefaultWidth, "canvas width in pixels")
	flags.IntVar(&f.height, "height", config.DefaultHeight, "canvas height in pixels")
	flags.StringVar(&f.background, "background", "", "background color name or #hex (default transparent)")
	flags.StringVar(&f.colormapName, "colormap", config.DefaultColormap, "palette name (see 'hedviz colormaps')")
	flags.StringVar(&f.fontPath, "font", "", "font file (.ttf/.otf/.ttc; default discovers a system font)")
	flags.StringVar(&f.maskPath, "mask", "", "mask image constraining word placement (PNG/JPEG)")
	flags.Float64Var(&f.contourWidth, "contour-width", config.DefaultContourWidth, "mask outline stroke width")
	flags.StringVar(&f.contourColor, "contour-color", config.DefaultContourColor, "mask outline color")
	flags.IntVar(&f.minFontSize, "min-font-size", config.DefaultMinFontSize, "smallest font size in points")
	flags.IntVar(&f.maxFontSize, "max-font-size", 0, "largest font size in points (0 derives it from the height)")
	flags.Float64Var(&f.relativeScaling, "relative-scaling", config.DefaultRelativeScaling, "frequency-to-size coupling: 1 proportional, 0 by rank")
	flags.Float64Var(&f.scaleAdjustment, "scale-adjustment", 0, "scale the derived max font size by 1+x")
	flags.StringVarP(&f.formatsStr, "formats", "f", "", "output format(s): svg (default), png (comma-separated)")
	flags.StringVarP(&f.outDir, "out", "o", "", `output directory (default ".")`)
	flags.StringVar(&f.basename, "basename", visualizer.DefaultBasename, "output file basename")
	flags.StringVar(&f.templatePath, "template", "", "tag template file (.json/.yaml) grouping tags into categories")
}

// visualization resolves the config file and flag overrides into a
// validated configuration. Precedence: built-in defaults, then the TOML
// file, then flags the user actually set. The CLI always saves output, so
// an unset save directory falls back to the working directory.
func (f *renderFlags) visualization(cmd *cobra.Command) (*config.VisualizationConfig, error) {
	cfg := config.DefaultVisualization()
	if f.configPath != "" {
		loaded, err := config.VisualizationFromTOMLFile(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	wc := cfg.EffectiveWordCloud()
	flags := cmd.Flags()
	if flags.Changed("width") {
		wc.Width = f.width
	}
	if flags.Changed("height") {
		wc.Height = f.height
	}
	if flags.Changed("background") {
		wc.BackgroundColor = f.background
	}
	if flags.Changed("colormap") {
		wc.Colormap = f.colormapName
	}
	if flags.Changed("font") {
		wc.FontPath = f.fontPath
	}
	if flags.Changed("mask") {
		wc.UseMask = f.maskPath != ""
		wc.MaskPath = f.maskPath
	}
	if flags.Changed("contour-width") {
		wc.ContourWidth = f.contourWidth
	}
	if flags.Changed("contour-color") {
		wc.ContourColor = f.contourColor
	}
	if flags.Changed("min-font-size") {
		wc.MinFontSize = f.minFontSize
	}
	if flags.Changed("max-font-size") {
		wc.MaxFontSize = f.maxFontSize
	}
	if flags.Changed("relative-scaling") {
		wc.RelativeScaling = f.relativeScaling
	}
	if flags.Changed("scale-adjustment") {
		wc.ScaleAdjustment = f.scaleAdjustment
	}
	cfg.WordCloud = &wc

	if flags.Changed("formats") {
		cfg.OutputFormats = parseFormats(f.formatsStr)
	}
	if flags.Changed("out") {
		cfg.SaveDirectory = f.outDir
	}
	if cfg.SaveDirectory == "" {
		cfg.SaveDirectory = "."
	}

	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// template loads the tag template named by --template, or returns nil when
// the flag is unset.
func (f *renderFlags) template() (hed.Template, error) {
	if f.templatePath == "" {
		return nil, nil
	}
	return hed.LoadTemplate(f.templatePath)
}

// newVisualizer builds a visualizer from the resolved flags, wired to the
// CLI logger.
func (c *CLI) newVisualizer(cmd *cobra.Command, f *renderFlags) (*visualizer.Visualizer, error) {
	cfg, err := f.visualization(cmd)
	if err != nil {
		return nil, err
	}
	v, err := visualizer.New(cfg)
	if err != nil {
		return nil, err
	}
	v.Logger = c.Logger
	return v, nil
}

// =============================================================================
// Extraction Flags
// =============================================================================

// extractFlags holds the tag-extraction flags shared by the cloud and
// batch commands.
type extractFlags struct {
	includeContext bool
	replaceDefs    bool
	removeTypes    []string
}

// register adds the extraction flags to cmd.
func (f *extractFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVar(&f.includeContext, "include-context", true, "attach active Onset/Offset span tags to events inside the span")
	flags.BoolVar(&f.replaceDefs, "replace-defs", true, "replace Def/ tags with their sidecar definition contents")
	flags.StringSliceVar(&f.removeTypes, "remove-types", nil, "drop tags with these type components (e.g. Condition-variable,Task)")
}

// options converts the flags into extraction options.
func (f *extractFlags) options() *hed.ExtractOptions {
	return &hed.ExtractOptions{
		IncludeContext: f.includeContext,
		ExpandDefs:     f.replaceDefs,
		RemoveTypes:    f.removeTypes,
	}
}

// =============================================================================
// Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{config.FormatSVG}
	}
	return strings.Split(s, ",")
}

// requireOneInput enforces that exactly one of the mutually exclusive
// input flags was given.
func requireOneInput(countsPath, tabularPath string) error {
	if (countsPath == "") == (tabularPath == "") {
		return errors.New(errors.ErrCodeInvalidInput, "exactly one of --counts or --tabular is required")
	}
	return nil
}
