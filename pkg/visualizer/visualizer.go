// Package visualizer orchestrates the full tag-visualization pipeline:
// collecting tag frequencies, rendering them as a word cloud, and saving
// the configured output formats. It is the programmatic entry point that
// both the CLI and library consumers build on.
package visualizer

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hed-standard/hedviz/pkg/cloud"
	"github.com/hed-standard/hedviz/pkg/cloud/sink"
	"github.com/hed-standard/hedviz/pkg/config"
	"github.com/hed-standard/hedviz/pkg/errors"
	"github.com/hed-standard/hedviz/pkg/hed"
)

// DefaultBasename names saved artifacts when RunOptions.Basename is empty.
const DefaultBasename = "hed_tags"

// Visualizer turns tag counts into word-cloud artifacts.
//
// The Visualizer is stateless except for its configuration and logger - it
// doesn't retain run results, so multiple goroutines can safely share one.
type Visualizer struct {
	Config *config.VisualizationConfig
	Logger *log.Logger
}

// New creates a visualizer from cfg. A nil cfg selects the defaults. The
// configuration is copied and validated up front, so mutating cfg after the
// call does not affect the visualizer.
func New(cfg *config.VisualizationConfig) (*Visualizer, error) {
	own := config.DefaultVisualization()
	if cfg != nil {
		own = cfg.Clone()
	}
	if err := own.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &Visualizer{Config: &own, Logger: log.Default()}, nil
}

// RunOptions adjusts a single visualization run.
type RunOptions struct {
	// Template groups tags into named categories before rendering. When
	// set, only tags claimed by some category are rendered; tags no
	// category claims are dropped. Nil renders every counted tag.
	Template hed.Template

	// Basename names saved artifacts, one file per configured format,
	// with the format appended as the extension. Empty means
	// DefaultBasename.
	Basename string

	// Extract controls tag extraction for the tabular entry points.
	// Nil means hed.DefaultExtractOptions(). FromCounts ignores it.
	Extract *hed.ExtractOptions
}

// Result carries everything a visualization run produced.
type Result struct {
	// Rendering is the rendered word cloud.
	Rendering *cloud.Rendering

	// Frequencies maps each rendered tag to its event count, after any
	// template filtering.
	Frequencies cloud.Frequencies

	// Paths maps each written format to its file path. Empty when no
	// save directory is configured.
	Paths map[string]string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains visualization run statistics.
type Stats struct {
	TagCount    int
	TotalEvents int
	ExtractTime time.Duration
	RenderTime  time.Duration
	SaveTime    time.Duration
}

// FromCounts renders aggregated tag counts and, when a save directory is
// configured, writes every configured output format. No file is written
// unless the render and every format conversion succeed.
func (v *Visualizer) FromCounts(ctx context.Context, counts *hed.TagCounts, opts RunOptions) (*Result, error) {
	if counts == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no tag counts to visualize")
	}
	if opts.Template != nil {
		if err := opts.Template.Validate(); err != nil {
			return nil, err
		}
	}
	if counts.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "tag counts %q are empty", counts.Name())
	}

	freqs := frequencies(counts, opts.Template)
	if len(freqs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no tags in %q match the template", counts.Name())
	}
	v.Logger.Info("collected frequencies",
		"dataset", counts.Name(),
		"tags", len(freqs),
		"events", counts.TotalEvents())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Frequencies: freqs,
		Stats: Stats{
			TagCount:    len(freqs),
			TotalEvents: counts.TotalEvents(),
		},
	}

	renderStart := time.Now()
	rendering, err := cloud.Generate(freqs, v.Config.EffectiveWordCloud())
	if err != nil {
		return nil, err
	}
	result.Rendering = rendering
	result.Stats.RenderTime = time.Since(renderStart)

	v.Logger.Info("rendered word cloud",
		"width", rendering.Width,
		"height", rendering.Height,
		"duration", result.Stats.RenderTime)

	if v.Config.SaveDirectory == "" || len(v.Config.OutputFormats) == 0 {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	saveStart := time.Now()
	paths, err := v.save(rendering, opts.Basename)
	if err != nil {
		return nil, err
	}
	result.Paths = paths
	result.Stats.SaveTime = time.Since(saveStart)

	v.Logger.Info("saved outputs",
		"directory", v.Config.SaveDirectory,
		"formats", v.Config.OutputFormats,
		"duration", result.Stats.SaveTime)

	return result, nil
}

// FromEvents counts the tags of an in-memory event table and renders them.
// The sidecar may be nil when the table carries only inline annotations.
func (v *Visualizer) FromEvents(ctx context.Context, table *hed.EventTable, sc *hed.Sidecar, opts RunOptions) (*Result, error) {
	extract := hed.DefaultExtractOptions()
	if opts.Extract != nil {
		extract = *opts.Extract
	}

	extractStart := time.Now()
	counts, err := hed.ExtractTagCounts(table, sc, extract)
	if err != nil {
		return nil, err
	}
	extractTime := time.Since(extractStart)

	v.Logger.Info("extracted tags",
		"dataset", counts.Name(),
		"tags", counts.Len(),
		"events", counts.TotalEvents(),
		"duration", extractTime)

	result, err := v.FromCounts(ctx, counts, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ExtractTime = extractTime
	return result, nil
}

// FromTabular loads an events file plus any sidecars and renders the tags
// it contains. Sidecars are merged in the given order with earlier files
// taking precedence, matching BIDS inheritance when callers pass the
// nearest sidecar first.
func (v *Visualizer) FromTabular(ctx context.Context, eventsPath string, sidecarPaths []string, opts RunOptions) (*Result, error) {
	table, err := hed.LoadEvents(eventsPath)
	if err != nil {
		return nil, err
	}

	var sc *hed.Sidecar
	for _, path := range sidecarPaths {
		loaded, err := hed.LoadSidecar(path)
		if err != nil {
			return nil, err
		}
		if sc == nil {
			sc = loaded
		} else {
			sc.Merge(loaded)
		}
	}

	return v.FromEvents(ctx, table, sc, opts)
}

// frequencies flattens counts into the map rendered by pkg/cloud, applying
// the template filter when one is set.
func frequencies(counts *hed.TagCounts, tmpl hed.Template) cloud.Frequencies {
	if tmpl == nil {
		return cloud.Frequencies(counts.Frequencies())
	}
	organized, _ := tmpl.Organize(counts)
	out := make(cloud.Frequencies)
	for _, category := range organized {
		for tag, n := range category.Frequencies() {
			out[tag] += n
		}
	}
	return out
}

// save converts the rendering into every configured format and writes the
// results under the save directory. All conversions happen before the first
// write, so a conversion failure leaves nothing behind.
func (v *Visualizer) save(r *cloud.Rendering, basename string) (map[string]string, error) {
	if basename == "" {
		basename = DefaultBasename
	}

	artifacts := make(map[string][]byte, len(v.Config.OutputFormats))
	for _, format := range v.Config.OutputFormats {
		data, err := sink.Render(format, r)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}

	if err := os.MkdirAll(v.Config.SaveDirectory, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileWrite, err, "create save directory %s", v.Config.SaveDirectory)
	}

	paths := make(map[string]string, len(artifacts))
	for _, format := range v.Config.OutputFormats {
		path := filepath.Join(v.Config.SaveDirectory, basename+"."+format)
		if err := sink.WriteFile(path, artifacts[format]); err != nil {
			return nil, err
		}
		paths[format] = path
	}
	return paths, nil
}
