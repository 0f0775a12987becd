// Package pkg provides the core libraries for hedviz tag visualization.
//
// # Overview
//
// Hedviz turns HED (Hierarchical Event Descriptor) tag usage into word-cloud
// visualizations. Tag annotations are collected from BIDS-style tabular event
// files, counted, optionally grouped through a template, and rendered as an
// image where each tag is sized by how often it occurs. The pkg directory is
// organized into three main areas:
//
//  1. [hed] - Domain logic (event tables, sidecars, tag extraction, counting)
//  2. [cloud] - Word-cloud generation and output encoding
//  3. [visualizer] - Orchestration from raw inputs to saved images
//
// # Architecture
//
// The typical data flow through hedviz:
//
//	events.tsv + sidecar JSON
//	         ↓
//	    [hed] package (extract and count HED tags)
//	         ↓
//	    [visualizer] package (group via template, collect frequencies)
//	         ↓
//	    [cloud] package (layout + rasterization)
//	         ↓
//	    SVG/PNG output
//
// # Quick Start
//
// Render a word cloud from a tabular event file and save it as SVG:
//
//	import (
//	    "context"
//	    "github.com/hed-standard/hedviz/pkg/config"
//	    "github.com/hed-standard/hedviz/pkg/visualizer"
//	)
//
//	cfg := config.DefaultVisualization()
//	cfg.SaveDirectory = "clouds"
//
//	v, _ := visualizer.New(&cfg)
//	res, _ := v.FromTabular(context.Background(), "sub-01_task-rest_events.tsv", nil, visualizer.RunOptions{})
//	fmt.Println(res.Paths[config.FormatSVG])
//
// # Main Packages
//
// [hed] - HED domain types: tabular event tables, JSON sidecars, tag
// splitting and short-form resolution, tag counting with per-file
// attribution, and grouping templates.
//
// [cloud] - Word-cloud generation. Wraps the layout engine and returns an
// owned Rendering (pixel buffer plus placement metadata) so callers never
// touch engine internals. [cloud/sink] encodes a Rendering to SVG or PNG.
//
// [colormap] - Matplotlib-style color maps sampled along a gradient to
// color words by frequency rank.
//
// [config] - Word-cloud and visualization configuration with defaults,
// validation, and strict TOML/JSON decoding.
//
// [fonts] - TrueType font discovery across platform font directories.
//
// [visualizer] - End-to-end orchestration: extract or load counts, apply a
// template, generate the cloud, and save requested output formats.
//
// [errors] - Error codes shared across the module, with wrapping helpers.
//
// [buildinfo] - Version metadata injected at build time.
//
// [hed]: https://pkg.go.dev/github.com/hed-standard/hedviz/pkg/hed
// [cloud]: https://pkg.go.dev/github.com/hed-standard/hedviz/pkg/cloud
// [cloud/sink]: https://pkg.go.dev/github.com/hed-standard/hedviz/pkg/cloud/sink
// [colormap]: https://pkg.go.dev/github.com/hed-standard/hedviz/pkg/colormap
// [config]: https://pkg.go.dev/github.com/hed-standard/hedviz/pkg/config
// [fonts]: https://pkg.go.dev/github.com/hed-standard/hedviz/pkg/fonts
// [visualizer]: https://pkg.go.dev/github.com/hed-standard/hedviz/pkg/visualizer
// [errors]: https://pkg.go.dev/github.com/hed-standard/hedviz/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/hed-standard/hedviz/pkg/buildinfo
package pkg
