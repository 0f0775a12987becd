package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hed-standard/hedviz/pkg/hed"
	"github.com/hed-standard/hedviz/pkg/visualizer"
)

// cloudCommand creates the cloud command for rendering a single word cloud.
func (c *CLI) cloudCommand() *cobra.Command {
	var (
		render       renderFlags
		extract      extractFlags
		countsPath   string
		tabularPath  string
		sidecarPaths []string
	)

	cmd := &cobra.Command{
		Use:   "cloud",
		Short: "Render a word cloud from tag counts or an events file",
		Long: `Render a word cloud from tag counts or an events file.

The cloud command takes either a counts JSON file (--counts; a summary
written by 'batch' or a flat word-to-count object) or a tabular events
file (--tabular, with optional --sidecar annotations) and renders a word
cloud into the output directory.

A tag template (--template) groups tags into categories; tags no category
claims are dropped from the cloud.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireOneInput(countsPath, tabularPath); err != nil {
				return err
			}
			return c.runCloud(cmd, &render, &extract, countsPath, tabularPath, sidecarPaths)
		},
	}

	render.register(cmd)
	extract.register(cmd)
	cmd.Flags().StringVar(&countsPath, "counts", "", "counts JSON file (summary or flat word-to-count object)")
	cmd.Flags().StringVar(&tabularPath, "tabular", "", "tab-separated events file")
	cmd.Flags().StringArrayVar(&sidecarPaths, "sidecar", nil, "JSON sidecar for --tabular (repeatable, nearest first)")

	return cmd
}

// runCloud resolves the configuration and renders one cloud.
func (c *CLI) runCloud(cmd *cobra.Command, render *renderFlags, extract *extractFlags, countsPath, tabularPath string, sidecarPaths []string) error {
	ctx := withLogger(cmd.Context(), c.Logger)

	v, err := c.newVisualizer(cmd, render)
	if err != nil {
		return err
	}
	tmpl, err := render.template()
	if err != nil {
		return err
	}
	opts := visualizer.RunOptions{
		Template: tmpl,
		Basename: render.basename,
		Extract:  extract.options(),
	}

	spinner := newSpinnerWithContext(ctx, "Rendering word cloud...")
	spinner.Start()

	result, err := c.renderOne(ctx, v, opts, countsPath, tabularPath, sidecarPaths)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %d tags", result.Stats.TagCount)
	printStats(result.Stats.TagCount, result.Stats.TotalEvents, 0)
	for _, format := range v.Config.OutputFormats {
		if path, ok := result.Paths[format]; ok {
			printFile(path)
		}
	}
	return nil
}

// renderOne dispatches to the counts or tabular entry point.
func (c *CLI) renderOne(ctx context.Context, v *visualizer.Visualizer, opts visualizer.RunOptions, countsPath, tabularPath string, sidecarPaths []string) (*visualizer.Result, error) {
	if countsPath != "" {
		counts, err := hed.LoadCounts(countsPath)
		if err != nil {
			return nil, err
		}
		return v.FromCounts(ctx, counts, opts)
	}

	if len(sidecarPaths) == 0 {
		if found, ok := hed.FindSidecar(tabularPath, ""); ok {
			c.Logger.Debug("discovered sidecar", "path", found)
			sidecarPaths = []string{found}
		}
	}
	return v.FromTabular(ctx, tabularPath, sidecarPaths, opts)
}
