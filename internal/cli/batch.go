package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hed-standard/hedviz/pkg/errors"
	"github.com/hed-standard/hedviz/pkg/hed"
	"github.com/hed-standard/hedviz/pkg/visualizer"
)

// defaultCountsFile names the counts summary written next to the rendered
// cloud when --counts-out is not given.
const defaultCountsFile = "hed_tag_counts.json"

// batchFlags holds the dataset-walking flags of the batch command.
type batchFlags struct {
	suffix         string
	prefix         string
	extensions     []string
	excludeDirs    []string
	sidecarPattern string
	countsOut      string
	datasetName    string
	interactive    bool
}

// batchCommand creates the batch command for whole-dataset processing.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		render  renderFlags
		extract extractFlags
		batch   batchFlags
	)

	cmd := &cobra.Command{
		Use:   "batch [dataset-dir]",
		Short: "Render a merged word cloud for every events file in a dataset",
		Long: `Render a merged word cloud for every events file in a dataset.

The batch command walks the dataset tree for event files (by default
files named *_events.tsv), discovers the JSON sidecar belonging to each
file, extracts and merges the tag counts of every file, writes the merged
counts as a summary JSON, and renders one word cloud for the whole
dataset.

Each run is tagged with a UUID, recorded in the logs and the counts
summary, so outputs can be traced back to the run that produced them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd, args[0], &render, &extract, &batch)
		},
	}

	render.register(cmd)
	extract.register(cmd)
	flags := cmd.Flags()
	flags.StringVar(&batch.suffix, "suffix", "events", "filename suffix selecting event files (matches *_<suffix><ext>)")
	flags.StringVar(&batch.prefix, "prefix", "", "only process files whose name starts with this prefix")
	flags.StringSliceVar(&batch.extensions, "extensions", []string{".tsv"}, "file extensions to process")
	flags.StringArrayVar(&batch.excludeDirs, "exclude-dir", nil, "directory names to skip (repeatable)")
	flags.StringVar(&batch.sidecarPattern, "sidecar-pattern", "", "glob tried in each file's directory when no sidecar is found")
	flags.StringVar(&batch.countsOut, "counts-out", "", "counts summary path (default <out>/"+defaultCountsFile+")")
	flags.StringVar(&batch.datasetName, "name", "Combined Dataset", "name of the merged dataset")
	flags.BoolVar(&batch.interactive, "interactive", false, "pick the files to process interactively")

	return cmd
}

// runBatch walks the dataset, merges tag counts, and renders the result.
func (c *CLI) runBatch(cmd *cobra.Command, root string, render *renderFlags, extract *extractFlags, batch *batchFlags) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	runID := uuid.NewString()
	c.Logger.Info("starting batch run", "run_id", runID, "root", root)

	v, err := c.newVisualizer(cmd, render)
	if err != nil {
		return err
	}
	tmpl, err := render.template()
	if err != nil {
		return err
	}

	files, err := discoverEventFiles(root, batch)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New(errors.ErrCodeNotFound, "no event files under %s match the filters", root)
	}
	c.Logger.Info("discovered event files", "count", len(files))

	if batch.interactive {
		files, err = pickFiles(files)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			printWarning("No files selected; nothing to do")
			return nil
		}
	}

	prog := newProgress(c.Logger)
	merged, err := collectCounts(ctx, files, batch, extract.options())
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Processed %d event files", len(files)))

	countsPath := batch.countsOut
	if countsPath == "" {
		countsPath = filepath.Join(v.Config.SaveDirectory, defaultCountsFile)
	}
	if err := os.MkdirAll(filepath.Dir(countsPath), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, err, "create directory for %s", countsPath)
	}
	summary := merged.Summary()
	summary.RunID = runID
	if err := hed.ExportSummary(summary, countsPath); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Rendering word cloud...")
	spinner.Start()
	result, err := v.FromCounts(ctx, merged, visualizer.RunOptions{
		Template: tmpl,
		Basename: render.basename,
	})
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %s", batch.datasetName)
	printStats(result.Stats.TagCount, result.Stats.TotalEvents, merged.TotalFiles())
	printFile(countsPath)
	for _, format := range v.Config.OutputFormats {
		if path, ok := result.Paths[format]; ok {
			printFile(path)
		}
	}
	printNextStep("Re-render from the saved counts", "hedviz cloud --counts "+countsPath)

	return nil
}

// discoverEventFiles walks root for event files matching the batch filters.
// Results are sorted for a deterministic processing order.
func discoverEventFiles(root string, batch *batchFlags) ([]string, error) {
	exclude := make(map[string]struct{}, len(batch.excludeDirs))
	for _, d := range batch.excludeDirs {
		exclude[d] = struct{}{}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := exclude[d.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if matchesEventFile(d.Name(), batch) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileUnreadable, err, "walk %s", root)
	}
	sort.Strings(files)
	return files, nil
}

// matchesEventFile reports whether name selects as an event file: one of
// the configured extensions, a "_<suffix>" stem ending (or the bare
// suffix), and the optional prefix.
func matchesEventFile(name string, batch *batchFlags) bool {
	ext := filepath.Ext(name)
	extOK := false
	for _, e := range batch.extensions {
		if strings.EqualFold(ext, e) {
			extOK = true
			break
		}
	}
	if !extOK {
		return false
	}

	stem := strings.TrimSuffix(name, ext)
	if batch.suffix != "" && stem != batch.suffix && !strings.HasSuffix(stem, "_"+batch.suffix) {
		return false
	}
	if batch.prefix != "" && !strings.HasPrefix(name, batch.prefix) {
		return false
	}
	return true
}

// collectCounts extracts and merges tag counts across the event files.
// Each file's sidecar is discovered next to it: same basename, then the
// task-level sidecar, then the --sidecar-pattern glob.
func collectCounts(ctx context.Context, files []string, batch *batchFlags, extract *hed.ExtractOptions) (*hed.TagCounts, error) {
	logger := loggerFromContext(ctx)
	merged := hed.NewTagCounts(batch.datasetName)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		table, err := hed.LoadEvents(path)
		if err != nil {
			return nil, err
		}
		var sc *hed.Sidecar
		if sidecarPath, ok := hed.FindSidecar(path, batch.sidecarPattern); ok {
			if sc, err = hed.LoadSidecar(sidecarPath); err != nil {
				return nil, err
			}
			logger.Debug("using sidecar", "events", path, "sidecar", sidecarPath)
		}

		counts, err := hed.ExtractTagCounts(table, sc, *extract)
		if err != nil {
			return nil, err
		}
		logger.Debug("extracted tags",
			"file", path,
			"tags", counts.Len(),
			"events", counts.TotalEvents())
		merged.Merge(counts)
	}
	return merged, nil
}
