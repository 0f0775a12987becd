package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/hed-standard/hedviz/pkg/config"
	"github.com/hed-standard/hedviz/pkg/errors"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,png", []string{"svg", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestRequireOneInput(t *testing.T) {
	tests := []struct {
		name    string
		counts  string
		tabular string
		wantErr bool
	}{
		{"counts only", "c.json", "", false},
		{"tabular only", "", "e.tsv", false},
		{"neither", "", "", true},
		{"both", "c.json", "e.tsv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := requireOneInput(tt.counts, tt.tabular)
			if (err != nil) != tt.wantErr {
				t.Errorf("requireOneInput(%q, %q) error = %v, wantErr %v", tt.counts, tt.tabular, err, tt.wantErr)
			}
		})
	}
}

// parseRenderFlags registers the shared rendering flags on a throwaway
// command and parses args against them.
func parseRenderFlags(t *testing.T, args ...string) (*cobra.Command, *renderFlags) {
	t.Helper()
	var f renderFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd, &f
}

func TestVisualizationDefaults(t *testing.T) {
	cmd, f := parseRenderFlags(t)

	cfg, err := f.visualization(cmd)
	if err != nil {
		t.Fatalf("visualization: %v", err)
	}
	if cfg.WordCloud.Width != config.DefaultWidth {
		t.Errorf("Width = %d, want %d", cfg.WordCloud.Width, config.DefaultWidth)
	}
	if cfg.SaveDirectory != "." {
		t.Errorf("SaveDirectory = %q, want %q", cfg.SaveDirectory, ".")
	}
	if len(cfg.OutputFormats) != 1 || cfg.OutputFormats[0] != "svg" {
		t.Errorf("OutputFormats = %v, want [svg]", cfg.OutputFormats)
	}
}

func TestVisualizationFlagOverrides(t *testing.T) {
	cmd, f := parseRenderFlags(t,
		"--width", "320",
		"--colormap", "viridis",
		"--formats", "svg,png",
		"--out", "clouds",
		"--mask", "shape.png",
	)

	cfg, err := f.visualization(cmd)
	if err != nil {
		t.Fatalf("visualization: %v", err)
	}
	if cfg.WordCloud.Width != 320 {
		t.Errorf("Width = %d, want 320", cfg.WordCloud.Width)
	}
	if cfg.WordCloud.Colormap != "viridis" {
		t.Errorf("Colormap = %q, want viridis", cfg.WordCloud.Colormap)
	}
	if !cfg.WordCloud.UseMask || cfg.WordCloud.MaskPath != "shape.png" {
		t.Errorf("mask = (%v, %q), want (true, shape.png)", cfg.WordCloud.UseMask, cfg.WordCloud.MaskPath)
	}
	if cfg.SaveDirectory != "clouds" {
		t.Errorf("SaveDirectory = %q, want clouds", cfg.SaveDirectory)
	}
	if len(cfg.OutputFormats) != 2 {
		t.Errorf("OutputFormats = %v, want [svg png]", cfg.OutputFormats)
	}
}

func TestVisualizationConfigFilePrecedence(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "hedviz.toml")
	toml := `
output_formats = ["png"]
save_directory = "toml-out"

[word_cloud]
width = 640
height = 480
colormap = "viridis"
`
	if err := os.WriteFile(configPath, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}

	// Unset flags keep the TOML values; set flags override them.
	cmd, f := parseRenderFlags(t, "--config", configPath, "--height", "240")

	cfg, err := f.visualization(cmd)
	if err != nil {
		t.Fatalf("visualization: %v", err)
	}
	if cfg.WordCloud.Width != 640 {
		t.Errorf("Width = %d, want 640 from TOML", cfg.WordCloud.Width)
	}
	if cfg.WordCloud.Height != 240 {
		t.Errorf("Height = %d, want 240 from flag", cfg.WordCloud.Height)
	}
	if cfg.WordCloud.Colormap != "viridis" {
		t.Errorf("Colormap = %q, want viridis from TOML", cfg.WordCloud.Colormap)
	}
	if cfg.SaveDirectory != "toml-out" {
		t.Errorf("SaveDirectory = %q, want toml-out from TOML", cfg.SaveDirectory)
	}
	if len(cfg.OutputFormats) != 1 || cfg.OutputFormats[0] != "png" {
		t.Errorf("OutputFormats = %v, want [png] from TOML", cfg.OutputFormats)
	}
}

func TestVisualizationInvalidFormat(t *testing.T) {
	cmd, f := parseRenderFlags(t, "--formats", "bmp")

	_, err := f.visualization(cmd)
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Fatalf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestRootCommand(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{"cloud": false, "batch": false, "colormaps": false, "completion": false}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
