package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hed-standard/hedviz/pkg/errors"
)

func TestValidExtension(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"font.ttf", true},
		{"font.otf", true},
		{"font.ttc", true},
		{"FONT.TTF", true},
		{"/abs/path/face.ttf", true},

		{"font.woff", false},
		{"font.txt", false},
		{"font", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := ValidExtension(tt.path); got != tt.want {
				t.Errorf("ValidExtension(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolveExplicitPathErrors(t *testing.T) {
	garbage := filepath.Join(t.TempDir(), "broken.ttf")
	if err := os.WriteFile(garbage, []byte("not a real font"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		wantCode errors.Code
	}{
		{"bad extension", "face.woff", errors.ErrCodeInvalidConfig},
		{"missing file", filepath.Join(t.TempDir(), "nope.ttf"), errors.ErrCodeFileNotFound},
		{"unparseable file", garbage, errors.ErrCodeFileUnreadable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.path)
			if err == nil {
				t.Fatalf("Resolve(%q) succeeded, want error", tt.path)
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %v, want %v (err: %v)", errors.GetCode(err), tt.wantCode, err)
			}
		})
	}
}

func TestDiscover(t *testing.T) {
	path, err := Discover()
	if errors.Is(err, errors.ErrCodeFontNotFound) {
		t.Skip("no system fonts available")
	}
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if !ValidExtension(path) {
		t.Errorf("Discover() returned %q without a font extension", path)
	}

	// An empty path resolves through discovery.
	resolved, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve(\"\") error: %v", err)
	}
	if resolved == "" {
		t.Error("Resolve(\"\") returned empty path")
	}
}
