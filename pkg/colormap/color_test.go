package colormap

import (
	"testing"

	"github.com/hed-standard/hedviz/pkg/errors"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantRGB [3]uint8
		wantErr bool
	}{
		{"named black", "black", [3]uint8{0, 0, 0}, false},
		{"named white", "white", [3]uint8{255, 255, 255}, false},
		{"named mixed case", "Orange", [3]uint8{255, 165, 0}, false},
		{"named with spaces", "  red  ", [3]uint8{255, 0, 0}, false},
		{"hex long", "#1a2b3c", [3]uint8{0x1a, 0x2b, 0x3c}, false},
		{"hex short", "#fff", [3]uint8{255, 255, 255}, false},

		{"empty", "", [3]uint8{}, true},
		{"unknown name", "blurple", [3]uint8{}, true},
		{"bad hex", "#12345", [3]uint8{}, true},
		{"hex without hash", "1a2b3c", [3]uint8{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
				}
				return
			}
			r, g, b, _ := c.RGBA()
			got := [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
			if got != tt.wantRGB {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.wantRGB)
			}
		})
	}
}

func TestIsColor(t *testing.T) {
	if !IsColor("black") {
		t.Error(`IsColor("black") = false`)
	}
	if IsColor("definitely-not") {
		t.Error(`IsColor("definitely-not") = true`)
	}
}
