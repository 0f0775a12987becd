package colormap

import (
	"sort"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default map", Default, false},
		{"viridis", "viridis", false},
		{"jet", "jet", false},
		{"unknown", "not_a_colormap", true},
		{"empty", "", true},
		{"case sensitive", "Viridis", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm, err := Lookup(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Lookup(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && cm.Name() != tt.input {
				t.Errorf("Name() = %q, want %q", cm.Name(), tt.input)
			}
		})
	}
}

func TestNamesSortedAndRegistered(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("Names() returned no colormaps")
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	for _, name := range names {
		if !IsRegistered(name) {
			t.Errorf("IsRegistered(%q) = false for listed name", name)
		}
	}
	if !IsRegistered(Default) {
		t.Errorf("default colormap %q is not registered", Default)
	}
}

func TestSampleInGamut(t *testing.T) {
	for _, name := range Names() {
		cm, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		for i := 0; i <= 20; i++ {
			frac := float64(i) / 20
			c := cm.Sample(frac)
			if !c.IsValid() {
				t.Errorf("%s.Sample(%v) out of gamut: %+v", name, frac, c)
			}
		}
	}
}

func TestSampleEndpointsAndClamping(t *testing.T) {
	cm, err := Lookup("gray")
	if err != nil {
		t.Fatal(err)
	}

	if got := cm.Sample(0); got != cm.Sample(-5) {
		t.Errorf("Sample(-5) = %v, want clamped to Sample(0) = %v", cm.Sample(-5), got)
	}
	if got := cm.Sample(1); got != cm.Sample(2) {
		t.Errorf("Sample(2) = %v, want clamped to Sample(1) = %v", cm.Sample(2), got)
	}

	r, g, b := cm.Sample(0).RGB255()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("gray.Sample(0) = (%d,%d,%d), want black", r, g, b)
	}
	r, g, b = cm.Sample(1).RGB255()
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("gray.Sample(1) = (%d,%d,%d), want white", r, g, b)
	}
}
