package hed

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hed-standard/hedviz/pkg/errors"
)

func TestReadTemplateJSON(t *testing.T) {
	src := `{"Structure": ["Event", "Sensory-event"], "Behavior": ["Action"]}`
	tpl, err := ReadTemplateJSON(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadTemplateJSON: %v", err)
	}
	if got := tpl.Categories(); !reflect.DeepEqual(got, []string{"Behavior", "Structure"}) {
		t.Errorf("Categories = %v, want [Behavior Structure]", got)
	}
	if !reflect.DeepEqual(tpl["Structure"], []string{"Event", "Sensory-event"}) {
		t.Errorf("Structure tags = %v", tpl["Structure"])
	}
}

func TestReadTemplateJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"malformed", `{"Structure": ["Event"`},
		{"wrong shape", `["Event", "Action"]`},
		{"empty", `{}`},
		{"blank tag", `{"Structure": [""]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTemplateJSON(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if code := errors.GetCode(err); code != errors.ErrCodeInvalidTemplate {
				t.Errorf("code = %v, want %v", code, errors.ErrCodeInvalidTemplate)
			}
		})
	}
}

func TestReadTemplateYAML(t *testing.T) {
	src := "Structure:\n  - Event\n  - Sensory-event\nBehavior:\n  - Action\n"
	tpl, err := ReadTemplateYAML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadTemplateYAML: %v", err)
	}
	if !reflect.DeepEqual(tpl["Behavior"], []string{"Action"}) {
		t.Errorf("Behavior tags = %v", tpl["Behavior"])
	}
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "template.json")
	if err := os.WriteFile(jsonPath, []byte(`{"Structure": ["Event"]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTemplate(jsonPath); err != nil {
		t.Errorf("LoadTemplate(json): %v", err)
	}

	txtPath := filepath.Join(dir, "template.txt")
	if err := os.WriteFile(txtPath, []byte("whatever"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTemplate(txtPath); errors.GetCode(err) != errors.ErrCodeInvalidTemplate {
		t.Errorf("unsupported extension: code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidTemplate)
	}

	if _, err := LoadTemplate(filepath.Join(dir, "missing.json")); errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("missing file: code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestOrganize(t *testing.T) {
	tc := NewTagCounts("run-1")
	tc.Add("Event", 15, "a.tsv")
	tc.Add("Action", 10, "a.tsv")
	tc.Add("Sensory-event", 8, "b.tsv")
	tc.Add("Red", 3, "b.tsv")

	tpl := Template{
		"Structure": {"Event", "Sensory-event"},
		"Behavior":  {"action"}, // case-insensitive
	}

	organized, unmatched := tpl.Organize(tc)

	structure := organized["Structure"]
	if structure == nil || structure.Len() != 2 {
		t.Fatalf("Structure group = %v", structure)
	}
	if got := structure.Get("Event").Events; got != 15 {
		t.Errorf("Structure Event events = %d, want 15", got)
	}
	if got := structure.Get("Sensory-event").Events; got != 8 {
		t.Errorf("Structure Sensory-event events = %d, want 8", got)
	}

	behavior := organized["Behavior"]
	if behavior == nil || behavior.Get("Action") == nil || behavior.Get("Action").Events != 10 {
		t.Fatalf("Behavior group missing Action: %v", behavior)
	}

	if unmatched.Len() != 1 || unmatched.Get("Red") == nil || unmatched.Get("Red").Events != 3 {
		t.Fatalf("unmatched = %v tags, want only Red", unmatched.Tags())
	}

	// File attribution survives the split.
	if got := structure.Get("Event").Files(); !reflect.DeepEqual(got, []string{"a.tsv"}) {
		t.Errorf("Event files = %v, want [a.tsv]", got)
	}
}

func TestOrganizeLongFormEntries(t *testing.T) {
	tc := NewTagCounts("run-1")
	tc.Add("Sensory-event", 4, "")

	tpl := Template{"Structure": {"Event/Sensory-event"}}
	organized, unmatched := tpl.Organize(tc)

	if organized["Structure"].Get("Sensory-event") == nil {
		t.Error("long-form template entry should claim the short-form tag")
	}
	if unmatched.Len() != 0 {
		t.Errorf("unmatched = %v, want empty", unmatched.Tags())
	}
}

func TestOrganizeNilCounts(t *testing.T) {
	tpl := Template{"Structure": {"Event"}}
	organized, unmatched := tpl.Organize(nil)
	if organized["Structure"] == nil || organized["Structure"].Len() != 0 {
		t.Error("nil counts should yield empty category groups")
	}
	if unmatched.Len() != 0 {
		t.Error("nil counts should yield empty remainder")
	}
}
