package hed

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hed-standard/hedviz/pkg/errors"
)

func TestTagCountsAdd(t *testing.T) {
	tc := NewTagCounts("run-1")
	tc.Add("Event", 3, "sub-01.tsv")
	tc.Add("Event", 2, "sub-02.tsv")
	tc.Add("Action", 1, "sub-01.tsv")
	tc.AddEvents(6, "sub-01.tsv")

	if got := tc.Get("Event").Events; got != 5 {
		t.Errorf("Event count = %d, want 5", got)
	}
	if got := tc.Get("Event").FileCount(); got != 2 {
		t.Errorf("Event file count = %d, want 2", got)
	}
	if tc.Get("Missing") != nil {
		t.Error("Get(Missing) != nil")
	}
	if got := tc.TotalEvents(); got != 6 {
		t.Errorf("TotalEvents() = %d, want 6", got)
	}
	if got := tc.TotalFiles(); got != 2 {
		t.Errorf("TotalFiles() = %d, want 2", got)
	}

	want := []string{"Event", "Action"}
	got := tc.Tags()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tags()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTagCountsFrequencies(t *testing.T) {
	tc := NewTagCounts("")
	tc.Add("Event", 15, "")
	tc.Add("Action", 10, "")

	freqs := tc.Frequencies()
	if freqs["Event"] != 15 || freqs["Action"] != 10 {
		t.Errorf("Frequencies() = %v", freqs)
	}

	// Returned map is a copy.
	freqs["Event"] = 0
	if tc.Get("Event").Events != 15 {
		t.Error("mutating Frequencies() result changed counts")
	}
}

func TestTagCountsMerge(t *testing.T) {
	a := NewTagCounts("merged")
	a.Add("Event", 3, "a.tsv")
	a.AddEvents(3, "a.tsv")

	b := NewTagCounts("b")
	b.Add("Event", 2, "b.tsv")
	b.Add("Sensory-event", 4, "b.tsv")
	b.AddEvents(6, "b.tsv")

	a.Merge(b)

	if got := a.Get("Event").Events; got != 5 {
		t.Errorf("merged Event count = %d, want 5", got)
	}
	if got := a.Get("Event").FileCount(); got != 2 {
		t.Errorf("merged Event files = %d, want 2", got)
	}
	if got := a.Get("Sensory-event").Events; got != 4 {
		t.Errorf("merged Sensory-event count = %d, want 4", got)
	}
	if got := a.TotalEvents(); got != 9 {
		t.Errorf("merged TotalEvents = %d, want 9", got)
	}
	if got := a.TotalFiles(); got != 2 {
		t.Errorf("merged TotalFiles = %d, want 2", got)
	}

	// Merge is one-directional.
	if b.Get("Event").Events != 2 {
		t.Error("Merge mutated its argument")
	}

	a.Merge(nil) // must not panic
}

func TestSummaryRoundTrip(t *testing.T) {
	tc := NewTagCounts("ds002")
	tc.Add("Event", 10, "run1.tsv")
	tc.Add("Agent-action", 4, "run2.tsv")
	tc.AddEvents(12, "run1.tsv")
	tc.AddEvents(5, "run2.tsv")

	s := tc.Summary()
	if s.Name != "ds002" {
		t.Errorf("Name = %q, want ds002", s.Name)
	}
	if s.TotalEvents != 17 || s.TotalFiles != 2 {
		t.Errorf("totals = %d events / %d files, want 17 / 2", s.TotalEvents, s.TotalFiles)
	}
	if len(s.Files) != 2 || s.Files[0] != "run1.tsv" {
		t.Errorf("Files = %v, want sorted [run1.tsv run2.tsv]", s.Files)
	}
	if s.Tags["Event"].Events != 10 || s.Tags["Event"].Files != 1 {
		t.Errorf("Tags[Event] = %+v", s.Tags["Event"])
	}

	var buf bytes.Buffer
	if err := WriteSummary(s, &buf); err != nil {
		t.Fatalf("WriteSummary() error: %v", err)
	}

	restored, err := ReadCounts(&buf)
	if err != nil {
		t.Fatalf("ReadCounts() error: %v", err)
	}
	if restored.Name() != "ds002" {
		t.Errorf("restored Name = %q", restored.Name())
	}
	if restored.Get("Event").Events != 10 {
		t.Errorf("restored Event count = %d, want 10", restored.Get("Event").Events)
	}
	if restored.TotalEvents() != 17 {
		t.Errorf("restored TotalEvents = %d, want 17", restored.TotalEvents())
	}
}

func TestReadCountsFlat(t *testing.T) {
	tc, err := ReadCounts(strings.NewReader(`{"Event": 15, "Action": 10, "Sensory-event": 8}`))
	if err != nil {
		t.Fatalf("ReadCounts() error: %v", err)
	}
	if tc.Get("Sensory-event").Events != 8 {
		t.Errorf("Sensory-event = %d, want 8", tc.Get("Sensory-event").Events)
	}
	if tc.TotalEvents() != 33 {
		t.Errorf("TotalEvents = %d, want 33 (sum)", tc.TotalEvents())
	}
}

func TestReadCountsMalformed(t *testing.T) {
	_, err := ReadCounts(strings.NewReader(`["not", "an", "object"]`))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeInvalidInput)
	}
}

func TestExportAndLoadCounts(t *testing.T) {
	tc := NewTagCounts("demo")
	tc.Add("Event", 7, "f.tsv")
	tc.AddEvents(7, "f.tsv")

	path := filepath.Join(t.TempDir(), "counts.json")
	if err := ExportSummary(tc.Summary(), path); err != nil {
		t.Fatalf("ExportSummary() error: %v", err)
	}

	loaded, err := LoadCounts(path)
	if err != nil {
		t.Fatalf("LoadCounts() error: %v", err)
	}
	if loaded.Get("Event").Events != 7 {
		t.Errorf("loaded Event = %d, want 7", loaded.Get("Event").Events)
	}

	_, err = LoadCounts(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}
}

func TestSummaryJSONShape(t *testing.T) {
	tc := NewTagCounts("shape")
	tc.Add("Event", 1, "x.tsv")
	tc.AddEvents(1, "x.tsv")
	s := tc.Summary()
	s.RunID = "0000-test"

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"name"`, `"run_id"`, `"total_events"`, `"total_files"`, `"files"`, `"tags"`, `"events"`} {
		if !bytes.Contains(data, []byte(key)) {
			t.Errorf("summary JSON missing %s: %s", key, data)
		}
	}
}
