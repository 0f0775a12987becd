package hed

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/hed-standard/hedviz/pkg/errors"
)

// TagCount records how often a single tag occurred and in which files.
type TagCount struct {
	Tag    string
	Events int
	files  map[string]struct{}
}

// FileCount returns the number of distinct files the tag occurred in.
func (c *TagCount) FileCount() int {
	return len(c.files)
}

// Files returns the distinct files the tag occurred in, sorted.
func (c *TagCount) Files() []string {
	names := make([]string, 0, len(c.files))
	for f := range c.files {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// TagCounts accumulates tag occurrences across one or more event files.
// Tags iterate in first-seen order. Not safe for concurrent mutation.
type TagCounts struct {
	name        string
	counts      map[string]*TagCount
	order       []string
	files       map[string]struct{}
	totalEvents int
}

// NewTagCounts creates an empty accumulator labeled with a dataset or
// file name.
func NewTagCounts(name string) *TagCounts {
	return &TagCounts{
		name:   name,
		counts: make(map[string]*TagCount),
		files:  make(map[string]struct{}),
	}
}

// Name returns the label given at construction.
func (tc *TagCounts) Name() string { return tc.name }

// Add records events occurrences of tag in file. An empty file attributes
// the occurrences to no particular file.
func (tc *TagCounts) Add(tag string, events int, file string) {
	entry, ok := tc.counts[tag]
	if !ok {
		entry = &TagCount{Tag: tag, files: make(map[string]struct{})}
		tc.counts[tag] = entry
		tc.order = append(tc.order, tag)
	}
	entry.Events += events
	if file != "" {
		entry.files[file] = struct{}{}
		tc.files[file] = struct{}{}
	}
}

// AddEvents bumps the dataset-level event total, attributing them to file.
// Call once per processed row (or once per file with the row count).
func (tc *TagCounts) AddEvents(n int, file string) {
	tc.totalEvents += n
	if file != "" {
		tc.files[file] = struct{}{}
	}
}

// Get returns the count entry for tag, or nil when the tag is unseen.
func (tc *TagCounts) Get(tag string) *TagCount {
	return tc.counts[tag]
}

// Tags returns all tags in first-seen order.
func (tc *TagCounts) Tags() []string {
	return append([]string(nil), tc.order...)
}

// Len returns the number of distinct tags.
func (tc *TagCounts) Len() int { return len(tc.order) }

// TotalEvents returns the dataset-level event total.
func (tc *TagCounts) TotalEvents() int { return tc.totalEvents }

// TotalFiles returns the number of distinct contributing files.
func (tc *TagCounts) TotalFiles() int { return len(tc.files) }

// Frequencies returns tag -> event count, the mapping consumed by the
// word-cloud generator. The returned map is a copy.
func (tc *TagCounts) Frequencies() map[string]int {
	out := make(map[string]int, len(tc.counts))
	for tag, entry := range tc.counts {
		out[tag] = entry.Events
	}
	return out
}

// Merge folds other into tc: per-tag event counts are summed, file sets
// and dataset totals are unioned. other is left untouched.
func (tc *TagCounts) Merge(other *TagCounts) {
	if other == nil {
		return
	}
	for _, tag := range other.order {
		entry := other.counts[tag]
		target, ok := tc.counts[tag]
		if !ok {
			target = &TagCount{Tag: tag, files: make(map[string]struct{})}
			tc.counts[tag] = target
			tc.order = append(tc.order, tag)
		}
		target.Events += entry.Events
		for f := range entry.files {
			target.files[f] = struct{}{}
		}
	}
	for f := range other.files {
		tc.files[f] = struct{}{}
	}
	tc.totalEvents += other.totalEvents
}

// =============================================================================
// Summary import/export
// =============================================================================

// Summary is the JSON-encodable digest of a TagCounts, matching the
// counts files the batch command writes.
type Summary struct {
	Name        string                `json:"name"`
	RunID       string                `json:"run_id,omitempty"`
	TotalEvents int                   `json:"total_events"`
	TotalFiles  int                   `json:"total_files"`
	Files       []string              `json:"files"`
	Tags        map[string]TagSummary `json:"tags"`
}

// TagSummary is the per-tag slice of a Summary.
type TagSummary struct {
	Events int `json:"events"`
	Files  int `json:"files"`
}

// Summary produces the digest of the accumulated counts. Files are sorted
// for stable output.
func (tc *TagCounts) Summary() Summary {
	files := make([]string, 0, len(tc.files))
	for f := range tc.files {
		files = append(files, f)
	}
	sort.Strings(files)

	tags := make(map[string]TagSummary, len(tc.counts))
	for tag, entry := range tc.counts {
		tags[tag] = TagSummary{Events: entry.Events, Files: len(entry.files)}
	}

	return Summary{
		Name:        tc.name,
		TotalEvents: tc.totalEvents,
		TotalFiles:  len(tc.files),
		Files:       files,
		Tags:        tags,
	}
}

// WriteSummary encodes a summary as indented JSON and writes it to w.
func WriteSummary(s Summary, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportSummary writes a summary to a JSON file at path.
// This is a convenience wrapper around [WriteSummary] for file-based output.
func ExportSummary(s Summary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, err, "create %s", path)
	}
	defer f.Close()
	if err := WriteSummary(s, f); err != nil {
		return errors.Wrap(errors.ErrCodeFileWrite, err, "write %s", path)
	}
	return nil
}

// ReadCounts decodes tag counts from JSON. Both shapes the tooling emits
// are accepted: a full Summary document, and a flat object mapping words
// to counts. For a flat object the dataset event total is the sum of the
// counts.
func ReadCounts(r io.Reader) (*TagCounts, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileUnreadable, err, "read counts")
	}

	var probe struct {
		Tags map[string]TagSummary `json:"tags"`
	}
	if err := json.Unmarshal(data, &probe); err == nil && probe.Tags != nil {
		var s Summary
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode counts summary")
		}
		tc := NewTagCounts(s.Name)
		tags := make([]string, 0, len(s.Tags))
		for tag := range s.Tags {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			tc.Add(tag, s.Tags[tag].Events, "")
		}
		tc.totalEvents = s.TotalEvents
		for _, f := range s.Files {
			tc.files[f] = struct{}{}
		}
		return tc, nil
	}

	var flat map[string]int
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode counts")
	}
	tc := NewTagCounts("")
	tags := make([]string, 0, len(flat))
	for tag := range flat {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		tc.Add(tag, flat[tag], "")
		tc.totalEvents += flat[tag]
	}
	return tc, nil
}

// LoadCounts reads tag counts from a JSON file at path.
func LoadCounts(path string) (*TagCounts, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "counts file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileUnreadable, err, "counts file %s", path)
	}
	defer f.Close()

	tc, err := ReadCounts(f)
	if err != nil {
		return nil, err
	}
	if tc.name == "" {
		tc.name = path
	}
	return tc, nil
}
