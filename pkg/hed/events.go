package hed

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/hed-standard/hedviz/pkg/errors"
)

// EventTable holds one tab-separated events file: a header row of column
// names and the data rows beneath it.
type EventTable struct {
	name    string
	columns []string
	colIdx  map[string]int
	rows    [][]string
}

// ReadEvents parses a tab-separated events file. The first row is the
// header and every data row must have the same number of fields. The name
// labels the source in errors and counts, typically the file path.
func ReadEvents(r io.Reader, name string) (*EventTable, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUpstream, err, "malformed events file: %s", name)
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeUpstream, "events file has no header row: %s", name)
	}

	t := &EventTable{
		name:    name,
		columns: records[0],
		colIdx:  make(map[string]int, len(records[0])),
		rows:    records[1:],
	}
	for i, col := range t.columns {
		t.colIdx[col] = i
	}
	return t, nil
}

// LoadEvents reads an events file from disk.
func LoadEvents(path string) (*EventTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "events file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileUnreadable, err, "events file %s", path)
	}
	defer f.Close()
	return ReadEvents(f, path)
}

// Name returns the label given at construction.
func (t *EventTable) Name() string { return t.name }

// Columns returns the header row.
func (t *EventTable) Columns() []string { return t.columns }

// Len returns the number of data rows.
func (t *EventTable) Len() int { return len(t.rows) }

// Cell returns the value at a row and named column. The bool is false when
// the column does not exist or the row index is out of range.
func (t *EventTable) Cell(row int, column string) (string, bool) {
	idx, ok := t.colIdx[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return "", false
	}
	return t.rows[row][idx], true
}

// hedColumn is the reserved column name for inline annotations.
const hedColumn = "HED"

// AssembleHED builds the combined annotation for one row: the inline HED
// column first, then each sidecar-annotated column in header order. Cells
// holding "n/a" or nothing contribute no annotation. A nil sidecar limits
// assembly to the inline column.
func (t *EventTable) AssembleHED(row int, sc *Sidecar) string {
	var parts []string
	if cell, ok := t.Cell(row, hedColumn); ok {
		cell = strings.TrimSpace(cell)
		if cell != "" && !strings.EqualFold(cell, "n/a") {
			parts = append(parts, cell)
		}
	}
	if sc != nil {
		for _, column := range t.columns {
			if column == hedColumn {
				continue
			}
			cell, _ := t.Cell(row, column)
			if annotation, ok := sc.HEDFor(column, cell); ok {
				parts = append(parts, annotation)
			}
		}
	}
	return strings.Join(parts, ", ")
}

// ===== Tag extraction =====

// ExtractOptions controls how annotations become tag counts.
type ExtractOptions struct {
	// IncludeContext adds the tags of definitions that are active (between
	// an Onset and its matching Offset) to every event inside the span.
	IncludeContext bool

	// ExpandDefs replaces Def/Name tags with the payload of the matching
	// sidecar definition. Unresolvable defs are counted as-is.
	ExpandDefs bool

	// RemoveTypes drops tags having any of these type components, e.g.
	// "Condition-variable" or "Task".
	RemoveTypes []string
}

// DefaultExtractOptions enables context and definition expansion and
// removes nothing.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{IncludeContext: true, ExpandDefs: true}
}

// ExtractTagCounts assembles the annotation for every row of the table and
// accumulates per-tag event counts under each tag's short form. Every row
// contributes one event to the total; a tag counts at most once per row.
//
// Temporal scoping follows Onset/Offset groups: "(Def/X, Onset)" opens a
// span whose tags attach to the following rows until "(Def/X, Offset)"
// closes it. The opening row counts the group's own tags, the closing row
// does not.
func ExtractTagCounts(table *EventTable, sc *Sidecar, opts ExtractOptions) (*TagCounts, error) {
	if table == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no event table to extract from")
	}

	tc := NewTagCounts(table.Name())
	spans := newSpanSet()

	for row := range table.rows {
		tc.AddEvents(1, table.Name())
		annotation := table.AssembleHED(row, sc)

		var rowTags []string
		var opened []span
		for _, el := range splitTop(annotation) {
			if !isGroup(el) {
				rowTags = append(rowTags, expandDef(el, sc, opts)...)
				continue
			}

			def, marker, groupTags := parseTemporalGroup(groupContents(el))
			switch {
			case marker == markerOffset && def != "":
				spans.close(def)
			case marker == markerOnset && def != "":
				expanded := expandDef(def, sc, opts)
				for _, g := range groupTags {
					expanded = append(expanded, expandDef(g, sc, opts)...)
				}
				rowTags = append(rowTags, expanded...)
				opened = append(opened, span{def: def, tags: expanded})
			default:
				for _, g := range groupTags {
					rowTags = append(rowTags, expandDef(g, sc, opts)...)
				}
			}
		}

		if opts.IncludeContext {
			rowTags = append(rowTags, spans.activeTags()...)
		}
		for _, s := range opened {
			spans.open(s)
		}

		seen := make(map[string]struct{}, len(rowTags))
		for _, tag := range rowTags {
			if HasType(tag, opts.RemoveTypes) {
				continue
			}
			short := ShortForm(tag)
			if _, dup := seen[short]; dup {
				continue
			}
			seen[short] = struct{}{}
			tc.Add(short, 1, table.Name())
		}
	}
	return tc, nil
}

type marker int

const (
	markerNone marker = iota
	markerOnset
	markerOffset
)

// parseTemporalGroup splits a group's contents into an optional Def tag, an
// Onset/Offset marker, and the remaining tags (nested groups flattened).
func parseTemporalGroup(inner string) (def string, m marker, tags []string) {
	for _, el := range splitTop(inner) {
		if isGroup(el) {
			tags = append(tags, FlattenTags(groupContents(el))...)
			continue
		}
		switch {
		case strings.EqualFold(el, "Onset"):
			m = markerOnset
		case strings.EqualFold(el, "Offset"):
			m = markerOffset
		default:
			if _, ok := defName(el); ok && def == "" {
				def = el
				continue
			}
			tags = append(tags, el)
		}
	}
	return def, m, tags
}

// expandDef resolves a single tag: Def/Name tags become the definition's
// payload (with "#" placeholders filled from the Def value) when expansion
// is on and the sidecar knows the name; everything else passes through.
func expandDef(tag string, sc *Sidecar, opts ExtractOptions) []string {
	name, ok := defName(tag)
	if !ok {
		return []string{tag}
	}
	if !opts.ExpandDefs || sc == nil {
		return []string{tag}
	}
	payload, found := sc.Definition(name)
	if !found {
		return []string{tag}
	}

	value := ""
	if parts := strings.SplitN(tag, "/", 3); len(parts) == 3 {
		value = strings.TrimSpace(parts[2])
	}
	out := make([]string, 0, len(payload))
	for _, p := range payload {
		if value != "" {
			p = strings.ReplaceAll(p, "#", value)
		}
		out = append(out, p)
	}
	return out
}

// span is one active Onset scope.
type span struct {
	def  string // the Def tag that opened the span
	tags []string
}

// spanSet tracks active spans in opening order.
type spanSet struct {
	order []string
	byDef map[string]span
}

func newSpanSet() *spanSet {
	return &spanSet{byDef: make(map[string]span)}
}

func (ss *spanSet) key(def string) string {
	name, _ := defName(def)
	return strings.ToLower(name)
}

func (ss *spanSet) open(s span) {
	k := ss.key(s.def)
	if _, exists := ss.byDef[k]; !exists {
		ss.order = append(ss.order, k)
	}
	ss.byDef[k] = s
}

func (ss *spanSet) close(def string) {
	k := ss.key(def)
	if _, exists := ss.byDef[k]; !exists {
		return
	}
	delete(ss.byDef, k)
	for i, key := range ss.order {
		if key == k {
			ss.order = append(ss.order[:i], ss.order[i+1:]...)
			break
		}
	}
}

func (ss *spanSet) activeTags() []string {
	var tags []string
	for _, k := range ss.order {
		tags = append(tags, ss.byDef[k].tags...)
	}
	return tags
}
