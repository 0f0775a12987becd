package hed

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hed-standard/hedviz/pkg/errors"
)

// columnDef holds the HED annotation source for one event-file column.
// Exactly one of value and categories is set: value columns carry a single
// annotation with a "#" placeholder for the cell value, categorical columns
// map cell values to annotations.
type columnDef struct {
	value      string
	categories map[string]string
}

// Sidecar is the HED-relevant slice of a BIDS JSON sidecar: per-column
// annotation sources plus any definitions found in them. Non-HED sidecar
// keys (Description, Levels, Units) are ignored rather than rejected.
type Sidecar struct {
	name    string
	columns map[string]*columnDef
	defs    map[string][]string
}

// ReadSidecar decodes a sidecar from JSON. The name labels the source in
// errors and is typically the file path.
func ReadSidecar(r io.Reader, name string) (*Sidecar, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUpstream, err, "malformed sidecar JSON: %s", name)
	}

	s := &Sidecar{
		name:    name,
		columns: make(map[string]*columnDef),
		defs:    make(map[string][]string),
	}
	for column, entry := range raw {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(entry, &fields); err != nil {
			continue // scalar top-level entries carry no HED
		}
		hedRaw, ok := fields["HED"]
		if !ok {
			continue
		}

		def := &columnDef{}
		var valueHED string
		if err := json.Unmarshal(hedRaw, &valueHED); err == nil {
			def.value = valueHED
			s.collectDefinitions(valueHED)
		} else {
			var catHED map[string]string
			if err := json.Unmarshal(hedRaw, &catHED); err != nil {
				return nil, errors.New(errors.ErrCodeUpstream,
					"sidecar column %s has a HED entry that is neither a string nor a value map: %s", column, name)
			}
			def.categories = catHED
			for _, annotation := range catHED {
				s.collectDefinitions(annotation)
			}
		}
		s.columns[column] = def
	}
	return s, nil
}

// LoadSidecar reads a sidecar from a JSON file.
func LoadSidecar(path string) (*Sidecar, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "sidecar file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileUnreadable, err, "sidecar file %s", path)
	}
	defer f.Close()
	return ReadSidecar(f, path)
}

// collectDefinitions records every "(Definition/Name, (...))" group found in
// the annotation, keyed by lowercased name. The stored contents are the
// flattened tags of the definition's inner group.
func (s *Sidecar) collectDefinitions(annotation string) {
	var walk func(string)
	walk = func(str string) {
		for _, el := range splitTop(str) {
			if !isGroup(el) {
				continue
			}
			inner := groupContents(el)
			name, contents, ok := parseDefinition(inner)
			if ok {
				s.defs[strings.ToLower(name)] = contents
				continue
			}
			walk(inner)
		}
	}
	walk(annotation)
}

// parseDefinition splits the contents of a candidate definition group into
// the definition name and its flattened payload tags.
func parseDefinition(inner string) (string, []string, bool) {
	var name string
	var contents []string
	found := false
	for _, el := range splitTop(inner) {
		if isGroup(el) {
			contents = append(contents, FlattenTags(groupContents(el))...)
			continue
		}
		if n, ok := definitionName(el); ok {
			name, found = n, true
			continue
		}
		contents = append(contents, el)
	}
	if !found || name == "" {
		return "", nil, false
	}
	return name, contents, true
}

// Name returns the label given at construction.
func (s *Sidecar) Name() string { return s.name }

// Columns returns the annotated column names in sorted order.
func (s *Sidecar) Columns() []string {
	names := make([]string, 0, len(s.columns))
	for name := range s.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HEDFor resolves the annotation for one cell. Categorical columns look the
// value up in their map; value columns substitute it for the "#"
// placeholder. The bool is false when the column is not annotated or a
// categorical value is unknown. Cells holding "n/a" or nothing resolve to
// no annotation.
func (s *Sidecar) HEDFor(column, value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "n/a") {
		return "", false
	}
	def, ok := s.columns[column]
	if !ok {
		return "", false
	}
	if def.categories != nil {
		annotation, ok := def.categories[value]
		return annotation, ok
	}
	return strings.ReplaceAll(def.value, "#", value), true
}

// Definition returns the payload tags for a named definition, matching the
// name without regard to case.
func (s *Sidecar) Definition(name string) ([]string, bool) {
	tags, ok := s.defs[strings.ToLower(name)]
	return tags, ok
}

// DefinitionNames returns the collected definition names (lowercased),
// sorted.
func (s *Sidecar) DefinitionNames() []string {
	names := make([]string, 0, len(s.defs))
	for name := range s.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge folds another sidecar's columns and definitions into this one
// without overriding entries already present, so sidecars loaded
// nearest-first keep BIDS inheritance precedence. A nil other is a no-op.
func (s *Sidecar) Merge(other *Sidecar) {
	if other == nil {
		return
	}
	for column, def := range other.columns {
		if _, exists := s.columns[column]; !exists {
			s.columns[column] = def
		}
	}
	for name, tags := range other.defs {
		if _, exists := s.defs[name]; !exists {
			s.defs[name] = tags
		}
	}
}

// FindSidecar locates the JSON sidecar for an events file. It tries, in
// order: a file with the same base name and a .json extension, a task-level
// sidecar ("task-<name>_events.json") in the same directory, and finally an
// optional glob pattern applied in the same directory (lexically first
// match). The bool is false when nothing matched.
func FindSidecar(eventsPath, pattern string) (string, bool) {
	base := strings.TrimSuffix(eventsPath, filepath.Ext(eventsPath))
	if candidate := base + ".json"; fileExists(candidate) {
		return candidate, true
	}

	dir := filepath.Dir(eventsPath)
	stem := strings.TrimSuffix(filepath.Base(eventsPath), filepath.Ext(eventsPath))
	for _, part := range strings.Split(stem, "_") {
		if !strings.HasPrefix(part, "task-") {
			continue
		}
		if candidate := filepath.Join(dir, part+"_events.json"); fileExists(candidate) {
			return candidate, true
		}
		break
	}

	if pattern != "" {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err == nil && len(matches) > 0 {
			sort.Strings(matches)
			return matches[0], true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
