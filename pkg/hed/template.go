package hed

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hed-standard/hedviz/pkg/errors"
)

// Template organizes tags into named categories for reporting. Keys are
// category names, values are the tag names (short form) that belong to the
// category.
type Template map[string][]string

// LoadTemplate reads a template from a JSON or YAML file, dispatching on
// the file extension.
func LoadTemplate(path string) (Template, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "template file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileUnreadable, err, "template file %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadTemplateJSON(f)
	case ".yaml", ".yml":
		return ReadTemplateYAML(f)
	default:
		return nil, errors.New(errors.ErrCodeInvalidTemplate,
			"unsupported template extension (want .json, .yaml, or .yml): %s", path)
	}
}

// ReadTemplateJSON decodes a template from JSON.
func ReadTemplateJSON(r io.Reader) (Template, error) {
	var t Template
	dec := json.NewDecoder(r)
	if err := dec.Decode(&t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "malformed template JSON")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ReadTemplateYAML decodes a template from YAML.
func ReadTemplateYAML(r io.Reader) (Template, error) {
	var t Template
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "malformed template YAML")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks that the template has at least one category and that no
// category or tag name is blank.
func (t Template) Validate() error {
	if len(t) == 0 {
		return errors.New(errors.ErrCodeInvalidTemplate, "template has no categories")
	}
	for category, tags := range t {
		if strings.TrimSpace(category) == "" {
			return errors.New(errors.ErrCodeInvalidTemplate, "template has a blank category name")
		}
		for _, tag := range tags {
			if strings.TrimSpace(tag) == "" {
				return errors.New(errors.ErrCodeInvalidTemplate,
					"template category %s has a blank tag name", category)
			}
		}
	}
	return nil
}

// Categories returns the category names in sorted order.
func (t Template) Categories() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Organize splits counts into one TagCounts per category plus a remainder
// of tags that no category claims. A tag belongs to a category when its
// name matches one of the category's entries, ignoring case; entries given
// in long form match on their short form too. Categories are checked in
// sorted name order and the first match wins. Both the organized groups
// and the remainder keep their event and file attributions, so callers
// that want every tag represented must consume both.
func (t Template) Organize(tc *TagCounts) (map[string]*TagCounts, *TagCounts) {
	organized := make(map[string]*TagCounts, len(t))
	categories := t.Categories()
	for _, category := range categories {
		organized[category] = NewTagCounts(category)
	}
	unmatched := NewTagCounts("unmatched")
	if tc == nil {
		return organized, unmatched
	}

	for _, tag := range tc.Tags() {
		count := tc.Get(tag)
		dest := unmatched
		for _, category := range categories {
			if t.claims(category, tag) {
				dest = organized[category]
				break
			}
		}
		dest.Add(tag, count.Events, "")
		for _, file := range count.Files() {
			dest.Add(tag, 0, file)
		}
	}
	return organized, unmatched
}

func (t Template) claims(category, tag string) bool {
	for _, entry := range t[category] {
		if strings.EqualFold(entry, tag) || strings.EqualFold(ShortForm(entry), tag) {
			return true
		}
	}
	return false
}
