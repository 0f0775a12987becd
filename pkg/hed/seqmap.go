package hed

import (
	"github.com/hed-standard/hedviz/pkg/errors"
)

// SequenceMap is a bidirectional mapping between compact sequence keys
// (short codes like "E1") and their verbose display strings, with a
// running count of how often each key has been observed. Entries are
// never removed; iteration follows insertion order.
//
// A SequenceMap is not safe for concurrent mutation. Callers sharing one
// across goroutines must serialize access.
type SequenceMap struct {
	verbose map[string]string // compact -> verbose
	compact map[string]string // verbose -> compact
	counts  map[string]int    // compact -> observations
	order   []string          // compact keys in insertion order
}

// NewSequenceMap creates an empty SequenceMap.
func NewSequenceMap() *SequenceMap {
	return &SequenceMap{
		verbose: make(map[string]string),
		compact: make(map[string]string),
		counts:  make(map[string]int),
	}
}

// Add registers the compact/verbose pairing if absent and increments the
// observation count for the compact key. The verbose text of an existing
// key is kept from its first registration.
func (m *SequenceMap) Add(compactKey, verboseText string) {
	if _, ok := m.verbose[compactKey]; !ok {
		m.verbose[compactKey] = verboseText
		m.compact[verboseText] = compactKey
		m.order = append(m.order, compactKey)
	}
	m.counts[compactKey]++
}

// Verbose returns the display string registered for the compact key.
func (m *SequenceMap) Verbose(compactKey string) (string, error) {
	v, ok := m.verbose[compactKey]
	if !ok {
		return "", errors.New(errors.ErrCodeNotFound, "no sequence registered for key %q", compactKey)
	}
	return v, nil
}

// Compact returns the compact key registered for the verbose text.
func (m *SequenceMap) Compact(verboseText string) (string, error) {
	c, ok := m.compact[verboseText]
	if !ok {
		return "", errors.New(errors.ErrCodeNotFound, "no sequence registered for text %q", verboseText)
	}
	return c, nil
}

// Counts returns a snapshot of observation counts keyed by compact key.
// The returned map is a copy; mutating it does not affect the SequenceMap.
func (m *SequenceMap) Counts() map[string]int {
	out := make(map[string]int, len(m.counts))
	for k, v := range m.counts {
		out[k] = v
	}
	return out
}

// Keys returns the compact keys in insertion order.
func (m *SequenceMap) Keys() []string {
	return append([]string(nil), m.order...)
}

// Len returns the number of registered sequences.
func (m *SequenceMap) Len() int {
	return len(m.order)
}
