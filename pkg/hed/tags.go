package hed

import (
	"strings"
	"unicode"
)

// splitTop splits an annotation string on commas that sit outside any
// parenthesized group. Elements are trimmed and empties dropped, so a
// returned element is either a single tag or a complete "(...)" group.
func splitTop(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])

	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isGroup(el string) bool {
	return strings.HasPrefix(el, "(") && strings.HasSuffix(el, ")")
}

func groupContents(el string) string {
	return strings.TrimSpace(el[1 : len(el)-1])
}

// FlattenTags returns every tag in an annotation in order of appearance,
// descending into nested groups. Grouping is dropped; use splitTop when
// group structure matters.
func FlattenTags(annotation string) []string {
	var tags []string
	var walk func(string)
	walk = func(s string) {
		for _, el := range splitTop(s) {
			if isGroup(el) {
				walk(groupContents(el))
				continue
			}
			tags = append(tags, el)
		}
	}
	walk(annotation)
	return tags
}

// ShortForm reduces a slash-delimited tag to the component a reader would
// recognize: the last path component, or an earlier one when the tail is a
// placeholder or a value ("Duration/2.5 s" yields "Duration").
func ShortForm(tag string) string {
	parts := strings.Split(tag, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		p := strings.TrimSpace(parts[i])
		if p == "" || p == "#" || startsWithDigit(p) {
			continue
		}
		return p
	}
	return strings.TrimSpace(tag)
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}

// HasType reports whether any path component of tag equals one of the
// given type names, ignoring case. Works on both long and short forms.
func HasType(tag string, types []string) bool {
	if len(types) == 0 {
		return false
	}
	for _, part := range strings.Split(tag, "/") {
		part = strings.TrimSpace(part)
		for _, t := range types {
			if strings.EqualFold(part, t) {
				return true
			}
		}
	}
	return false
}

// defName extracts the definition name from a "Def/Name" or "Def/Name/value"
// tag. The second return is false when the tag is not a Def tag.
func defName(tag string) (string, bool) {
	parts := strings.SplitN(tag, "/", 3)
	if len(parts) < 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "Def") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// definitionName extracts the name from a "Definition/Name" or
// "Definition/Name/#" tag used inside a definition group.
func definitionName(tag string) (string, bool) {
	parts := strings.SplitN(tag, "/", 3)
	if len(parts) < 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "Definition") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
