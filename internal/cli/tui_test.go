package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func step(t *testing.T, m FilePickerModel, msg tea.Msg) FilePickerModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(FilePickerModel)
	if !ok {
		t.Fatalf("Update returned %T, want FilePickerModel", next)
	}
	return out
}

func TestFilePickerStartsAllSelected(t *testing.T) {
	m := NewFilePickerModel([]string{"a.tsv", "b.tsv", "c.tsv"})
	if got := m.Selected(); len(got) != 3 {
		t.Fatalf("Selected() = %v, want all 3", got)
	}
	if m.Confirmed {
		t.Error("picker starts confirmed")
	}
}

func TestFilePickerToggleAndConfirm(t *testing.T) {
	m := NewFilePickerModel([]string{"a.tsv", "b.tsv", "c.tsv"})

	// Move to b.tsv and deselect it.
	m = step(t, m, keyRune('j'))
	m = step(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.Confirmed {
		t.Fatal("enter did not confirm")
	}
	got := m.Selected()
	if len(got) != 2 || got[0] != "a.tsv" || got[1] != "c.tsv" {
		t.Errorf("Selected() = %v, want [a.tsv c.tsv]", got)
	}
}

func TestFilePickerToggleAll(t *testing.T) {
	m := NewFilePickerModel([]string{"a.tsv", "b.tsv"})

	m = step(t, m, keyRune('a'))
	if got := m.Selected(); len(got) != 0 {
		t.Fatalf("Selected() after toggle-all = %v, want none", got)
	}

	m = step(t, m, keyRune('a'))
	if got := m.Selected(); len(got) != 2 {
		t.Fatalf("Selected() after second toggle-all = %v, want both", got)
	}
}

func TestFilePickerCursorBounds(t *testing.T) {
	m := NewFilePickerModel([]string{"a.tsv", "b.tsv"})

	m = step(t, m, keyRune('k'))
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after up at top, want 0", m.Cursor)
	}

	m = step(t, m, keyRune('j'))
	m = step(t, m, keyRune('j'))
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d after down at bottom, want 1", m.Cursor)
	}
}

func TestFilePickerAbort(t *testing.T) {
	m := NewFilePickerModel([]string{"a.tsv"})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Confirmed {
		t.Error("esc must not confirm")
	}
}

func TestFilePickerScrollsWindow(t *testing.T) {
	files := make([]string, 20)
	for i := range files {
		files[i] = string(rune('a'+i)) + ".tsv"
	}
	m := NewFilePickerModel(files)
	m.Height = 5

	for range 7 {
		m = step(t, m, keyRune('j'))
	}
	if m.Cursor != 7 {
		t.Fatalf("Cursor = %d, want 7", m.Cursor)
	}
	if m.Offset != 3 {
		t.Errorf("Offset = %d, want 3 (cursor kept in window)", m.Offset)
	}
}

func TestDisplayPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a.tsv", "a.tsv"},
		{"sub-01/a.tsv", "sub-01/a.tsv"},
		{"data/study/sub-01/ses-1/a.tsv", ".../sub-01/ses-1/a.tsv"},
	}
	for _, tt := range tests {
		if got := displayPath(tt.in); got != tt.want {
			t.Errorf("displayPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
