package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hed-standard/hedviz/pkg/errors"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FilePickerModel - Interactive event-file selection
// =============================================================================

// FilePickerModel is the bubbletea model batch mode uses to pick which
// event files to process. Every file starts selected; space toggles the
// file under the cursor, "a" toggles all, enter confirms, q or esc aborts.
type FilePickerModel struct {
	Files     []string
	Checked   []bool
	Cursor    int
	Height    int
	Offset    int
	Confirmed bool
}

// NewFilePickerModel creates a picker with every file pre-selected.
func NewFilePickerModel(files []string) FilePickerModel {
	checked := make([]bool, len(files))
	for i := range checked {
		checked[i] = true
	}
	return FilePickerModel{
		Files:   files,
		Checked: checked,
		Height:  15,
	}
}

func (m FilePickerModel) Init() tea.Cmd {
	return nil
}

func (m FilePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			if len(m.Checked) > 0 {
				m.Checked[m.Cursor] = !m.Checked[m.Cursor]
			}
		case "a":
			all := !m.allChecked()
			for i := range m.Checked {
				m.Checked[i] = all
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FilePickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Event Files"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Files))
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := "[ ]"
		if m.Checked[i] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s%s %s", cursor, mark, displayPath(m.Files[i]))

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case m.Checked[i]:
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d selected", m.Cursor+1, len(m.Files), m.selectedCount())))

	return b.String()
}

// Selected returns the checked files in order.
func (m FilePickerModel) Selected() []string {
	var out []string
	for i, file := range m.Files {
		if m.Checked[i] {
			out = append(out, file)
		}
	}
	return out
}

func (m FilePickerModel) allChecked() bool {
	for _, checked := range m.Checked {
		if !checked {
			return false
		}
	}
	return len(m.Checked) > 0
}

func (m FilePickerModel) selectedCount() int {
	n := 0
	for _, checked := range m.Checked {
		if checked {
			n++
		}
	}
	return n
}

// displayPath shortens long paths to their trailing components.
func displayPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) <= 3 {
		return path
	}
	return ".../" + strings.Join(parts[len(parts)-3:], "/")
}

// pickFiles runs the interactive picker and returns the confirmed
// selection. An aborted picker returns no files and no error.
func pickFiles(files []string) ([]string, error) {
	prog := tea.NewProgram(NewFilePickerModel(files))
	final, err := prog.Run()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "file picker")
	}
	m, ok := final.(FilePickerModel)
	if !ok || !m.Confirmed {
		return nil, nil
	}
	return m.Selected(), nil
}
