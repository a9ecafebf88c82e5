package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"tobedone/pkg/database"
)

// refreshRows rebuilds the table rows from the current note list
func (m *Model) refreshRows() {
	rows := []table.Row{}

	for _, note := range m.notes {
		status := "[ ]"
		if note.IsDone {
			status = "[x]"
		}

		title := note.Title
		if title == "" {
			title = note.Content
		}

		styled := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.PriorityColor(note.Priority))).
			Render(title)
		if note.IsDone {
			styled = lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.styles.DoneColor)).
				Strikethrough(true).
				Render(title)
		}

		rows = append(rows, table.Row{fmt.Sprintf("%s %s", status, styled)})
	}

	m.table.SetRows(rows)

	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

// selectedNote returns the note under the cursor, or nil when the
// list is empty.
func (m *Model) selectedNote() *database.Note {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.notes) {
		return nil
	}
	return &m.notes[idx]
}

// focusNextInput cycles through the form inputs
func (m *Model) focusNextInput() {
	m.setActiveInput((m.activeInput + 1) % 3)
}

// focusPreviousInput cycles through the form inputs backwards
func (m *Model) focusPreviousInput() {
	m.setActiveInput((m.activeInput + 2) % 3)
}

func (m *Model) setActiveInput(active int) {
	m.activeInput = active

	switch active {
	case 0:
		m.titleInput.Focus()
		m.contentInput.Blur()
		m.priorityInput.Blur()
	case 1:
		m.titleInput.Blur()
		m.contentInput.Focus()
		m.priorityInput.Blur()
	case 2:
		m.titleInput.Blur()
		m.contentInput.Blur()
		m.priorityInput.Focus()
	}
}

// canSubmitForm reports whether the draft fields are both non-blank,
// which is when the form offers a commit affordance at all.
func (m Model) canSubmitForm() bool {
	return strings.TrimSpace(m.titleInput.Value()) != "" &&
		strings.TrimSpace(m.contentInput.Value()) != ""
}

// submitForm commits the draft held by the editor controller. A draft
// with a blank title or content is not committed; the form stays open.
func (m *Model) submitForm() {
	if m.editor == nil {
		return
	}

	m.editor.SetTitle(m.titleInput.Value())
	m.editor.SetContent(m.contentInput.Value())
	if p, err := strconv.Atoi(strings.TrimSpace(m.priorityInput.Value())); err == nil {
		m.editor.SetPriority(p)
	}

	if !m.editor.CanCommit() {
		return
	}

	if err := m.editor.Commit(); err != nil {
		m.err = err
		return
	}

	m.mode = NormalMode
	m.resetInputs()
	m.editor = nil
	m.err = nil
}

// priorityTag renders a colored priority label like "!needs attention"
func (m *Model) priorityTag(priority int) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.PriorityColor(priority))).
		Render(fmt.Sprintf("!%s", database.PriorityLabel(priority)))
}
