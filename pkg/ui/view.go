package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"tobedone/pkg/database"
)

// View renders the UI based on the current mode
func (m Model) View() string {
	var sb strings.Builder

	switch m.mode {
	case NormalMode:
		// App title bar
		titleBar := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
			Background(lipgloss.Color(m.styles.AccentColor)).
			Padding(0, 1).
			Render(" ToBeDone - Notes ")

		sb.WriteString(titleBar)
		sb.WriteString("\n\n")

		sb.WriteString(m.table.View())
		sb.WriteString("\n")

		state := m.list.State()

		if state.DetailExpanded {
			sb.WriteString(m.renderDetails())
			sb.WriteString("\n")
		}

		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.NormalTextColor)).
			Render(m.viewInfo()))
		sb.WriteString("\n")

	case AddMode:
		sb.WriteString(m.modeTitle(" Add Note ", m.styles.AccentColor))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm())

	case EditMode:
		sb.WriteString(m.modeTitle(" Edit Note ", m.styles.AccentColor))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm())

	case DeleteConfirmMode:
		sb.WriteString(m.modeTitle(" Delete Note ", m.styles.ErrorColor))
		sb.WriteString("\n\n")

		if m.deletingNote != nil {
			sb.WriteString("Are you sure you want to delete this note?\n\n")
			sb.WriteString(fmt.Sprintf("Title: %s\n", m.deletingNote.Title))
			sb.WriteString(fmt.Sprintf("Priority: %s\n", database.PriorityLabel(m.deletingNote.Priority)))
			sb.WriteString("\n")
			sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Press Y to confirm, N to cancel"))
		}

	case SearchMode:
		sb.WriteString(m.modeTitle(" Search Notes ", m.styles.AccentColor))
		sb.WriteString("\n\n")
		sb.WriteString("Matches update as you type:")
		sb.WriteString("\n\n")
		sb.WriteString(m.searchInput.View())
		sb.WriteString("\n\n")
		sb.WriteString(fmt.Sprintf("%d note(s) match", len(m.notes)))

	case FilterMode:
		sb.WriteString(m.modeTitle(" Filter Notes ", m.styles.AccentColor))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderFilters())

	case HelpViewMode:
		sb.WriteString(m.renderHelp())
	}

	// Error message if any
	if m.err != nil {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.ErrorColor)).
			Render(fmt.Sprintf("\n\nError: %v", m.err)))
	}

	sb.WriteString("\n")
	sb.WriteString(m.helpBar())

	return sb.String()
}

// renderDetails renders the expanded detail pane for the selected note
func (m Model) renderDetails() string {
	note := m.selectedNote()
	if note == nil {
		return ""
	}

	detailStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.styles.BorderColor)).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString(m.priorityTag(note.Priority))
	sb.WriteString("\n")
	sb.WriteString(note.Content)
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.DoneColor)).
		Render(fmt.Sprintf("created %s, updated %s",
			time.Unix(note.CreationTime, 0).Format("2006-01-02 15:04"),
			time.Unix(note.LastUpdated, 0).Format("2006-01-02 15:04"))))

	return detailStyle.Render(sb.String())
}

// viewInfo summarizes the active search, filters, and ordering
func (m Model) viewInfo() string {
	state := m.list.State()

	var parts []string
	parts = append(parts, fmt.Sprintf("%d note(s)", len(m.notes)))

	if state.SearchText != "" {
		parts = append(parts, fmt.Sprintf("search: %q", state.SearchText))
	}

	if len(state.PriorityFilter) > 0 {
		var levels []int
		for p := range state.PriorityFilter {
			levels = append(levels, p)
		}
		sort.Ints(levels)
		var tags []string
		for _, p := range levels {
			tags = append(tags, fmt.Sprintf("p%d", p))
		}
		parts = append(parts, "priority: "+strings.Join(tags, ","))
	}

	if len(state.DoneFilter) > 0 {
		var tags []string
		if state.DoneFilter[true] {
			tags = append(tags, "done")
		}
		if state.DoneFilter[false] {
			tags = append(tags, "pending")
		}
		parts = append(parts, "status: "+strings.Join(tags, ","))
	}

	parts = append(parts, fmt.Sprintf("sorted by %s", state.SortOption))

	return "Showing " + strings.Join(parts, " | ")
}

// renderForm renders the input form for adding/editing notes
func (m Model) renderForm() string {
	var sb strings.Builder

	formStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.styles.BorderColor)).
		Padding(1, 2)

	sb.WriteString("Title:\n")
	sb.WriteString(m.titleInput.View())
	sb.WriteString("\n\n")

	sb.WriteString("Content:\n")
	sb.WriteString(m.contentInput.View())
	sb.WriteString("\n\n")

	sb.WriteString("Priority (1 = critical .. 5 = trivial):\n")
	sb.WriteString(m.priorityInput.View())

	return formStyle.Render(sb.String())
}

// renderFilters renders the filter panel with the current selections
func (m Model) renderFilters() string {
	state := m.list.State()

	var sb strings.Builder

	checkbox := func(selected bool, label string) string {
		mark := "[ ]"
		if selected {
			mark = "[x]"
		}
		return fmt.Sprintf("%s %s", mark, label)
	}

	sb.WriteString("Priority (press 1-5 to toggle, empty selection shows all):\n")
	for _, p := range database.PriorityLevels {
		line := checkbox(state.PriorityFilter[p], fmt.Sprintf("%d %s", p, database.PriorityLabel(p)))
		sb.WriteString("  ")
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.styles.PriorityColor(p))).
			Render(line))
		sb.WriteString("\n")
	}

	sb.WriteString("\nStatus (press d/u to toggle, empty selection shows all):\n")
	sb.WriteString("  " + checkbox(state.DoneFilter[true], "d done") + "\n")
	sb.WriteString("  " + checkbox(state.DoneFilter[false], "u pending") + "\n")

	sb.WriteString("\nr: reset all filters • esc: back")

	return sb.String()
}

// renderHelp renders the fullscreen command list
func (m Model) renderHelp() string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Available Commands"))
	sb.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.AccentColor)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor))

	bindings := []struct {
		key  string
		desc string
	}{
		{m.keyMap.QuitApp.Help().Key, m.keyMap.QuitApp.Help().Desc},
		{m.keyMap.ShowHelp.Help().Key, m.keyMap.ShowHelp.Help().Desc},
		{m.keyMap.ToggleDone.Help().Key, m.keyMap.ToggleDone.Help().Desc},
		{m.keyMap.AddNote.Help().Key, m.keyMap.AddNote.Help().Desc},
		{m.keyMap.EditNote.Help().Key, m.keyMap.EditNote.Help().Desc},
		{m.keyMap.DeleteNote.Help().Key, m.keyMap.DeleteNote.Help().Desc},
		{m.keyMap.SearchNotes.Help().Key, m.keyMap.SearchNotes.Help().Desc},
		{m.keyMap.FilterNotes.Help().Key, m.keyMap.FilterNotes.Help().Desc},
		{m.keyMap.ResetFilters.Help().Key, m.keyMap.ResetFilters.Help().Desc},
		{m.keyMap.CycleSort.Help().Key, m.keyMap.CycleSort.Help().Desc},
		{m.keyMap.ToggleDetails.Help().Key, m.keyMap.ToggleDetails.Help().Desc},
	}

	for _, b := range bindings {
		sb.WriteString(fmt.Sprintf("%s: %s\n",
			descStyle.Render(b.desc),
			keyStyle.Render(b.key)))
	}

	return sb.String()
}

// modeTitle renders the highlighted title bar for a mode
func (m Model) modeTitle(text, background string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.styles.SelectedTextColor)).
		Background(lipgloss.Color(background)).
		Padding(0, 1).
		Render(text)
}

// helpBar renders a sleek status bar with available actions
func (m Model) helpBar() string {
	var actions []string

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.AccentColor)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.NormalTextColor))
	separatorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.styles.BorderColor))

	separator := separatorStyle.Render(" • ")

	addAction := func(k, desc string) {
		actions = append(actions, fmt.Sprintf("%s %s", keyStyle.Render(k), descStyle.Render(desc)))
	}

	switch m.mode {
	case NormalMode:
		addAction("a", "add")
		addAction("e", "edit")
		addAction("d", "delete")
		addAction("space", "done")
		addAction("/", "search")
		addAction("f", "filter")
		addAction("s", "sort")
		addAction("x", "details")
		addAction("ctrl+b", "help")
		addAction("q", "quit")

	case AddMode, EditMode:
		addAction("tab", "next field")
		if m.canSubmitForm() {
			addAction("enter", "submit from priority")
		}
		addAction("esc", "discard")

	case DeleteConfirmMode:
		addAction("y", "delete")
		addAction("n", "cancel")

	case SearchMode:
		addAction("enter", "apply")
		addAction("esc", "clear")

	case FilterMode:
		addAction("1-5", "priority")
		addAction("d/u", "status")
		addAction("r", "reset")
		addAction("esc", "back")

	case HelpViewMode:
		addAction("esc", "back")
	}

	return strings.Join(actions, separator)
}
