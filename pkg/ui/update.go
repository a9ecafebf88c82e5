package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tobedone/pkg/controller"
	"tobedone/pkg/utils"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case notesMsg:
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.notes = msg.Notes
			m.refreshRows()
		}
		// Keep listening for the next emission
		cmds = append(cmds, waitForNotes(m.list))

	case tea.KeyMsg:
		switch m.mode {
		case NormalMode:
			switch {
			case key.Matches(msg, m.keyMap.ShowHelp):
				m.mode = HelpViewMode

			case key.Matches(msg, m.keyMap.QuitApp):
				return m, tea.Quit

			case key.Matches(msg, m.keyMap.ToggleDone):
				if note := m.selectedNote(); note != nil {
					if err := m.list.ToggleNoteDone(*note); err != nil {
						m.err = err
					}
				}

			case key.Matches(msg, m.keyMap.AddNote):
				m.mode = AddMode
				m.editor = controller.NewAdd(m.repo)
				m.resetInputs()
				m.priorityInput.SetValue(strconv.Itoa(m.editor.Priority()))

			case key.Matches(msg, m.keyMap.EditNote):
				if note := m.selectedNote(); note != nil {
					editor, err := controller.NewEdit(m.repo, note.ID)
					if err != nil {
						m.err = err
						break
					}
					m.mode = EditMode
					m.editor = editor
					m.resetInputs()
					m.titleInput.SetValue(editor.Title())
					m.contentInput.SetValue(editor.Content())
					m.priorityInput.SetValue(strconv.Itoa(editor.Priority()))
				}

			case key.Matches(msg, m.keyMap.DeleteNote):
				if note := m.selectedNote(); note != nil {
					m.mode = DeleteConfirmMode
					m.deletingNote = note
				}

			case key.Matches(msg, m.keyMap.SearchNotes):
				m.mode = SearchMode
				m.searchInput.Focus()
				m.searchInput.SetValue(m.list.State().SearchText)

			case key.Matches(msg, m.keyMap.FilterNotes):
				m.mode = FilterMode

			case key.Matches(msg, m.keyMap.ResetFilters):
				m.list.ResetFilters()

			case key.Matches(msg, m.keyMap.CycleSort):
				if _, err := m.list.CycleSortOption(); err != nil {
					m.err = err
				}

			case key.Matches(msg, m.keyMap.ToggleDetails):
				if _, err := m.list.ToggleDetailExpanded(); err != nil {
					m.err = err
				}

			case msg.String() == "/":
				m.mode = SearchMode
				m.searchInput.Focus()
				m.searchInput.SetValue(m.list.State().SearchText)
			}

		case AddMode, EditMode:
			consumed := true
			switch msg.String() {
			case "esc":
				// Discard the draft, nothing was written
				m.mode = NormalMode
				m.resetInputs()
				m.editor = nil

			case "tab":
				m.focusNextInput()

			case "shift+tab":
				m.focusPreviousInput()

			case "enter":
				switch m.activeInput {
				case 0:
					m.focusNextInput()
				case 1:
					consumed = false // Newline inside the content field
				case 2:
					m.submitForm() // Submit on enter from the last field
				}

			default:
				consumed = false
			}

			if !consumed {
				// Handle input updates
				switch m.activeInput {
				case 0:
					m.titleInput, cmd = m.titleInput.Update(msg)
					cmds = append(cmds, cmd)
				case 1:
					m.contentInput, cmd = m.contentInput.Update(msg)
					cmds = append(cmds, cmd)
				case 2:
					m.priorityInput, cmd = m.priorityInput.Update(msg)
					cmds = append(cmds, cmd)
				}
			}

		case SearchMode:
			switch msg.String() {
			case "esc":
				// Clear the search and leave
				m.mode = NormalMode
				m.searchInput.SetValue("")
				m.list.SetSearchText("")

			case "enter":
				// Keep the search and leave
				m.mode = NormalMode

			default:
				m.searchInput, cmd = m.searchInput.Update(msg)
				cmds = append(cmds, cmd)
				// Live search: every keystroke re-derives the query
				m.list.SetSearchText(m.searchInput.Value())
			}

		case FilterMode:
			switch msg.String() {
			case "esc", "enter":
				m.mode = NormalMode

			case "1", "2", "3", "4", "5":
				p, _ := strconv.Atoi(msg.String())
				m.list.TogglePriorityFilter(p)

			case "d":
				m.list.ToggleDoneFilter(true)

			case "u":
				m.list.ToggleDoneFilter(false)

			case "r":
				m.list.ResetFilters()
			}

		case DeleteConfirmMode:
			switch msg.String() {
			case "y", "Y":
				if m.deletingNote != nil {
					utils.Log("Deleting note %d", m.deletingNote.ID)
					if err := m.list.DeleteNote(*m.deletingNote); err != nil {
						m.err = err
					}
				}
				m.mode = NormalMode
				m.deletingNote = nil

			case "n", "N", "esc":
				m.mode = NormalMode
				m.deletingNote = nil
			}

		case HelpViewMode:
			switch msg.String() {
			case "esc", "ctrl+b":
				m.mode = NormalMode
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(msg.Width - 4)
		m.table.SetHeight(msg.Height - 8)
	}

	// Only update table in normal mode
	if m.mode == NormalMode {
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
