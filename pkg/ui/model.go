package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tobedone/pkg/config"
	"tobedone/pkg/controller"
	"tobedone/pkg/database"
	"tobedone/pkg/keymaps"
	"tobedone/pkg/repository"
)

// InputMode represents the current input mode
type InputMode int

const (
	NormalMode InputMode = iota
	AddMode
	EditMode
	DeleteConfirmMode
	SearchMode   // Mode for live-searching notes
	FilterMode   // Mode for toggling priority/done filters
	HelpViewMode // Mode for displaying help
)

// notesMsg carries a fresh result from the list controller's live query
type notesMsg controller.Update

// Model represents the application state
type Model struct {
	table         table.Model
	notes         []database.Note
	list          *controller.List
	repo          *repository.Repository
	width, height int
	err           error

	// Configuration
	config config.Config
	styles config.Styles
	keyMap keymaps.KeyMap

	// Form state
	mode          InputMode
	titleInput    textinput.Model
	contentInput  textarea.Model
	priorityInput textinput.Model
	searchInput   textinput.Model
	activeInput   int

	// Edit/delete state
	editor       *controller.Editor
	deletingNote *database.Note
}

// NewModel creates a new UI model with the provided configuration
func NewModel(repo *repository.Repository, list *controller.List, cfg config.Config, styles config.Styles) Model {
	// Single borderless column, the header stays invisible
	columns := []table.Column{
		{Title: "", Width: 60},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderBottom(false).
		Bold(false).
		Foreground(lipgloss.NoColor{})

	s.Selected = s.Selected.
		Foreground(lipgloss.Color(styles.SelectedTextColor)).
		Background(lipgloss.Color(styles.SelectedBgColor)).
		Bold(true)
	t.SetStyles(s)

	// Initialize form inputs
	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.Focus()
	titleInput.Width = 40

	contentInput := textarea.New()
	contentInput.Placeholder = "Content"
	contentInput.SetWidth(40)
	contentInput.SetHeight(5)

	priorityInput := textinput.New()
	priorityInput.Placeholder = "Priority (1 = critical .. 5 = trivial)"
	priorityInput.Width = 40
	priorityInput.CharLimit = 1

	searchInput := textinput.New()
	searchInput.Placeholder = "Search title and content"
	searchInput.Focus()
	searchInput.Width = 40

	m := Model{
		table:         t,
		list:          list,
		repo:          repo,
		config:        cfg,
		styles:        styles,
		keyMap:        keymaps.BuildKeyMap(cfg.KeyMap),
		mode:          NormalMode,
		titleInput:    titleInput,
		contentInput:  contentInput,
		priorityInput: priorityInput,
		searchInput:   searchInput,
		activeInput:   0,
	}

	return m
}

// Init starts listening to the list controller (required by Bubble Tea)
func (m Model) Init() tea.Cmd {
	return waitForNotes(m.list)
}

// waitForNotes blocks on the controller's update channel and feeds the
// result back into the program loop.
func waitForNotes(list *controller.List) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-list.Updates()
		if !ok {
			return nil
		}
		return notesMsg(update)
	}
}

// resetInputs clears all form inputs
func (m *Model) resetInputs() {
	m.titleInput.Reset()
	m.contentInput.Reset()
	m.priorityInput.Reset()

	m.activeInput = 0
	m.titleInput.Focus()
	m.contentInput.Blur()
	m.priorityInput.Blur()
}
