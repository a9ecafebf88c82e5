package controller

import (
	"fmt"
	"strings"

	"tobedone/pkg/database"
	"tobedone/pkg/repository"
)

// titleOffset is where the derived-title scan for a space starts.
// Preserved literally from the original behavior.
const titleOffset = 12

// Editor holds a note draft until the user explicitly commits it.
// Nothing is written before Commit; abandoning the editor discards
// the draft.
type Editor struct {
	repo *repository.Repository

	// noteID is zero for the add variant
	noteID int64

	title    string
	content  string
	priority int
}

// NewAdd creates an editor for a fresh note
func NewAdd(repo *repository.Repository) *Editor {
	return &Editor{
		repo:     repo,
		priority: database.PriorityDefault,
	}
}

// NewEdit creates an editor seeded from an existing note. An id that
// does not resolve is a programmer error on the calling side, not a
// recoverable condition.
func NewEdit(repo *repository.Repository, id int64) (*Editor, error) {
	note, err := repo.Get(id)
	if err != nil {
		return nil, fmt.Errorf("loading note %d: %w", id, err)
	}

	return &Editor{
		repo:     repo,
		noteID:   note.ID,
		title:    note.Title,
		content:  note.Content,
		priority: note.Priority,
	}, nil
}

func (e *Editor) Title() string   { return e.title }
func (e *Editor) Content() string { return e.content }
func (e *Editor) Priority() int   { return e.priority }
func (e *Editor) IsEdit() bool    { return e.noteID != 0 }

func (e *Editor) SetTitle(title string)     { e.title = title }
func (e *Editor) SetContent(content string) { e.content = content }

// SetPriority clamps to the five selectable levels
func (e *Editor) SetPriority(priority int) {
	if priority < database.PriorityCritical {
		priority = database.PriorityCritical
	}
	if priority > database.PriorityTrivial {
		priority = database.PriorityTrivial
	}
	e.priority = priority
}

// CanCommit reports whether both fields are non-blank, which is when
// the UI offers a commit affordance on leaving the editor.
func (e *Editor) CanCommit() bool {
	return strings.TrimSpace(e.title) != "" && strings.TrimSpace(e.content) != ""
}

// Commit writes the draft. The add variant inserts a new note with
// both timestamps set to now; the edit variant re-fetches the latest
// stored version so fields not edited here (completion flag, creation
// time) are not clobbered, then overwrites title, content and
// priority and bumps the update timestamp.
func (e *Editor) Commit() error {
	title := e.title
	if title == "" {
		title = DeriveTitle(e.content)
	}
	title = strings.TrimSpace(title)
	content := strings.TrimSpace(e.content)
	now := Now()

	if e.noteID == 0 {
		_, err := e.repo.Add(database.Note{
			Title:        title,
			Content:      content,
			IsDone:       false,
			LastUpdated:  now,
			CreationTime: now,
			Priority:     e.priority,
		})
		return err
	}

	current, err := e.repo.Get(e.noteID)
	if err != nil {
		return fmt.Errorf("loading note %d: %w", e.noteID, err)
	}

	current.Title = title
	current.Content = content
	current.Priority = e.priority
	current.LastUpdated = now

	return e.repo.Update(current)
}

// DeriveTitle takes the prefix of content up to the first space at or
// after titleOffset. Without such a space the whole content becomes
// the title. The offset counts characters, not bytes, so multibyte
// content is not cut short.
func DeriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleOffset {
		return content
	}
	for i := titleOffset; i < len(runes); i++ {
		if runes[i] == ' ' {
			return string(runes[:i])
		}
	}
	return content
}
