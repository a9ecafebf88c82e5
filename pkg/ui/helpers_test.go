package ui

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tobedone/pkg/config"
	"tobedone/pkg/controller"
	"tobedone/pkg/database"
	"tobedone/pkg/repository"
)

func newTestModel(t *testing.T) (Model, *sql.DB, *repository.Repository) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(context.Background(), db))

	repo := repository.New(db)
	return NewModel(repo, nil, config.Config{}, config.Styles{}), db, repo
}

func countNotes(t *testing.T, db *sql.DB) int {
	t.Helper()

	notes, err := database.QueryNotes(db, "", database.PriorityLevels, []bool{true, false}, database.SortByPriority)
	require.NoError(t, err)
	return len(notes)
}

func TestSubmitFormRejectsBlankDraft(t *testing.T) {
	m, db, repo := newTestModel(t)
	m.mode = AddMode
	m.editor = controller.NewAdd(repo)

	m.submitForm()

	assert.Equal(t, AddMode, m.mode, "form should stay open")
	assert.NotNil(t, m.editor)
	assert.Zero(t, countNotes(t, db), "blank draft must not be committed")
}

func TestSubmitFormRejectsBlankContent(t *testing.T) {
	m, db, repo := newTestModel(t)
	m.mode = AddMode
	m.editor = controller.NewAdd(repo)
	m.titleInput.SetValue("Only a title")
	m.contentInput.SetValue("   ")

	m.submitForm()

	assert.Equal(t, AddMode, m.mode)
	assert.Zero(t, countNotes(t, db))
}

func TestSubmitFormCommitsCompleteDraft(t *testing.T) {
	m, db, repo := newTestModel(t)
	m.mode = AddMode
	m.editor = controller.NewAdd(repo)
	m.titleInput.SetValue("Groceries")
	m.contentInput.SetValue("Milk and eggs")
	m.priorityInput.SetValue("2")

	m.submitForm()

	assert.Equal(t, NormalMode, m.mode)
	assert.Nil(t, m.editor)
	require.Equal(t, 1, countNotes(t, db))
}

func TestCanSubmitFormTracksInputs(t *testing.T) {
	m, _, _ := newTestModel(t)
	assert.False(t, m.canSubmitForm())

	m.titleInput.SetValue("t")
	assert.False(t, m.canSubmitForm())

	m.contentInput.SetValue("c")
	assert.True(t, m.canSubmitForm())
}
