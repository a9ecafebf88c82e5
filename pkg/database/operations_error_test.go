package database

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestInsertNote_DBError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO text_note`).
		WillReturnError(errors.New("disk full"))

	_, err := InsertNote(db, Note{Title: "n", Content: "c", Priority: 3})
	if err == nil || err.Error() != "disk full" {
		t.Fatalf("expected propagated error, got %v", err)
	}
}

func TestQueryNotes_DBError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT .* FROM text_note`).
		WillReturnError(errors.New("db down"))

	_, err := QueryNotes(db, "", PriorityLevels, []bool{true, false}, SortByPriority)
	if err == nil || err.Error() != "db down" {
		t.Fatalf("expected propagated error, got %v", err)
	}
}

func TestUpdateNote_DBError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE text_note`).
		WillReturnError(errors.New("locked"))

	err := UpdateNote(db, Note{ID: 1, Title: "n", Content: "c", Priority: 3})
	if err == nil || err.Error() != "locked" {
		t.Fatalf("expected propagated error, got %v", err)
	}
}
