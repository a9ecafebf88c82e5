package database

import (
	"database/sql"
	"strings"

	"tobedone/pkg/utils"
)

// InsertNote inserts a new note and returns its assigned id
func InsertNote(db *sql.DB, note Note) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO text_note (title, content, is_done, last_updated, creation_time, priority)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		note.Title,
		note.Content,
		note.IsDone,
		note.LastUpdated,
		note.CreationTime,
		note.Priority,
	)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	utils.Log("Inserted note %d", id)
	return id, nil
}

// UpdateNote overwrites an existing note by id
func UpdateNote(db *sql.DB, note Note) error {
	_, err := db.Exec(
		`UPDATE text_note SET title = ?, content = ?, is_done = ?, last_updated = ?, creation_time = ?, priority = ?
		 WHERE id = ?`,
		note.Title,
		note.Content,
		note.IsDone,
		note.LastUpdated,
		note.CreationTime,
		note.Priority,
		note.ID,
	)
	utils.Log("Updated note %d", note.ID)
	return err
}

// UpdateNoteStatus updates only the completion flag of a note. The
// update timestamp is deliberately left alone: marking a note done is
// not an edit and must not reorder the update-time sort.
func UpdateNoteStatus(db *sql.DB, id int64, isDone bool) error {
	_, err := db.Exec(
		"UPDATE text_note SET is_done = ? WHERE id = ?",
		isDone, id,
	)
	return err
}

// DeleteNote removes a note from the database
func DeleteNote(db *sql.DB, id int64) error {
	_, err := db.Exec("DELETE FROM text_note WHERE id = ?", id)
	return err
}

// GetNote fetches a single note by id. Returns sql.ErrNoRows when the
// id does not resolve.
func GetNote(db *sql.DB, id int64) (Note, error) {
	row := db.QueryRow(
		`SELECT id, title, content, is_done, last_updated, creation_time, priority
		 FROM text_note WHERE id = ?`, id)

	var note Note
	err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.IsDone,
		&note.LastUpdated,
		&note.CreationTime,
		&note.Priority,
	)
	return note, err
}

// QueryNotes retrieves notes matching the search text and filter sets,
// ordered by the given sort option.
//
// A note matches when its title or content contains searchText
// (case-insensitive) and its priority and completion flag are members
// of the respective filter sets. An empty filter set matches nothing;
// callers that mean "all" must pass the full domain, the list
// controller expands empty selections before calling.
func QueryNotes(db *sql.DB, searchText string, priorities []int, done []bool, sort SortOption) ([]Note, error) {
	query := `
		SELECT id, title, content, is_done, last_updated, creation_time, priority
		FROM text_note
		WHERE (title LIKE '%' || ? || '%' OR content LIKE '%' || ? || '%')
	`
	args := []any{searchText, searchText}

	query += " AND priority IN (" + placeholders(len(priorities)) + ")"
	for _, p := range priorities {
		args = append(args, p)
	}

	query += " AND is_done IN (" + placeholders(len(done)) + ")"
	for _, d := range done {
		args = append(args, d)
	}

	switch sort {
	case SortByPriority:
		query += " ORDER BY priority ASC, id ASC"
	case SortByUpdateTime:
		query += " ORDER BY last_updated DESC, id ASC"
	case SortByCreationTime:
		query += " ORDER BY creation_time DESC, id ASC"
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var note Note
		if err := rows.Scan(
			&note.ID,
			&note.Title,
			&note.Content,
			&note.IsDone,
			&note.LastUpdated,
			&note.CreationTime,
			&note.Priority,
		); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	utils.Log("Loaded %d notes", len(notes))
	return notes, nil
}

// placeholders returns n comma-separated "?" marks. Zero placeholders
// yield "NULL", which IN() never matches.
func placeholders(n int) string {
	if n == 0 {
		return "NULL"
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
