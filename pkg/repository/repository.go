// Package repository exposes the note store as a set of plain write
// operations plus live queries: channels that re-deliver an updated
// result whenever any write goes through the repository.
package repository

import (
	"context"
	"database/sql"
	"sync"

	"tobedone/pkg/database"
	"tobedone/pkg/utils"
)

// Repository wraps the note table and fans out change notifications to
// live query subscribers. All writes to the table must go through it,
// otherwise watchers will not observe them.
type Repository struct {
	db *sql.DB

	mu      sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// New creates a Repository on top of an open database
func New(db *sql.DB) *Repository {
	return &Repository{
		db:   db,
		subs: make(map[int]chan struct{}),
	}
}

// Add inserts a new note and returns it with its assigned id
func (r *Repository) Add(note database.Note) (database.Note, error) {
	id, err := database.InsertNote(r.db, note)
	if err != nil {
		return database.Note{}, err
	}
	note.ID = id
	r.notify()
	return note, nil
}

// Update overwrites an existing note
func (r *Repository) Update(note database.Note) error {
	if err := database.UpdateNote(r.db, note); err != nil {
		return err
	}
	r.notify()
	return nil
}

// SetDone flips only the completion flag of a note
func (r *Repository) SetDone(id int64, isDone bool) error {
	if err := database.UpdateNoteStatus(r.db, id, isDone); err != nil {
		return err
	}
	r.notify()
	return nil
}

// Delete removes a note
func (r *Repository) Delete(id int64) error {
	if err := database.DeleteNote(r.db, id); err != nil {
		return err
	}
	r.notify()
	return nil
}

// Get fetches a single note by id. Returns sql.ErrNoRows when the id
// does not resolve.
func (r *Repository) Get(id int64) (database.Note, error) {
	return database.GetNote(r.db, id)
}

// Touch re-emits all live queries without changing any data. Useful
// when the table was modified behind the repository's back.
func (r *Repository) Touch() {
	r.notify()
}

// WatchNote returns a live stream of a single note. The current state
// is delivered first; every subsequent write re-delivers the note.
// Once the note is deleted the channel stays silent until the context
// is cancelled. An id that does not resolve at subscription time is an
// error.
func (r *Repository) WatchNote(ctx context.Context, id int64) (<-chan database.Note, error) {
	note, err := database.GetNote(r.db, id)
	if err != nil {
		return nil, err
	}

	out := make(chan database.Note, 1)
	subID, changes := r.subscribe()

	go func() {
		defer close(out)
		defer r.unsubscribe(subID)

		send := func(n database.Note) bool {
			select {
			case out <- n:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send(note) {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
				n, err := database.GetNote(r.db, id)
				if err == sql.ErrNoRows {
					continue
				}
				if err != nil {
					utils.Log("WatchNote %d: %v", id, err)
					return
				}
				if !send(n) {
					return
				}
			}
		}
	}()

	return out, nil
}

// NotesSortedByPriority returns a live note list ordered by ascending
// priority. Empty filter sets match nothing; callers meaning "all"
// expand them before calling.
func (r *Repository) NotesSortedByPriority(ctx context.Context, searchText string, priorities []int, done []bool) (<-chan []database.Note, error) {
	return r.watchNotes(ctx, searchText, priorities, done, database.SortByPriority)
}

// NotesSortedByUpdateTime returns a live note list, most recently
// updated first.
func (r *Repository) NotesSortedByUpdateTime(ctx context.Context, searchText string, priorities []int, done []bool) (<-chan []database.Note, error) {
	return r.watchNotes(ctx, searchText, priorities, done, database.SortByUpdateTime)
}

// NotesSortedByCreationTime returns a live note list, most recently
// created first.
func (r *Repository) NotesSortedByCreationTime(ctx context.Context, searchText string, priorities []int, done []bool) (<-chan []database.Note, error) {
	return r.watchNotes(ctx, searchText, priorities, done, database.SortByCreationTime)
}

func (r *Repository) watchNotes(ctx context.Context, searchText string, priorities []int, done []bool, sort database.SortOption) (<-chan []database.Note, error) {
	notes, err := database.QueryNotes(r.db, searchText, priorities, done, sort)
	if err != nil {
		return nil, err
	}

	out := make(chan []database.Note, 1)
	subID, changes := r.subscribe()

	go func() {
		defer close(out)
		defer r.unsubscribe(subID)

		push(ctx, out, notes)

		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
				notes, err := database.QueryNotes(r.db, searchText, priorities, done, sort)
				if err != nil {
					utils.Log("watchNotes: %v", err)
					return
				}
				if !push(ctx, out, notes) {
					return
				}
			}
		}
	}()

	return out, nil
}

// push delivers the latest result, replacing a buffered one the
// receiver has not picked up yet. Slow receivers only ever see the
// most recent list.
func push(ctx context.Context, out chan []database.Note, notes []database.Note) bool {
	for {
		select {
		case out <- notes:
			return true
		case <-ctx.Done():
			return false
		default:
			select {
			case <-out:
			default:
			}
		}
	}
}

func (r *Repository) subscribe() (int, chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSub
	r.nextSub++
	ch := make(chan struct{}, 1)
	r.subs[id] = ch
	return id, ch
}

func (r *Repository) unsubscribe(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, id)
}

// notify pings every subscriber. Signals coalesce: a subscriber that
// has not consumed the previous ping gets no additional one, but will
// re-query anyway.
func (r *Repository) notify() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ch := range r.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
