// Package controller holds the screen state machines: the list
// controller driving the searchable, filterable, sortable note list,
// and the editor backing the add/edit forms. Controllers are UI
// agnostic; the TUI consumes their update channels.
package controller

import (
	"context"
	"sync"
	"time"

	"tobedone/pkg/database"
	"tobedone/pkg/prefs"
	"tobedone/pkg/repository"
	"tobedone/pkg/utils"
)

// Update is one emission of the live note list, or the error that
// ended it.
type Update struct {
	Notes []database.Note
	Err   error
}

// ListState is a snapshot of the list controller's state
type ListState struct {
	SearchText     string
	PriorityFilter map[int]bool
	DoneFilter     map[bool]bool
	SortOption     database.SortOption
	DetailExpanded bool
	Notes          []database.Note
}

// List recomputes the live filtered and sorted note list whenever the
// search text, a filter, or the sort option changes. Each change
// cancels the previous repository subscription and starts exactly one
// new one; emissions from superseded subscriptions are discarded, so
// the last subscription started always wins.
type List struct {
	repo  *repository.Repository
	prefs *prefs.Store

	ctx     context.Context
	updates chan Update

	mu             sync.Mutex
	searchText     string
	priorityFilter map[int]bool
	doneFilter     map[bool]bool
	sortOption     database.SortOption
	detailExpanded bool
	notes          []database.Note
	generation     int
	cancel         context.CancelFunc
}

// NewList creates the list controller and starts its first
// subscription. Until the preference store has been read, the sort
// option is update time and details are collapsed; the persisted
// values are applied asynchronously once loaded. The controller lives
// until ctx is cancelled.
func NewList(ctx context.Context, repo *repository.Repository, prefStore *prefs.Store) *List {
	l := &List{
		repo:           repo,
		prefs:          prefStore,
		ctx:            ctx,
		updates:        make(chan Update, 1),
		priorityFilter: make(map[int]bool),
		doneFilter:     make(map[bool]bool),
		sortOption:     database.SortByUpdateTime,
	}

	l.mu.Lock()
	l.resubscribeLocked()
	l.mu.Unlock()

	go l.loadPreferences()

	return l
}

// Updates returns the channel on which fresh note lists arrive. Only
// the most recent result is retained for a slow receiver.
func (l *List) Updates() <-chan Update {
	return l.updates
}

// State returns a snapshot of the current controller state
func (l *List) State() ListState {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := ListState{
		SearchText:     l.searchText,
		PriorityFilter: make(map[int]bool, len(l.priorityFilter)),
		DoneFilter:     make(map[bool]bool, len(l.doneFilter)),
		SortOption:     l.sortOption,
		DetailExpanded: l.detailExpanded,
		Notes:          l.notes,
	}
	for p := range l.priorityFilter {
		st.PriorityFilter[p] = true
	}
	for d := range l.doneFilter {
		st.DoneFilter[d] = true
	}
	return st
}

// SetSearchText replaces the search text and re-subscribes
func (l *List) SetSearchText(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.searchText == text {
		return
	}
	l.searchText = text
	l.resubscribeLocked()
}

// TogglePriorityFilter adds or removes a priority level from the
// filter. An empty filter means "all".
func (l *List) TogglePriorityFilter(priority int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.priorityFilter[priority] {
		delete(l.priorityFilter, priority)
	} else {
		l.priorityFilter[priority] = true
	}
	l.resubscribeLocked()
}

// ToggleDoneFilter adds or removes a completion value from the filter.
// An empty filter means "all".
func (l *List) ToggleDoneFilter(isDone bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.doneFilter[isDone] {
		delete(l.doneFilter, isDone)
	} else {
		l.doneFilter[isDone] = true
	}
	l.resubscribeLocked()
}

// ResetFilters clears both filter sets, showing every note again
func (l *List) ResetFilters() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.priorityFilter) == 0 && len(l.doneFilter) == 0 {
		return
	}
	l.priorityFilter = make(map[int]bool)
	l.doneFilter = make(map[bool]bool)
	l.resubscribeLocked()
}

// SetSortOption switches the ordering and persists the choice
func (l *List) SetSortOption(option database.SortOption) error {
	l.mu.Lock()
	if l.sortOption != option {
		l.sortOption = option
		l.resubscribeLocked()
	}
	l.mu.Unlock()

	return l.prefs.SaveSortOption(option)
}

// CycleSortOption advances to the next ordering and persists it
func (l *List) CycleSortOption() (database.SortOption, error) {
	l.mu.Lock()
	next := (l.sortOption + 1) % 3
	l.mu.Unlock()

	return next, l.SetSortOption(next)
}

// ToggleDetailExpanded flips the detail-expansion toggle and persists
// it, returning the new value.
func (l *List) ToggleDetailExpanded() (bool, error) {
	l.mu.Lock()
	l.detailExpanded = !l.detailExpanded
	expanded := l.detailExpanded
	l.mu.Unlock()

	return expanded, l.prefs.SaveDetailExpanded(expanded)
}

// ToggleNoteDone flips a note's completion flag. The visible list
// updates through the live query, not by local mutation.
func (l *List) ToggleNoteDone(note database.Note) error {
	return l.repo.SetDone(note.ID, !note.IsDone)
}

// DeleteNote removes a note. The visible list updates through the
// live query.
func (l *List) DeleteNote(note database.Note) error {
	return l.repo.Delete(note.ID)
}

// loadPreferences applies persisted settings once at start-up
func (l *List) loadPreferences() {
	if option, err := l.prefs.SortOption(); err != nil {
		utils.Log("Loading sort option: %v", err)
	} else {
		l.mu.Lock()
		if l.sortOption != option {
			l.sortOption = option
			l.resubscribeLocked()
		}
		l.mu.Unlock()
	}

	if expanded, err := l.prefs.DetailExpanded(); err != nil {
		utils.Log("Loading detail expansion: %v", err)
	} else {
		l.mu.Lock()
		l.detailExpanded = expanded
		l.mu.Unlock()
	}
}

// resubscribeLocked cancels the in-flight subscription and starts a
// new one from the current state. Callers must hold l.mu. The empty
// filter sets are expanded to the full domain here; the repository
// never special-cases emptiness.
func (l *List) resubscribeLocked() {
	l.generation++
	gen := l.generation

	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(l.ctx)
	l.cancel = cancel

	searchText := l.searchText
	priorities := effectivePriorities(l.priorityFilter)
	done := effectiveDone(l.doneFilter)
	sort := l.sortOption

	go func() {
		var (
			ch  <-chan []database.Note
			err error
		)
		switch sort {
		case database.SortByCreationTime:
			ch, err = l.repo.NotesSortedByCreationTime(ctx, searchText, priorities, done)
		case database.SortByUpdateTime:
			ch, err = l.repo.NotesSortedByUpdateTime(ctx, searchText, priorities, done)
		case database.SortByPriority:
			ch, err = l.repo.NotesSortedByPriority(ctx, searchText, priorities, done)
		}
		if err != nil {
			l.deliver(gen, Update{Err: err})
			return
		}

		for notes := range ch {
			l.deliver(gen, Update{Notes: notes})
		}
	}()
}

// deliver forwards a result to the UI unless a newer subscription has
// started since. The generation check and the enqueue hold the same
// lock; a superseded result can never replace a fresh one already
// sitting in the channel.
func (l *List) deliver(gen int, u Update) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.generation {
		return
	}
	if u.Err == nil {
		l.notes = u.Notes
	}

	for {
		select {
		case l.updates <- u:
			return
		default:
		}
		// Drop the buffered result; while the lock is held it can only
		// be ours or older.
		select {
		case <-l.updates:
		default:
		}
	}
}

// effectivePriorities expands an empty selection to all five levels
func effectivePriorities(filter map[int]bool) []int {
	if len(filter) == 0 {
		return append([]int(nil), database.PriorityLevels...)
	}

	var priorities []int
	for _, p := range database.PriorityLevels {
		if filter[p] {
			priorities = append(priorities, p)
		}
	}
	return priorities
}

// effectiveDone expands an empty selection to both completion values
func effectiveDone(filter map[bool]bool) []bool {
	if len(filter) == 0 {
		return []bool{true, false}
	}

	var done []bool
	for _, d := range []bool{false, true} {
		if filter[d] {
			done = append(done, d)
		}
	}
	return done
}

// Now returns the current local time as epoch seconds. A variable so
// tests can pin timestamps.
var Now = func() int64 {
	return time.Now().Unix()
}
