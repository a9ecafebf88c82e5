package controller

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tobedone/pkg/database"
	"tobedone/pkg/prefs"
	"tobedone/pkg/repository"
)

func newTestList(t *testing.T) (*List, *repository.Repository, *prefs.Store) {
	t.Helper()

	repo := newTestRepo(t)
	store := prefs.NewStore(filepath.Join(t.TempDir(), "prefs.json"))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return NewList(ctx, repo, store), repo, store
}

func seedNotes(t *testing.T, repo *repository.Repository) {
	t.Helper()

	notes := []database.Note{
		{Title: "Buy milk", Content: "From the corner store", Priority: 3, CreationTime: 100, LastUpdated: 300},
		{Title: "File taxes", Content: "Before the deadline", Priority: 1, CreationTime: 200, LastUpdated: 200},
		{Title: "Water plants", Content: "Balcony and kitchen", Priority: 5, CreationTime: 300, LastUpdated: 100, IsDone: true},
	}
	for _, n := range notes {
		_, err := repo.Add(n)
		require.NoError(t, err)
	}
}

// waitFor drains updates until the predicate holds, skipping
// intermediate emissions from superseded subscriptions.
func waitFor(t *testing.T, l *List, pred func(Update) bool) Update {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case u := <-l.Updates():
			require.NoError(t, u.Err)
			if pred(u) {
				return u
			}
		case <-deadline:
			t.Fatal("timed out waiting for matching update")
			panic("unreachable")
		}
	}
}

func titles(notes []database.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}

func TestEmptyFiltersShowEverything(t *testing.T) {
	list, repo, _ := newTestList(t)
	seedNotes(t, repo)

	// Once the preference load settles on the default, the list is in
	// ascending priority order.
	u := waitFor(t, list, func(u Update) bool {
		return len(u.Notes) == 3 && u.Notes[0].Title == "File taxes"
	})
	assert.Equal(t, []string{"File taxes", "Buy milk", "Water plants"}, titles(u.Notes))
}

func TestSearchNarrowsTheList(t *testing.T) {
	list, repo, _ := newTestList(t)
	seedNotes(t, repo)
	waitFor(t, list, func(u Update) bool { return len(u.Notes) == 3 })

	list.SetSearchText("plants")
	u := waitFor(t, list, func(u Update) bool { return len(u.Notes) == 1 })
	assert.Equal(t, "Water plants", u.Notes[0].Title)

	// Content matches too
	list.SetSearchText("deadline")
	u = waitFor(t, list, func(u Update) bool {
		return len(u.Notes) == 1 && u.Notes[0].Title == "File taxes"
	})
	assert.Equal(t, "File taxes", u.Notes[0].Title)

	list.SetSearchText("")
	waitFor(t, list, func(u Update) bool { return len(u.Notes) == 3 })
}

func TestPriorityFilter(t *testing.T) {
	list, repo, _ := newTestList(t)
	seedNotes(t, repo)
	waitFor(t, list, func(u Update) bool { return len(u.Notes) == 3 })

	list.TogglePriorityFilter(1)
	u := waitFor(t, list, func(u Update) bool { return len(u.Notes) == 1 })
	assert.Equal(t, "File taxes", u.Notes[0].Title)

	list.TogglePriorityFilter(3)
	waitFor(t, list, func(u Update) bool { return len(u.Notes) == 2 })

	// Toggling a level off again widens back
	list.TogglePriorityFilter(1)
	u = waitFor(t, list, func(u Update) bool { return len(u.Notes) == 1 })
	assert.Equal(t, "Buy milk", u.Notes[0].Title)

	// Clearing the last level means "all", not "none"
	list.TogglePriorityFilter(3)
	waitFor(t, list, func(u Update) bool { return len(u.Notes) == 3 })
}

func TestDoneFilter(t *testing.T) {
	list, repo, _ := newTestList(t)
	seedNotes(t, repo)
	waitFor(t, list, func(u Update) bool { return len(u.Notes) == 3 })

	list.ToggleDoneFilter(true)
	u := waitFor(t, list, func(u Update) bool { return len(u.Notes) == 1 })
	assert.Equal(t, "Water plants", u.Notes[0].Title)

	list.ToggleDoneFilter(false)
	waitFor(t, list, func(u Update) bool { return len(u.Notes) == 3 })
}

func TestResetFilters(t *testing.T) {
	list, repo, _ := newTestList(t)
	seedNotes(t, repo)
	waitFor(t, list, func(u Update) bool { return len(u.Notes) == 3 })

	list.TogglePriorityFilter(1)
	list.ToggleDoneFilter(true)
	waitFor(t, list, func(u Update) bool { return len(u.Notes) == 0 })

	list.ResetFilters()
	waitFor(t, list, func(u Update) bool { return len(u.Notes) == 3 })

	st := list.State()
	assert.Empty(t, st.PriorityFilter)
	assert.Empty(t, st.DoneFilter)
}

func TestSortOptionPersistsAndReorders(t *testing.T) {
	list, repo, store := newTestList(t)
	seedNotes(t, repo)
	waitFor(t, list, func(u Update) bool { return len(u.Notes) == 3 })

	// Let the async preference load settle on the default first, so
	// every SetSortOption below is a real change that re-subscribes.
	require.Eventually(t, func() bool {
		return list.State().SortOption == database.SortByPriority
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, list.SetSortOption(database.SortByCreationTime))
	u := waitFor(t, list, func(u Update) bool {
		return len(u.Notes) == 3 && u.Notes[0].Title == "Water plants"
	})
	assert.Equal(t, []string{"Water plants", "File taxes", "Buy milk"}, titles(u.Notes))

	saved, err := store.SortOption()
	require.NoError(t, err)
	assert.Equal(t, database.SortByCreationTime, saved)

	require.NoError(t, list.SetSortOption(database.SortByPriority))
	u = waitFor(t, list, func(u Update) bool {
		return len(u.Notes) == 3 && u.Notes[0].Title == "File taxes"
	})
	assert.Equal(t, []string{"File taxes", "Buy milk", "Water plants"}, titles(u.Notes))

	saved, err = store.SortOption()
	require.NoError(t, err)
	assert.Equal(t, database.SortByPriority, saved)
}

func TestPersistedSortOptionAppliesAtStartup(t *testing.T) {
	repo := newTestRepo(t)
	seedNotes(t, repo)

	store := prefs.NewStore(filepath.Join(t.TempDir(), "prefs.json"))
	require.NoError(t, store.SaveSortOption(database.SortByPriority))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	list := NewList(ctx, repo, store)

	waitFor(t, list, func(u Update) bool {
		return len(u.Notes) == 3 && u.Notes[0].Title == "File taxes"
	})
}

func TestCycleSortOption(t *testing.T) {
	list, _, _ := newTestList(t)

	// Wait until the async preference load has settled on the default
	require.Eventually(t, func() bool {
		return list.State().SortOption == database.SortByPriority
	}, 2*time.Second, 10*time.Millisecond)

	next, err := list.CycleSortOption()
	require.NoError(t, err)
	assert.Equal(t, database.SortByCreationTime, next)

	next, err = list.CycleSortOption()
	require.NoError(t, err)
	assert.Equal(t, database.SortByUpdateTime, next)

	next, err = list.CycleSortOption()
	require.NoError(t, err)
	assert.Equal(t, database.SortByPriority, next)
}

func TestToggleNoteDoneFlips(t *testing.T) {
	list, repo, _ := newTestList(t)
	seedNotes(t, repo)
	u := waitFor(t, list, func(u Update) bool { return len(u.Notes) == 3 })

	var milk database.Note
	for _, n := range u.Notes {
		if n.Title == "Buy milk" {
			milk = n
		}
	}
	require.NotZero(t, milk.ID)

	require.NoError(t, list.ToggleNoteDone(milk))
	u = waitFor(t, list, func(u Update) bool {
		for _, n := range u.Notes {
			if n.ID == milk.ID {
				return n.IsDone
			}
		}
		return false
	})

	// Toggling back restores the original state
	milk.IsDone = true
	require.NoError(t, list.ToggleNoteDone(milk))
	waitFor(t, list, func(u Update) bool {
		for _, n := range u.Notes {
			if n.ID == milk.ID {
				return !n.IsDone
			}
		}
		return false
	})
}

func TestDeleteNoteRemovesFromList(t *testing.T) {
	list, repo, _ := newTestList(t)
	seedNotes(t, repo)
	u := waitFor(t, list, func(u Update) bool { return len(u.Notes) == 3 })

	require.NoError(t, list.DeleteNote(u.Notes[0]))
	waitFor(t, list, func(u Update) bool { return len(u.Notes) == 2 })
}

func TestRapidChangesSettleOnLastOne(t *testing.T) {
	list, repo, _ := newTestList(t)
	seedNotes(t, repo)
	waitFor(t, list, func(u Update) bool { return len(u.Notes) == 3 })

	// Fire a burst of changes without reading in between; only the
	// final subscription's result may stick.
	list.SetSearchText("milk")
	list.SetSearchText("taxes")
	list.SetSearchText("plants")

	waitFor(t, list, func(u Update) bool {
		return len(u.Notes) == 1 && u.Notes[0].Title == "Water plants"
	})

	require.Eventually(t, func() bool {
		st := list.State()
		return len(st.Notes) == 1 && st.Notes[0].Title == "Water plants"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStaleResultsNeverOvertakeFresh(t *testing.T) {
	list, repo, _ := newTestList(t)
	seedNotes(t, repo)
	waitFor(t, list, func(u Update) bool { return len(u.Notes) == 3 })

	for i := 0; i < 25; i++ {
		// Burst of changes; once the final subscription's result has
		// been seen, anything that still surfaces must come from that
		// same subscription, never a superseded one.
		list.SetSearchText("milk")
		list.SetSearchText("taxes")
		list.SetSearchText("plants")
		waitFor(t, list, func(u Update) bool {
			return len(u.Notes) == 1 && u.Notes[0].Title == "Water plants"
		})

		select {
		case late := <-list.Updates():
			require.NoError(t, late.Err)
			require.Len(t, late.Notes, 1)
			require.Equal(t, "Water plants", late.Notes[0].Title)
		case <-time.After(10 * time.Millisecond):
		}

		list.SetSearchText("")
		waitFor(t, list, func(u Update) bool { return len(u.Notes) == 3 })
	}
}

func TestToggleDetailExpandedPersists(t *testing.T) {
	list, _, store := newTestList(t)

	expanded, err := list.ToggleDetailExpanded()
	require.NoError(t, err)
	assert.True(t, expanded)

	saved, err := store.DetailExpanded()
	require.NoError(t, err)
	assert.True(t, saved)

	expanded, err = list.ToggleDetailExpanded()
	require.NoError(t, err)
	assert.False(t, expanded)
}
