// Package prefs persists the two user settings, the sort option and
// the detail-expansion toggle, in a small viper-backed JSON file.
// Settings are exposed as one-shot reads and as live streams that
// re-deliver on every save. A missing or unreadable file substitutes
// the documented defaults; a malformed one is an error.
package prefs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"tobedone/pkg/database"
	"tobedone/pkg/utils"
)

// Preference keys
const (
	KeySortOption     = "sort_option"
	KeyDetailExpanded = "is_detail_expanded"
)

// Absent sort_option maps to ordinal 2, which is priority order.
const defaultSortOrdinal = 2

// Store reads and writes the preference file. Writes are
// last-write-wins, there is no versioning.
type Store struct {
	path string

	mu      sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// NewStore creates a Store for the given preference file path. The
// file is not touched until the first save.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		subs: make(map[int]chan struct{}),
	}
}

// SortOption returns the persisted sort option
func (s *Store) SortOption() (database.SortOption, error) {
	v, err := s.load()
	if err != nil {
		return database.SortByPriority, err
	}

	switch v.GetInt(KeySortOption) {
	case 0:
		return database.SortByCreationTime, nil
	case 1:
		return database.SortByUpdateTime, nil
	default:
		return database.SortByPriority, nil
	}
}

// DetailExpanded returns the persisted detail-expansion toggle
func (s *Store) DetailExpanded() (bool, error) {
	v, err := s.load()
	if err != nil {
		return false, err
	}
	return v.GetBool(KeyDetailExpanded), nil
}

// SaveSortOption persists a new sort option
func (s *Store) SaveSortOption(option database.SortOption) error {
	return s.save(KeySortOption, int(option))
}

// SaveDetailExpanded persists a new detail-expansion toggle
func (s *Store) SaveDetailExpanded(expanded bool) error {
	return s.save(KeyDetailExpanded, expanded)
}

// WatchSortOption returns a live stream of the sort option, seeded
// with the current value and re-delivered on every save.
func (s *Store) WatchSortOption(ctx context.Context) (<-chan database.SortOption, error) {
	current, err := s.SortOption()
	if err != nil {
		return nil, err
	}

	out := make(chan database.SortOption, 1)
	subID, changes := s.subscribe()

	go func() {
		defer close(out)
		defer s.unsubscribe(subID)

		value := current
		for {
			select {
			case out <- value:
			case <-ctx.Done():
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-changes:
				v, err := s.SortOption()
				if err != nil {
					utils.Log("WatchSortOption: %v", err)
					return
				}
				value = v
			}
		}
	}()

	return out, nil
}

// WatchDetailExpanded returns a live stream of the detail-expansion
// toggle, seeded with the current value.
func (s *Store) WatchDetailExpanded(ctx context.Context) (<-chan bool, error) {
	current, err := s.DetailExpanded()
	if err != nil {
		return nil, err
	}

	out := make(chan bool, 1)
	subID, changes := s.subscribe()

	go func() {
		defer close(out)
		defer s.unsubscribe(subID)

		value := current
		for {
			select {
			case out <- value:
			case <-ctx.Done():
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-changes:
				v, err := s.DetailExpanded()
				if err != nil {
					utils.Log("WatchDetailExpanded: %v", err)
					return
				}
				value = v
			}
		}
	}()

	return out, nil
}

// load reads the preference file into a fresh viper instance. A
// missing or unreadable file is recoverable and yields the defaults;
// any other failure (e.g. malformed JSON) is returned.
func (s *Store) load() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	v.SetDefault(KeySortOption, defaultSortOrdinal)
	v.SetDefault(KeyDetailExpanded, false)

	err := v.ReadInConfig()
	if err == nil {
		return v, nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || os.IsNotExist(err) || errors.Is(err, fs.ErrPermission) {
		utils.Log("Error reading preferences, using defaults: %v", err)
		return v, nil
	}

	return nil, err
}

func (s *Store) save(key string, value any) error {
	s.mu.Lock()

	v, err := s.load()
	if err != nil {
		// A corrupt file is overwritten rather than wedging every
		// future save
		utils.Log("Rewriting unreadable preference file: %v", err)
		v = viper.New()
		v.SetConfigFile(s.path)
		v.SetConfigType("json")
		v.SetDefault(KeySortOption, defaultSortOrdinal)
		v.SetDefault(KeyDetailExpanded, false)
	}
	v.Set(key, value)

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			s.mu.Unlock()
			return err
		}
	}

	if err := v.WriteConfigAs(s.path); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

func (s *Store) subscribe() (int, chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch
	return id, ch
}

func (s *Store) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

func (s *Store) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
