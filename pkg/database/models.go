package database

// Note represents a single text note
type Note struct {
	ID           int64  `db:"id" json:"id"`
	Title        string `db:"title" json:"title"`
	Content      string `db:"content" json:"content"`
	IsDone       bool   `db:"is_done" json:"is_done"`
	LastUpdated  int64  `db:"last_updated" json:"last_updated"`
	CreationTime int64  `db:"creation_time" json:"creation_time"`
	Priority     int    `db:"priority" json:"priority"`
}

// Priority levels. The smaller the number, the more important the note,
// minimum is 1.
const (
	PriorityCritical      = 1
	PriorityNeedAttention = 2
	PriorityDefault       = 3
	PriorityOptional      = 4
	PriorityTrivial       = 5
)

// PriorityLevels lists all selectable priorities, most urgent first.
var PriorityLevels = []int{
	PriorityCritical,
	PriorityNeedAttention,
	PriorityDefault,
	PriorityOptional,
	PriorityTrivial,
}

// PriorityLabel returns the display name for a priority level
func PriorityLabel(priority int) string {
	switch priority {
	case PriorityCritical:
		return "critical"
	case PriorityNeedAttention:
		return "needs attention"
	case PriorityDefault:
		return "default"
	case PriorityOptional:
		return "optional"
	case PriorityTrivial:
		return "trivial"
	}
	return "unknown"
}

// SortOption represents the current note ordering
type SortOption int

const (
	SortByCreationTime SortOption = iota // Newest creation first
	SortByUpdateTime                     // Most recently updated first
	SortByPriority                       // Most urgent first
)

// String returns the display name for a sort option
func (s SortOption) String() string {
	switch s {
	case SortByCreationTime:
		return "creation time"
	case SortByUpdateTime:
		return "update time"
	case SortByPriority:
		return "priority"
	}
	return "unknown"
}
