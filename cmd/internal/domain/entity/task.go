package entity

import "strings"

type TaskStatus string

const (
	StatusPending TaskStatus = "pending"
	StatusPartial TaskStatus = "partial"
	StatusDone    TaskStatus = "done"
)

// Statuses lists every status in its sort order.
var Statuses = []TaskStatus{StatusPending, StatusPartial, StatusDone}

func (s TaskStatus) Valid() bool {
	for _, status := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

const (
	MinPriority = 0
	MaxPriority = 9
)

type Task struct {
	ID           int        `gorm:"primaryKey"`
	Title        string     `gorm:"size:30;not null"`
	Description  string     `gorm:"size:250;not null"`
	Status       TaskStatus `gorm:"size:10;not null;default:pending"`
	TimeEstimate *int       // minutes, nil when unknown
	Priority     int        `gorm:"not null;default:0"`
	UserID       int        `gorm:"not null;index"` // References: users(id)
	CreatedAt    int64      `gorm:"autoCreateTime:milli"`
	UpdatedAt    int64      `gorm:"autoUpdateTime:milli"`

	// Relations
	Freetimes []Freetime `gorm:"many2many:blocks;constraint:OnDelete:CASCADE"`
}

// FreetimeIDs returns the ids of the loaded Freetimes relation.
func (t *Task) FreetimeIDs() []int {
	ids := make([]int, len(t.Freetimes))
	for i, f := range t.Freetimes {
		ids[i] = f.ID
	}
	return ids
}

// TaskSort selects one of the task list orderings.
type TaskSort string

const (
	// SortStatus orders by status (pending, partial, done), then priority desc.
	SortStatus TaskSort = "status"
	// SortPriority orders by priority desc, then time estimate desc with unknown estimates last.
	SortPriority TaskSort = "priority"
	// SortEstimate orders by time estimate desc with unknown estimates last, then priority desc.
	SortEstimate TaskSort = "estimate"
)

// ParseTaskSort maps a user supplied key to a TaskSort. Unknown or empty
// keys fall back to SortEstimate.
func ParseTaskSort(raw string) TaskSort {
	switch TaskSort(strings.ToLower(strings.TrimSpace(raw))) {
	case SortStatus:
		return SortStatus
	case SortPriority:
		return SortPriority
	default:
		return SortEstimate
	}
}
