package models

// StatusFilter is a view-time predicate over the completion flag,
// not a stored property.
type StatusFilter string

const (
	// FilterAll selects every task regardless of completion.
	FilterAll StatusFilter = "all"
	// FilterCompleted selects tasks with IsCompleted == true.
	FilterCompleted StatusFilter = "completed"
	// FilterPending selects tasks with IsCompleted == false.
	FilterPending StatusFilter = "pending"
)

// ParseStatusFilter maps a raw query value to a StatusFilter.
// Unrecognized values (including empty) behave as FilterAll.
func ParseStatusFilter(s string) StatusFilter {
	switch StatusFilter(s) {
	case FilterCompleted:
		return FilterCompleted
	case FilterPending:
		return FilterPending
	default:
		return FilterAll
	}
}

// Matches reports whether a task with the given completion flag passes the filter.
func (f StatusFilter) Matches(isCompleted bool) bool {
	switch f {
	case FilterCompleted:
		return isCompleted
	case FilterPending:
		return !isCompleted
	default:
		return true
	}
}
