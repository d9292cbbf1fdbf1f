package models

import (
	"fmt"
	"unicode/utf8"
)

// TaskTitle is a value object representing a valid task title.
// Encapsulates validation rules: 3 to 100 characters.
type TaskTitle string

const (
	minTaskTitleLength = 3
	maxTaskTitleLength = 100
)

// NewTaskTitle constructs a valid TaskTitle or returns an error if constraints
// are violated. Bounds count characters, not bytes, matching the validator
// tags and the char_length CHECK on the column.
func NewTaskTitle(s string) (TaskTitle, error) {
	length := utf8.RuneCountInString(s)
	if length < minTaskTitleLength {
		return "", fmt.Errorf("task title must be at least %d characters", minTaskTitleLength)
	}
	if length > maxTaskTitleLength {
		return "", fmt.Errorf("task title must not exceed %d characters", maxTaskTitleLength)
	}
	return TaskTitle(s), nil
}

// String returns the underlying string value.
func (t TaskTitle) String() string {
	return string(t)
}
