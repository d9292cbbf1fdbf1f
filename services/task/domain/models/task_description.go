package models

import (
	"fmt"
	"unicode/utf8"
)

// TaskDescription is a value object for the optional task description.
// Empty is valid; non-empty values are capped at 500 characters.
type TaskDescription string

const maxTaskDescriptionLength = 500

// NewTaskDescription constructs a valid TaskDescription or returns an error
// if the character cap is exceeded.
func NewTaskDescription(s string) (TaskDescription, error) {
	if utf8.RuneCountInString(s) > maxTaskDescriptionLength {
		return "", fmt.Errorf("task description must not exceed %d characters", maxTaskDescriptionLength)
	}
	return TaskDescription(s), nil
}

// String returns the underlying string value.
func (d TaskDescription) String() string {
	return string(d)
}
