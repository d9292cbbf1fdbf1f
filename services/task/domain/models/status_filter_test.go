package models

import "testing"

func TestParseStatusFilter(t *testing.T) {
	tests := []struct {
		input string
		want  StatusFilter
	}{
		{"all", FilterAll},
		{"completed", FilterCompleted},
		{"pending", FilterPending},
		{"", FilterAll},
		{"bogus", FilterAll},
		{"COMPLETED", FilterAll}, // filters are case-sensitive
	}

	for _, tt := range tests {
		t.Run("input="+tt.input, func(t *testing.T) {
			if got := ParseStatusFilter(tt.input); got != tt.want {
				t.Fatalf("ParseStatusFilter(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStatusFilter_Matches(t *testing.T) {
	if !FilterAll.Matches(true) || !FilterAll.Matches(false) {
		t.Fatal("FilterAll must match every task")
	}
	if !FilterCompleted.Matches(true) || FilterCompleted.Matches(false) {
		t.Fatal("FilterCompleted must match only completed tasks")
	}
	if FilterPending.Matches(true) || !FilterPending.Matches(false) {
		t.Fatal("FilterPending must match only pending tasks")
	}
}
