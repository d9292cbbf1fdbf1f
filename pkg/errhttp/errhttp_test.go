package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	taskdomain "github.com/ghuser/taskdeck/services/task/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrTaskNotFound", taskdomain.ErrTaskNotFound, http.StatusNotFound},
		{"ErrConcurrentUpdate", taskdomain.ErrConcurrentUpdate, http.StatusConflict},
		{"ErrInvalidTask", taskdomain.ErrInvalidTask, http.StatusUnprocessableEntity},
		{"wrapped ErrTaskNotFound", fmt.Errorf("get task: %w", taskdomain.ErrTaskNotFound), http.StatusNotFound},
		{"wrapped ErrInvalidTask", fmt.Errorf("%w: title too short", taskdomain.ErrInvalidTask), http.StatusUnprocessableEntity},
		{"wrapped ErrConcurrentUpdate", fmt.Errorf("update task: %w", taskdomain.ErrConcurrentUpdate), http.StatusConflict},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, taskdomain.ErrTaskNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatal("response body missing 'error' key")
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, taskdomain.ErrTaskNotFound)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
