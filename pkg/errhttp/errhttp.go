// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/taskdeck/pkg/httpx"
	taskdomain "github.com/ghuser/taskdeck/services/task/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors (storage
// failures included — handlers never branch on driver details).
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, taskdomain.ErrTaskNotFound):
		return http.StatusNotFound // 404 — also covers foreign-owned tasks
	case errors.Is(err, taskdomain.ErrConcurrentUpdate):
		return http.StatusConflict // 409 — conflict survived the existence re-check
	case errors.Is(err, taskdomain.ErrInvalidTask):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
