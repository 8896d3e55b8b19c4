package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
)

var (
	// ErrUnauthorized matches any 401 or 403 from the backend.
	ErrUnauthorized = errors.New("backend rejected the credential")
	// ErrNetwork wraps transport failures: refused connections, timeouts, DNS.
	ErrNetwork = errors.New("claims backend unreachable")
)

// APIError is a non-2xx backend response.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized, models.ErrUnauthenticated:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case models.ErrNotFound:
		return e.Status == http.StatusNotFound
	case models.ErrBadRequest:
		return e.Status == http.StatusBadRequest
	}
	return false
}

// Message returns the backend's message for err when it carries one.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
