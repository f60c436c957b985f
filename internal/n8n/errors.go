package n8n

import (
	"errors"
	"fmt"
)

// APIError is the single error kind returned by Client. StatusCode is zero
// when the request never produced an HTTP response (transport failure,
// timeout, cancelled context).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("n8n API Error: %s", e.Message)
	}
	return fmt.Sprintf("n8n API Error (%d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError carrying HTTP 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
