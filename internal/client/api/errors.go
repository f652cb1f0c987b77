package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
)

var (
	// ErrUnavailable marks transport-level failures (connection refused,
	// timeouts) where no server response was received.
	ErrUnavailable = errors.New("server unavailable")
)

// Error is the structured failure returned by the API, decoded from the
// server's error envelope. Non-JSON failures are normalized into the same
// shape with ErrorType "http_error".
type Error struct {
	Detail     string         `json:"detail"`
	ErrorType  string         `json:"error_type"`
	StatusCode int            `json:"status_code"`
	Timestamp  string         `json:"timestamp"`
	RequestID  string         `json:"request_id"`
	Extra      map[string]any `json:"extra"`
}

func (e *Error) Error() string {
	if e.ErrorType != "" {
		return fmt.Sprintf("%s: %s (status %d)", e.ErrorType, e.Detail, e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Detail, e.StatusCode)
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   *Error `json:"error"`
}

func isJSONResponse(resp *http.Response) bool {
	ct, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return err == nil && ct == "application/json"
}

// decodeError turns a non-2xx response into an *Error. The body may carry
// the structured envelope; anything else degrades to a generic HTTP error.
func decodeError(resp *http.Response) error {
	if isJSONResponse(resp) {
		var envelope errorEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != nil {
			if envelope.Error.StatusCode == 0 {
				envelope.Error.StatusCode = resp.StatusCode
			}
			return envelope.Error
		}
	}
	return &Error{
		Detail:     fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		ErrorType:  "http_error",
		StatusCode: resp.StatusCode,
	}
}
