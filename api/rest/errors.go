package rest

import (
	"fmt"
	"net/http"
)

// Err is an error meant to be shown to API users as is. Any other error returned by a handler is reported as an
// internal error without its details.
type Err struct {
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *Err) Error() string {
	return e.Message
}

// NewErrf creates an API error with the given http status code.
func NewErrf(statusCode int, format string, args ...any) *Err {
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}
	return &Err{
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
	}
}
