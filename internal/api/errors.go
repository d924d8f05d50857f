package api

import (
	"errors"
	"fmt"
)

// RequestError is returned when a request fails in transport or the server
// answers with a non-2xx status. The body is not parsed in that case.
type RequestError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: server returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when a 2xx body does not decode or
// does not carry the fields a record requires.
type MalformedResponseError struct {
	Op  string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// IsRequestFailed reports whether err came from a failed or unusable request
func IsRequestFailed(err error) bool {
	var reqErr *RequestError
	var malformed *MalformedResponseError
	return errors.As(err, &reqErr) || errors.As(err, &malformed)
}
