package jira

import (
	"errors"
	"fmt"
)

// ErrTimeout marks a request that exceeded the client's fixed timeout.
var ErrTimeout = errors.New("jira: request timed out")

// APIError is any non-2xx response from the tracker. The run stops at
// the first one; there is no retry and no partial output.
type APIError struct {
	Status int
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d calling %s: %s", e.Status, e.Path, e.Body)
}

// TimestampError is a worklog "started" value matching neither accepted
// layout. Fatal: an unparsed instant would corrupt window inclusion.
type TimestampError struct {
	Value string
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("cannot parse worklog timestamp: %q", e.Value)
}
