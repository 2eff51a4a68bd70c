// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"strings"
)

// ServiceError means the completion request itself failed: transport error,
// timeout, authentication, rate limiting, or an empty reply.
type ServiceError struct {
	// Op is "problem" or "solution".
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("generating %s: service request failed: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// ParseError means the service answered but the reply is not a JSON object
// or lacks required fields.
type ParseError struct {
	Op string

	// Missing lists required keys that were absent or empty. Empty when the
	// reply was not valid JSON.
	Missing []string

	// Err is the JSON decoding error, if any.
	Err error

	// Raw is the reply text, truncated.
	Raw string
}

func (e *ParseError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("generating %s: response missing required fields: %s", e.Op, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("generating %s: response is not a JSON object: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
