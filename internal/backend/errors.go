// Package backend defines the failure taxonomy and the common wire payload
// shared by all analysis backends.
package backend

import "errors"

var (
	// ErrBackendUnavailable means the backend is not configured or not
	// initialized. Never fatal: the orchestrator falls through.
	ErrBackendUnavailable = errors.New("analysis backend unavailable")
	// ErrBackendFailed covers transport failures: network errors, non-2xx
	// responses, and non-zero process exits.
	ErrBackendFailed = errors.New("analysis backend failed")
	// ErrMalformedOutput means the backend responded but its output could
	// not be parsed. Treated identically to a transport failure.
	ErrMalformedOutput = errors.New("analysis backend returned malformed output")
)
