package llm

import (
	"errors"
	"fmt"
)

// GenerationError reports a completion that could not be produced within
// the retry budget. Timeout distinguishes provider timeouts from other
// failures so handlers can map them to different statuses and
// remediation hints.
type GenerationError struct {
	Model    string
	Attempts int
	Timeout  bool
	Err      error
}

func (e *GenerationError) Error() string {
	kind := "failed"
	if e.Timeout {
		kind = "timed out"
	}
	return fmt.Sprintf("completion %s after %d attempt(s) with model %s: %v", kind, e.Attempts, e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// IsTimeout reports whether err is a GenerationError caused by provider
// timeouts.
func IsTimeout(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr) && genErr.Timeout
}
