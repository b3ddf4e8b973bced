package services

import "errors"

// Errors shared across the service layer.
var (
	// ErrValidation marks client input the services refuse to process.
	ErrValidation = errors.New("validation failed")

	// ErrRootPageNotConfigured is returned by flows that need the Notion
	// root page and none is configured.
	ErrRootPageNotConfigured = errors.New("notion root page id is not configured")

	// ErrConfigDBNotFound is returned when no preset configuration
	// database could be resolved.
	ErrConfigDBNotFound = errors.New("configuration database not found")
)
