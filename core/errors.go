package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRecords is returned when an export would produce an empty file.
	ErrNoRecords = errors.New("no dictionary words found")

	// ErrRetryExhausted is returned when every attempt to fetch a page failed.
	ErrRetryExhausted = errors.New("retry attempts exhausted")
)

// PageFetchError is the terminal failure for a single page.
type PageFetchError struct {
	Page    int
	Retries int
	Err     error
}

// Error implements the error interface.
func (e *PageFetchError) Error() string {
	return fmt.Sprintf("failed to fetch page %d after %d retries: %v", e.Page, e.Retries, e.Err)
}

// Unwrap exposes both the last cause and ErrRetryExhausted to errors.Is/As.
func (e *PageFetchError) Unwrap() []error {
	return []error{ErrRetryExhausted, e.Err}
}
