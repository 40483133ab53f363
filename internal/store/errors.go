// Package store persists job offers: raw posting text and processed
// JobDetails on disk, plus a SQLite index of everything discovered.
package store

import "fmt"

// StoreError represents a failure reading or writing the offers directory.
type StoreError struct {
	Message string
	Path    string
	Cause   error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("store error: %s", e.Message)
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// NotFoundError indicates a requested offer key has no processed record.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no processed offer found for key %q", e.Key)
}
