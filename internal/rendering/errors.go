// Package rendering converts a tailored resume into RenderCV input YAML and
// drives the external rendercv binary to produce the PDF.
package rendering

import "fmt"

// TemplateError represents an error loading or parsing a design template.
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure producing the PDF. It is fatal for the
// posting being rendered but never aborts other postings.
type RenderError struct {
	Message string
	Stderr  string
	Cause   error
}

func (e *RenderError) Error() string {
	msg := fmt.Sprintf("render error: %s", e.Message)
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf(" (stderr: %s)", e.Stderr)
	}
	return msg
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
