package tailoring

import (
	"fmt"
	"strings"
)

// APICallError represents an error from the LLM backend
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents an error parsing the model response
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// SchemaError represents a model response that does not conform to the
// TailoredResume schema. Retryable.
type SchemaError struct {
	Cause error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("response does not match the tailored resume schema: %v", e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// GenerationFailedError is the model's declared inability to build a resume
// from the given context. Not retryable.
type GenerationFailedError struct {
	Reason string
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("resume generation failed: %s", e.Reason)
}

// Violation is one hard-constraint breach found in a generated resume.
type Violation struct {
	Field   string // e.g. "experience[0].company"
	Token   string // the offending value
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s (%q)", v.Field, v.Message, v.Token)
}

// VerificationError aggregates every hard-constraint violation found in a
// generated resume: fabricated tokens and malformed dates. A resume carrying
// any violation is a defect and must not reach the renderer.
type VerificationError struct {
	Violations []Violation
}

func (e *VerificationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("resume verification failed with %d violation(s):\n", len(e.Violations)))
	for i, v := range e.Violations {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, v))
	}
	return sb.String()
}
