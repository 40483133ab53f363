package extraction

import "fmt"

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
// JobDetails schema. Retryable: the caller may ask the model again.
type SchemaError struct {
	Cause error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("response does not match the job details schema: %v", e.Cause)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// NotAPostingError is returned when the input text does not resemble a job
// posting. Callers must branch on this before proceeding; it is a final
// answer, not a transient failure.
type NotAPostingError struct {
	Reason string
}

func (e *NotAPostingError) Error() string {
	return fmt.Sprintf("input is not a job posting: %s", e.Reason)
}
