// Package extraction turns raw scraped job text into a structured JobDetails
// record using LLM extraction with a constrained output schema.
package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/antoine/hireme/internal/llm"
	"github.com/antoine/hireme/internal/prompts"
	"github.com/antoine/hireme/internal/schemas"
	"github.com/antoine/hireme/internal/types"
)

// maxAttempts bounds retries on malformed model output.
const maxAttempts = 3

var validate = validator.New()

// failureEnvelope is what the model returns for non-posting input.
type failureEnvelope struct {
	Failed bool   `json:"failed"`
	Reason string `json:"reason"`
}

// Extract sends raw posting text to the model and returns a populated
// JobDetails record. If the text does not resemble a job posting it returns
// a *NotAPostingError carrying the model's reason; it never returns a
// partially filled record. Malformed model output is retried up to
// maxAttempts times before surfacing as a *SchemaError or *ParseError.
func Extract(ctx context.Context, client llm.Client, rawText string) (*types.JobDetails, error) {
	if strings.TrimSpace(rawText) == "" {
		return nil, &NotAPostingError{Reason: "input text is empty"}
	}

	template := prompts.MustGet("extraction.json", "extract-job-details")
	prompt := prompts.Format(template, map[string]string{
		"JobText": rawText,
	})

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
		if err != nil {
			return nil, &APICallError{
				Message: "failed to generate extraction response",
				Cause:   err,
			}
		}

		details, err := parseResponse(responseText)
		if err == nil {
			return details, nil
		}

		var notPosting *NotAPostingError
		if errors.As(err, &notPosting) {
			// Final answer from the model, not a transient failure.
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// parseResponse decodes and validates one model response.
func parseResponse(responseText string) (*types.JobDetails, error) {
	responseText = llm.CleanJSONBlock(responseText)

	// The model signals non-posting input with a failure envelope.
	var failure failureEnvelope
	if err := json.Unmarshal([]byte(responseText), &failure); err == nil && failure.Failed {
		reason := strings.TrimSpace(failure.Reason)
		if reason == "" {
			reason = "the model did not recognize a job posting"
		}
		return nil, &NotAPostingError{Reason: reason}
	}

	// Schema check before unmarshalling: a malformed response must never be
	// coerced into a partially valid record.
	if err := schemas.ValidateJobDetails(responseText); err != nil {
		return nil, &SchemaError{Cause: err}
	}

	var details types.JobDetails
	if err := json.Unmarshal([]byte(responseText), &details); err != nil {
		return nil, &ParseError{
			Message: "failed to parse JSON response",
			Cause:   err,
		}
	}

	Normalize(&details)

	if err := validate.Struct(&details); err != nil {
		return nil, &SchemaError{Cause: err}
	}

	return &details, nil
}
