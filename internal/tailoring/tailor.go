// Package tailoring derives a TailoredResume from a candidate profile and
// one JobDetails record. It is a pure transformation: no persisted state,
// each invocation independent. The core correctness property is that no
// fact appears in the output that is absent from the profile.
package tailoring

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/antoine/hireme/internal/llm"
	"github.com/antoine/hireme/internal/prompts"
	"github.com/antoine/hireme/internal/schemas"
	"github.com/antoine/hireme/internal/types"
)

const (
	// maxAttempts bounds retries on malformed model output.
	maxAttempts = 3
	// maxRepairRounds bounds constraint-repair round trips.
	maxRepairRounds = 2
)

// Options configures a tailoring run.
type Options struct {
	// Language selects the prompt variant ("en" or "fr"). Empty means "en".
	Language string
}

// failureEnvelope is what the model returns when it cannot build a resume.
type failureEnvelope struct {
	Failed bool   `json:"failed"`
	Reason string `json:"reason"`
}

// Tailor generates a resume customized for the given job from the candidate
// profile. The result is verified against the hard constraints; violations
// trigger bounded repair rounds with the model before being surfaced as a
// *VerificationError.
func Tailor(ctx context.Context, client llm.Client, profile *types.CandidateProfile, job *types.JobDetails, opts Options) (*types.TailoredResume, error) {
	if strings.TrimSpace(profile.FullText()) == "" {
		return nil, &GenerationFailedError{Reason: "candidate profile is empty"}
	}

	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return nil, &ParseError{Message: "failed to encode job details", Cause: err}
	}

	lang := opts.Language
	if lang == "en" {
		lang = "" // base key is the English variant
	}
	template, err := prompts.GetForLanguage("tailoring.json", "tailor-resume", lang)
	if err != nil {
		return nil, err
	}

	prompt := prompts.Format(template, map[string]string{
		"CandidateContext": profile.FullText(),
		"JobDetails":       string(jobJSON),
	})

	resume, err := generateResume(ctx, client, prompt)
	if err != nil {
		return nil, err
	}

	// Verify the hard constraints and let the model repair its own
	// violations a bounded number of times.
	verifyErr := Verify(resume, profile)
	for round := 0; verifyErr != nil && round < maxRepairRounds; round++ {
		var vErr *VerificationError
		if !errors.As(verifyErr, &vErr) {
			return nil, verifyErr
		}

		resume, err = repairResume(ctx, client, profile, resume, vErr)
		if err != nil {
			return nil, err
		}
		verifyErr = Verify(resume, profile)
	}
	if verifyErr != nil {
		return nil, verifyErr
	}

	return resume, nil
}

// generateResume runs one generation loop with bounded retries on
// malformed output.
func generateResume(ctx context.Context, client llm.Client, prompt string) (*types.TailoredResume, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		responseText, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
		if err != nil {
			return nil, &APICallError{
				Message: "failed to generate tailored resume",
				Cause:   err,
			}
		}

		resume, err := parseResponse(responseText)
		if err == nil {
			return resume, nil
		}

		var failed *GenerationFailedError
		if errors.As(err, &failed) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// repairResume asks the model to fix the listed violations without touching
// anything else.
func repairResume(ctx context.Context, client llm.Client, profile *types.CandidateProfile, draft *types.TailoredResume, vErr *VerificationError) (*types.TailoredResume, error) {
	draftJSON, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		return nil, &ParseError{Message: "failed to encode resume draft", Cause: err}
	}

	var violationList strings.Builder
	for _, v := range vErr.Violations {
		violationList.WriteString("- " + v.String() + "\n")
	}

	template := prompts.MustGet("tailoring.json", "repair-violations")
	prompt := prompts.Format(template, map[string]string{
		"Violations":       violationList.String(),
		"Draft":            string(draftJSON),
		"CandidateContext": profile.FullText(),
	})

	return generateResume(ctx, client, prompt)
}

// parseResponse decodes and validates one model response.
func parseResponse(responseText string) (*types.TailoredResume, error) {
	responseText = llm.CleanJSONBlock(responseText)

	var failure failureEnvelope
	if err := json.Unmarshal([]byte(responseText), &failure); err == nil && failure.Failed {
		reason := strings.TrimSpace(failure.Reason)
		if reason == "" {
			reason = "the model could not build a resume from the context"
		}
		return nil, &GenerationFailedError{Reason: reason}
	}

	if err := schemas.ValidateTailoredResume(responseText); err != nil {
		return nil, &SchemaError{Cause: err}
	}

	var resume types.TailoredResume
	if err := json.Unmarshal([]byte(responseText), &resume); err != nil {
		return nil, &ParseError{
			Message: "failed to parse JSON response",
			Cause:   err,
		}
	}

	normalizeDates(&resume)

	return &resume, nil
}

// normalizeDates rewrites every date field onto the permitted formats.
func normalizeDates(r *types.TailoredResume) {
	for i := range r.Education {
		r.Education[i].StartDate = NormalizeDate(r.Education[i].StartDate)
		r.Education[i].EndDate = NormalizeDate(r.Education[i].EndDate)
	}
	for i := range r.Experience {
		r.Experience[i].StartDate = NormalizeDate(r.Experience[i].StartDate)
		r.Experience[i].EndDate = NormalizeDate(r.Experience[i].EndDate)
	}
	for i := range r.Projects {
		r.Projects[i].StartDate = NormalizeDate(r.Projects[i].StartDate)
		r.Projects[i].EndDate = NormalizeDate(r.Projects[i].EndDate)
	}
}
