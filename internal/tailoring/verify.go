package tailoring

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/antoine/hireme/internal/types"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Verify checks a generated resume against the hard tailoring constraints:
// every company, institution, position, location and date must be traceable
// to the candidate profile, and every date must be "YYYY-MM" or "present".
// A nil return means the resume is safe to render.
func Verify(resume *types.TailoredResume, profile *types.CandidateProfile) error {
	checker := newFactChecker(profile)
	var violations []Violation

	check := func(field, token, what string) {
		if token == "" {
			return
		}
		if !checker.contains(token) {
			violations = append(violations, Violation{
				Field:   field,
				Token:   token,
				Message: what + " does not appear in the candidate profile",
			})
		}
	}

	checkDate := func(field, date string) {
		if date == "" {
			return
		}
		if !IsValidDate(date) {
			violations = append(violations, Violation{
				Field:   field,
				Token:   date,
				Message: `date must be "YYYY-MM" or "present"`,
			})
			return
		}
		if !checker.containsDate(date) {
			violations = append(violations, Violation{
				Field:   field,
				Token:   date,
				Message: "date does not appear in the candidate profile",
			})
		}
	}

	check("location", resume.Location, "location")

	for i, edu := range resume.Education {
		check(fmt.Sprintf("education[%d].institution", i), edu.Institution, "institution name")
		if edu.Location != "" {
			check(fmt.Sprintf("education[%d].location", i), edu.Location, "location")
		}
		checkDate(fmt.Sprintf("education[%d].start_date", i), edu.StartDate)
		checkDate(fmt.Sprintf("education[%d].end_date", i), edu.EndDate)
	}

	for i, exp := range resume.Experience {
		check(fmt.Sprintf("experience[%d].company", i), exp.Company, "company name")
		check(fmt.Sprintf("experience[%d].position", i), exp.Position, "job title")
		if exp.Location != "" {
			check(fmt.Sprintf("experience[%d].location", i), exp.Location, "location")
		}
		checkDate(fmt.Sprintf("experience[%d].start_date", i), exp.StartDate)
		checkDate(fmt.Sprintf("experience[%d].end_date", i), exp.EndDate)
	}

	for i, proj := range resume.Projects {
		check(fmt.Sprintf("projects[%d].name", i), proj.Name, "project name")
		checkDate(fmt.Sprintf("projects[%d].start_date", i), proj.StartDate)
		checkDate(fmt.Sprintf("projects[%d].end_date", i), proj.EndDate)
	}

	if len(violations) > 0 {
		return &VerificationError{Violations: violations}
	}
	return nil
}

// factChecker answers "does this token appear in the profile" with
// case- and whitespace-insensitive matching, plus a date index built from
// every date-like token found in the profile text.
type factChecker struct {
	text       string
	dates      map[string]bool
	hasPresent bool
}

// profileDatePattern finds date-like tokens in free profile text.
var profileDatePattern = regexp.MustCompile(
	`\d{4}-\d{2}-\d{2}|\d{4}[-/.]\d{1,2}|\d{1,2}/\d{4}|[A-Za-zÀ-ÿ]+\.?,?\s+\d{4}`)

func newFactChecker(profile *types.CandidateProfile) *factChecker {
	full := profile.FullText()
	normalized := normalizeForMatch(full)

	c := &factChecker{
		text:  normalized,
		dates: make(map[string]bool),
	}

	for _, raw := range profileDatePattern.FindAllString(full, -1) {
		if d := NormalizeDate(raw); yearMonthPattern.MatchString(d) {
			c.dates[d] = true
		}
	}
	for alias := range presentAliases {
		if strings.Contains(normalized, alias) {
			c.hasPresent = true
			break
		}
	}

	return c
}

func (c *factChecker) contains(token string) bool {
	return strings.Contains(c.text, normalizeForMatch(token))
}

func (c *factChecker) containsDate(date string) bool {
	if date == PresentMarker {
		return c.hasPresent
	}
	return c.dates[date]
}

func normalizeForMatch(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return whitespaceRun.ReplaceAllString(s, " ")
}
