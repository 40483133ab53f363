package types

// CandidateProfile is the candidate's background: structured contact fields
// plus the free-text context note that is the source of truth for the
// tailoring agent. It is authored by the user and read-only during a run.
type CandidateProfile struct {
	Name             string `json:"name" yaml:"name"`
	Email            string `json:"email" yaml:"email"`
	Phone            string `json:"phone,omitempty" yaml:"phone"`
	Location         string `json:"location" yaml:"location"`
	LinkedinUsername string `json:"linkedin_username,omitempty" yaml:"linkedin_username"`
	GithubUsername   string `json:"github_username,omitempty" yaml:"github_username"`
	Website          string `json:"website,omitempty" yaml:"website"`

	// ContextNote holds the detailed background narrative (education,
	// experience, projects, skills) loaded from the profile directory.
	ContextNote string `json:"context_note" yaml:"-"`
}

// FullText returns the concatenation of every piece of profile text.
// Fabrication checks look tokens up in this string.
func (p *CandidateProfile) FullText() string {
	parts := []string{
		p.Name, p.Email, p.Phone, p.Location,
		p.LinkedinUsername, p.GithubUsername, p.Website,
		p.ContextNote,
	}
	out := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += part
	}
	return out
}
