package types

// TailoredEducation is an education entry customized for one job.
type TailoredEducation struct {
	Institution string   `json:"institution" validate:"required"`
	Area        string   `json:"area"`
	Degree      string   `json:"degree"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"start_date"` // YYYY-MM
	EndDate     string   `json:"end_date"`   // YYYY-MM or "present"
	Highlights  []string `json:"highlights,omitempty"`
}

// TailoredExperience is a work-experience entry customized for one job.
type TailoredExperience struct {
	Company    string   `json:"company" validate:"required"`
	Position   string   `json:"position" validate:"required"`
	Location   string   `json:"location,omitempty"`
	StartDate  string   `json:"start_date"` // YYYY-MM
	EndDate    string   `json:"end_date"`   // YYYY-MM or "present"
	Highlights []string `json:"highlights"`
}

// TailoredProject is a project entry customized for one job.
type TailoredProject struct {
	Name       string   `json:"name" validate:"required"`
	StartDate  string   `json:"start_date,omitempty"`
	EndDate    string   `json:"end_date,omitempty"`
	Summary    string   `json:"summary,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
}

// TailoredSkill is a labeled skill group, details reordered for relevance.
type TailoredSkill struct {
	Label   string `json:"label"`
	Details string `json:"details"`
}

// TailoredResume is the structured resume derived from a
// (CandidateProfile, JobDetails) pair. Sections the profile cannot support
// are omitted rather than invented; every factual token must be traceable
// to the candidate profile.
type TailoredResume struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	Location         string `json:"location"`
	LinkedinUsername string `json:"linkedin_username,omitempty"`
	GithubUsername   string `json:"github_username,omitempty"`

	ProfessionalSummary string               `json:"professional_summary,omitempty"`
	Education           []TailoredEducation  `json:"education,omitempty"`
	Experience          []TailoredExperience `json:"experience,omitempty"`
	Projects            []TailoredProject    `json:"projects,omitempty"`
	Skills              []TailoredSkill      `json:"skills,omitempty"`
	Languages           []string             `json:"languages,omitempty"`
}

// Dates returns every date field in the resume, in document order.
// Used by the fabrication and format checks.
func (r *TailoredResume) Dates() []string {
	var dates []string
	for _, e := range r.Education {
		dates = append(dates, e.StartDate, e.EndDate)
	}
	for _, e := range r.Experience {
		dates = append(dates, e.StartDate, e.EndDate)
	}
	for _, p := range r.Projects {
		if p.StartDate != "" {
			dates = append(dates, p.StartDate)
		}
		if p.EndDate != "" {
			dates = append(dates, p.EndDate)
		}
	}
	return dates
}
