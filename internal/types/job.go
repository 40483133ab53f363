// Package types provides type definitions for structured data used throughout the hireme system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// WorkMode represents the work arrangement stated in a posting.
type WorkMode string

// WorkMode values. WorkModeUnknown is the documented placeholder for
// postings that do not clearly state an arrangement.
const (
	WorkModeOnsite  WorkMode = "On-site"
	WorkModeRemote  WorkMode = "Remote"
	WorkModeHybrid  WorkMode = "Hybrid"
	WorkModeUnknown WorkMode = "Unknown"
)

// ContractType represents the type of employment contract.
type ContractType string

// ContractType values.
const (
	ContractCDI            ContractType = "CDI"
	ContractCDD            ContractType = "CDD"
	ContractFreelance      ContractType = "Freelance"
	ContractInternship     ContractType = "Internship"
	ContractApprenticeship ContractType = "Apprenticeship"
	ContractPartTime       ContractType = "Part-time"
	ContractFullTime       ContractType = "Full-time"
	ContractTemporary      ContractType = "Temporary"
	ContractUnknown        ContractType = "Unknown"
)

// ExperienceLevel represents the seniority a posting asks for.
type ExperienceLevel string

// ExperienceLevel values.
const (
	ExperienceJunior  ExperienceLevel = "Junior (0-2 years)"
	ExperienceMid     ExperienceLevel = "Mid-level (2-5 years)"
	ExperienceSenior  ExperienceLevel = "Senior (5-10 years)"
	ExperienceLead    ExperienceLevel = "Lead/Principal (10+ years)"
	ExperienceAny     ExperienceLevel = "Any level"
	ExperienceUnknown ExperienceLevel = "Unknown"
)

// Skill level tags. Extraction classifies every skill mention into one of
// these based on the language cues in the posting.
const (
	SkillRequired   = "required"
	SkillPreferred  = "preferred"
	SkillNiceToHave = "nice-to-have"
)

// Salary periods.
const (
	PeriodYearly  = "yearly"
	PeriodMonthly = "monthly"
	PeriodDaily   = "daily"
	PeriodHourly  = "hourly"
)

// Salary represents compensation information from a posting.
type Salary struct {
	MinAmount int    `json:"min_amount,omitempty"`
	MaxAmount int    `json:"max_amount,omitempty"`
	Currency  string `json:"currency"`           // EUR, USD, GBP...
	Period    string `json:"period"`             // yearly, monthly, daily, hourly
	IsGross   bool   `json:"is_gross,omitempty"` // gross vs net
}

// RequiredSkill is a single skill mention with its level tag.
type RequiredSkill struct {
	Name            string `json:"name" validate:"required"`
	Level           string `json:"level"` // required, preferred, nice-to-have
	YearsExperience int    `json:"years_experience,omitempty"`
}

// CompanyInfo describes the hiring company.
type CompanyInfo struct {
	Name            string   `json:"name" validate:"required"`
	Industry        string   `json:"industry,omitempty"`
	Size            string   `json:"size,omitempty"` // e.g. "50-200 employees", "Startup"
	Description     string   `json:"description,omitempty"`
	CultureKeywords []string `json:"culture_keywords,omitempty"`
}

// JobDetails is the structured record extracted from one posting. It is
// produced once per posting by the extraction agent and never mutated
// afterward, only persisted.
type JobDetails struct {
	Title    string      `json:"title" validate:"required"`
	Company  CompanyInfo `json:"company"`
	Location string      `json:"location"`
	WorkMode WorkMode    `json:"work_mode"`

	ContractTypes   []ContractType  `json:"contract_type"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	StartDate       string          `json:"start_date,omitempty"` // expected start or "ASAP"

	Salary   *Salary  `json:"salary,omitempty"`
	Benefits []string `json:"benefits,omitempty"`

	RequiredSkills    []RequiredSkill `json:"required_skills,omitempty"`
	RequiredLanguages []string        `json:"required_languages,omitempty"`
	RequiredEducation string          `json:"required_education,omitempty"`

	Responsibilities []string `json:"responsibilities,omitempty"`
	TeamInfo         string   `json:"team_info,omitempty"`
	ReportsTo        string   `json:"reports_to,omitempty"`

	ApplicationDeadline string `json:"application_deadline,omitempty"`
	ApplicationURL      string `json:"application_url,omitempty"`
	ContactEmail        string `json:"contact_email,omitempty"`

	KeySellingPoints    []string `json:"key_selling_points,omitempty"`
	PotentialChallenges []string `json:"potential_challenges,omitempty"`
}

// SkillsAtLevel returns the names of skills tagged with the given level.
func (j *JobDetails) SkillsAtLevel(level string) []string {
	var names []string
	for _, s := range j.RequiredSkills {
		if s.Level == level {
			names = append(names, s.Name)
		}
	}
	return names
}
