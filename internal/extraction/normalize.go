package extraction

import (
	"strings"

	"github.com/antoine/hireme/internal/types"
)

// thousandsCutoff: salary amounts below this with a yearly period are taken
// as "k" shorthand the model forgot to expand (e.g. 40-70k -> 40/70).
const thousandsCutoff = 1000

// Normalize applies deterministic post-processing to an extracted record:
// unknown-sentinel enforcement for enum fields, skill-level normalization,
// salary fixups and keyword dedup. It is idempotent, so re-extracting the
// same text converges on the same objective fields.
func Normalize(details *types.JobDetails) {
	details.Title = strings.TrimSpace(details.Title)
	details.Company.Name = strings.TrimSpace(details.Company.Name)
	details.Location = strings.TrimSpace(details.Location)

	details.WorkMode = normalizeWorkMode(details.WorkMode)
	details.ExperienceLevel = normalizeExperienceLevel(details.ExperienceLevel)
	details.ContractTypes = normalizeContractTypes(details.ContractTypes)

	for i := range details.RequiredSkills {
		details.RequiredSkills[i].Name = strings.TrimSpace(details.RequiredSkills[i].Name)
		details.RequiredSkills[i].Level = normalizeSkillLevel(details.RequiredSkills[i].Level)
	}

	if details.Salary != nil {
		normalizeSalary(details.Salary)
	}

	details.Company.CultureKeywords = dedupeStrings(details.Company.CultureKeywords)
	details.Benefits = dedupeStrings(details.Benefits)
	details.RequiredLanguages = dedupeStrings(details.RequiredLanguages)
}

func normalizeWorkMode(mode types.WorkMode) types.WorkMode {
	switch types.WorkMode(canonical(string(mode))) {
	case "on-site", "onsite", "office":
		return types.WorkModeOnsite
	case "remote", "full remote":
		return types.WorkModeRemote
	case "hybrid":
		return types.WorkModeHybrid
	}
	switch mode {
	case types.WorkModeOnsite, types.WorkModeRemote, types.WorkModeHybrid:
		return mode
	}
	return types.WorkModeUnknown
}

func normalizeExperienceLevel(level types.ExperienceLevel) types.ExperienceLevel {
	switch level {
	case types.ExperienceJunior, types.ExperienceMid, types.ExperienceSenior,
		types.ExperienceLead, types.ExperienceAny:
		return level
	}
	switch canonical(string(level)) {
	case "junior":
		return types.ExperienceJunior
	case "mid", "mid-level", "intermediate":
		return types.ExperienceMid
	case "senior":
		return types.ExperienceSenior
	case "lead", "principal", "staff":
		return types.ExperienceLead
	case "any", "any level":
		return types.ExperienceAny
	}
	return types.ExperienceUnknown
}

func normalizeContractTypes(contracts []types.ContractType) []types.ContractType {
	if len(contracts) == 0 {
		return []types.ContractType{types.ContractUnknown}
	}

	known := map[types.ContractType]bool{
		types.ContractCDI:            true,
		types.ContractCDD:            true,
		types.ContractFreelance:      true,
		types.ContractInternship:     true,
		types.ContractApprenticeship: true,
		types.ContractPartTime:       true,
		types.ContractFullTime:       true,
		types.ContractTemporary:      true,
	}

	seen := make(map[types.ContractType]bool)
	normalized := make([]types.ContractType, 0, len(contracts))
	for _, c := range contracts {
		if !known[c] {
			c = mapContractAlias(c)
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		normalized = append(normalized, c)
	}

	// Unknown never coexists with a concrete contract type.
	if len(normalized) > 1 {
		filtered := normalized[:0]
		for _, c := range normalized {
			if c != types.ContractUnknown {
				filtered = append(filtered, c)
			}
		}
		normalized = filtered
	}
	if len(normalized) == 0 {
		return []types.ContractType{types.ContractUnknown}
	}
	return normalized
}

func mapContractAlias(c types.ContractType) types.ContractType {
	switch canonical(string(c)) {
	case "cdi", "permanent":
		return types.ContractCDI
	case "cdd", "fixed-term":
		return types.ContractCDD
	case "freelance", "contractor":
		return types.ContractFreelance
	case "internship", "stage":
		return types.ContractInternship
	case "apprenticeship", "alternance":
		return types.ContractApprenticeship
	case "part-time", "part time":
		return types.ContractPartTime
	case "full-time", "full time":
		return types.ContractFullTime
	case "temporary", "interim":
		return types.ContractTemporary
	}
	return types.ContractUnknown
}

func normalizeSkillLevel(level string) string {
	switch canonical(level) {
	case types.SkillRequired, "must-have", "must have", "mandatory":
		return types.SkillRequired
	case types.SkillPreferred, "desired":
		return types.SkillPreferred
	case types.SkillNiceToHave, "nice to have", "bonus", "plus", "optional":
		return types.SkillNiceToHave
	}
	// Postings list skills as requirements unless stated otherwise.
	return types.SkillRequired
}

func normalizeSalary(s *types.Salary) {
	s.Currency = strings.ToUpper(strings.TrimSpace(s.Currency))
	if s.Currency == "" {
		s.Currency = "EUR"
	}

	switch canonical(s.Period) {
	case types.PeriodYearly, "annual", "year", "per year":
		s.Period = types.PeriodYearly
	case types.PeriodMonthly, "month", "per month":
		s.Period = types.PeriodMonthly
	case types.PeriodDaily, "day", "per day":
		s.Period = types.PeriodDaily
	case types.PeriodHourly, "hour", "per hour":
		s.Period = types.PeriodHourly
	default:
		s.Period = types.PeriodYearly
	}

	// Expand unexpanded "k" shorthand on yearly figures.
	if s.Period == types.PeriodYearly {
		if s.MinAmount > 0 && s.MinAmount < thousandsCutoff {
			s.MinAmount *= 1000
		}
		if s.MaxAmount > 0 && s.MaxAmount < thousandsCutoff {
			s.MaxAmount *= 1000
		}
	}

	if s.MinAmount > 0 && s.MaxAmount > 0 && s.MinAmount > s.MaxAmount {
		s.MinAmount, s.MaxAmount = s.MaxAmount, s.MinAmount
	}
}

func canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func dedupeStrings(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	return out
}
