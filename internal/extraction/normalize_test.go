package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/antoine/hireme/internal/types"
)

func TestNormalizeWorkMode(t *testing.T) {
	tests := []struct {
		input types.WorkMode
		want  types.WorkMode
	}{
		{"Hybrid", types.WorkModeHybrid},
		{"hybrid", types.WorkModeHybrid},
		{"remote", types.WorkModeRemote},
		{"full remote", types.WorkModeRemote},
		{"On-site", types.WorkModeOnsite},
		{"office", types.WorkModeOnsite},
		{"", types.WorkModeUnknown},
		{"whatever", types.WorkModeUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeWorkMode(tt.input))
		})
	}
}

func TestNormalizeContractTypes(t *testing.T) {
	tests := []struct {
		name  string
		input []types.ContractType
		want  []types.ContractType
	}{
		{
			name:  "empty becomes unknown",
			input: nil,
			want:  []types.ContractType{types.ContractUnknown},
		},
		{
			name:  "aliases mapped",
			input: []types.ContractType{"permanent", "full time"},
			want:  []types.ContractType{types.ContractCDI, types.ContractFullTime},
		},
		{
			name:  "unknown dropped next to concrete type",
			input: []types.ContractType{types.ContractCDI, "gibberish"},
			want:  []types.ContractType{types.ContractCDI},
		},
		{
			name:  "duplicates removed",
			input: []types.ContractType{types.ContractCDI, "cdi"},
			want:  []types.ContractType{types.ContractCDI},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeContractTypes(tt.input))
		})
	}
}

func TestNormalizeSkillLevel(t *testing.T) {
	assert.Equal(t, types.SkillRequired, normalizeSkillLevel("required"))
	assert.Equal(t, types.SkillRequired, normalizeSkillLevel("must-have"))
	assert.Equal(t, types.SkillPreferred, normalizeSkillLevel("Preferred"))
	assert.Equal(t, types.SkillNiceToHave, normalizeSkillLevel("bonus"))
	assert.Equal(t, types.SkillNiceToHave, normalizeSkillLevel("nice to have"))
	// Unlabeled skills count as requirements.
	assert.Equal(t, types.SkillRequired, normalizeSkillLevel(""))
}

func TestNormalizeSalary(t *testing.T) {
	tests := []struct {
		name  string
		input types.Salary
		want  types.Salary
	}{
		{
			name:  "k shorthand expanded for yearly",
			input: types.Salary{MinAmount: 40, MaxAmount: 70, Currency: "eur", Period: "yearly"},
			want:  types.Salary{MinAmount: 40000, MaxAmount: 70000, Currency: "EUR", Period: types.PeriodYearly},
		},
		{
			name:  "already expanded amounts untouched",
			input: types.Salary{MinAmount: 40000, MaxAmount: 70000, Currency: "EUR", Period: "annual"},
			want:  types.Salary{MinAmount: 40000, MaxAmount: 70000, Currency: "EUR", Period: types.PeriodYearly},
		},
		{
			name:  "daily rates not expanded",
			input: types.Salary{MinAmount: 500, MaxAmount: 650, Currency: "EUR", Period: "per day"},
			want:  types.Salary{MinAmount: 500, MaxAmount: 650, Currency: "EUR", Period: types.PeriodDaily},
		},
		{
			name:  "missing currency defaults to EUR",
			input: types.Salary{MinAmount: 45000, Period: "yearly"},
			want:  types.Salary{MinAmount: 45000, Currency: "EUR", Period: types.PeriodYearly},
		},
		{
			name:  "swapped bounds reordered",
			input: types.Salary{MinAmount: 70000, MaxAmount: 40000, Currency: "EUR", Period: "yearly"},
			want:  types.Salary{MinAmount: 40000, MaxAmount: 70000, Currency: "EUR", Period: types.PeriodYearly},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.input
			normalizeSalary(&s)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	details := types.JobDetails{
		Title:    "  Backend Engineer ",
		Company:  types.CompanyInfo{Name: "Acme", CultureKeywords: []string{"agile", "Agile", "remote-first"}},
		WorkMode: "hybrid",
		ContractTypes:   []types.ContractType{"permanent"},
		ExperienceLevel: "senior",
		Salary:          &types.Salary{MinAmount: 40, MaxAmount: 70, Period: "year"},
		RequiredSkills:  []types.RequiredSkill{{Name: " Go ", Level: "mandatory"}},
		Benefits:        []string{"Health insurance", "health insurance"},
	}

	Normalize(&details)
	once := details
	Normalize(&details)

	assert.Equal(t, once, details)
	assert.Equal(t, "Backend Engineer", details.Title)
	assert.Equal(t, types.WorkModeHybrid, details.WorkMode)
	assert.Equal(t, types.ExperienceSenior, details.ExperienceLevel)
	assert.Equal(t, []types.ContractType{types.ContractCDI}, details.ContractTypes)
	assert.Equal(t, 40000, details.Salary.MinAmount)
	assert.Equal(t, []string{"agile", "remote-first"}, details.Company.CultureKeywords)
	assert.Equal(t, []string{"Health insurance"}, details.Benefits)
	assert.Equal(t, types.SkillRequired, details.RequiredSkills[0].Level)
	assert.Equal(t, "Go", details.RequiredSkills[0].Name)
}
