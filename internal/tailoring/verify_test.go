package tailoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antoine/hireme/internal/types"
)

func testProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Location: "Paris, France",
		ContextNote: `## Experience

Senior Software Engineer at Initech, Paris (2019-06 - present).
Built billing pipelines in Go.

Software Engineer at Globex Corporation (2016-09 - 2019-05).

## Education

MSc Computer Science, Université Paris-Saclay (2014-09 - 2016-06).

## Projects

ledgerd: an open source double-entry bookkeeping daemon (2021-03).
`,
	}
}

func TestVerifyAcceptsFaithfulResume(t *testing.T) {
	resume := &types.TailoredResume{
		Name:     "Jane Doe",
		Location: "Paris, France",
		Experience: []types.TailoredExperience{
			{
				Company:   "Initech",
				Position:  "Senior Software Engineer",
				Location:  "Paris",
				StartDate: "2019-06",
				EndDate:   "present",
			},
			{
				Company:   "Globex Corporation",
				Position:  "Software Engineer",
				StartDate: "2016-09",
				EndDate:   "2019-05",
			},
		},
		Education: []types.TailoredEducation{
			{
				Institution: "Université Paris-Saclay",
				Degree:      "MSc",
				Area:        "Computer Science",
				StartDate:   "2014-09",
				EndDate:     "2016-06",
			},
		},
		Projects: []types.TailoredProject{
			{Name: "ledgerd", StartDate: "2021-03"},
		},
	}

	assert.NoError(t, Verify(resume, testProfile()))
}

func TestVerifyRejectsFabrications(t *testing.T) {
	tests := []struct {
		name      string
		resume    *types.TailoredResume
		wantField string
	}{
		{
			name: "invented company",
			resume: &types.TailoredResume{
				Name: "Jane Doe",
				Experience: []types.TailoredExperience{
					{Company: "Google", Position: "Senior Software Engineer", StartDate: "2019-06", EndDate: "present"},
				},
			},
			wantField: "experience[0].company",
		},
		{
			name: "invented position",
			resume: &types.TailoredResume{
				Name: "Jane Doe",
				Experience: []types.TailoredExperience{
					{Company: "Initech", Position: "VP of Engineering", StartDate: "2019-06", EndDate: "present"},
				},
			},
			wantField: "experience[0].position",
		},
		{
			name: "invented institution",
			resume: &types.TailoredResume{
				Name: "Jane Doe",
				Education: []types.TailoredEducation{
					{Institution: "MIT", StartDate: "2014-09", EndDate: "2016-06"},
				},
			},
			wantField: "education[0].institution",
		},
		{
			name: "shifted date",
			resume: &types.TailoredResume{
				Name: "Jane Doe",
				Experience: []types.TailoredExperience{
					{Company: "Initech", Position: "Senior Software Engineer", StartDate: "2018-01", EndDate: "present"},
				},
			},
			wantField: "experience[0].start_date",
		},
		{
			name: "malformed date",
			resume: &types.TailoredResume{
				Name: "Jane Doe",
				Experience: []types.TailoredExperience{
					{Company: "Initech", Position: "Senior Software Engineer", StartDate: "June 2019", EndDate: "present"},
				},
			},
			wantField: "experience[0].start_date",
		},
		{
			name: "invented contact location",
			resume: &types.TailoredResume{
				Name:     "Jane Doe",
				Location: "Berlin, Germany",
			},
			wantField: "location",
		},
		{
			name: "invented education location",
			resume: &types.TailoredResume{
				Name: "Jane Doe",
				Education: []types.TailoredEducation{
					{Institution: "Université Paris-Saclay", Location: "Tokyo, Japan", StartDate: "2014-09", EndDate: "2016-06"},
				},
			},
			wantField: "education[0].location",
		},
		{
			name: "invented project",
			resume: &types.TailoredResume{
				Name: "Jane Doe",
				Projects: []types.TailoredProject{
					{Name: "quantumdb"},
				},
			},
			wantField: "projects[0].name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.resume, testProfile())
			var vErr *VerificationError
			require.ErrorAs(t, err, &vErr)
			require.NotEmpty(t, vErr.Violations)

			fields := make([]string, 0, len(vErr.Violations))
			for _, v := range vErr.Violations {
				fields = append(fields, v.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestVerifyPresentRequiresOngoingRole(t *testing.T) {
	// The profile only has closed date ranges, so "present" is a fabrication.
	profile := &types.CandidateProfile{
		Name:        "Jane Doe",
		ContextNote: "Software Engineer at Globex Corporation (2016-09 - 2019-05).",
	}
	resume := &types.TailoredResume{
		Name: "Jane Doe",
		Experience: []types.TailoredExperience{
			{Company: "Globex Corporation", Position: "Software Engineer", StartDate: "2016-09", EndDate: "present"},
		},
	}

	err := Verify(resume, profile)
	var vErr *VerificationError
	require.ErrorAs(t, err, &vErr)
}

func TestVerifyMatchingIsCaseInsensitive(t *testing.T) {
	resume := &types.TailoredResume{
		Name: "Jane Doe",
		Experience: []types.TailoredExperience{
			{Company: "INITECH", Position: "senior software engineer", StartDate: "2019-06", EndDate: "present"},
		},
	}
	assert.NoError(t, Verify(resume, testProfile()))
}

func TestVerifyCollectsAllViolations(t *testing.T) {
	resume := &types.TailoredResume{
		Name: "Jane Doe",
		Experience: []types.TailoredExperience{
			{Company: "Google", Position: "CTO", StartDate: "1990-01", EndDate: "present"},
		},
	}

	err := Verify(resume, testProfile())
	var vErr *VerificationError
	require.ErrorAs(t, err, &vErr)
	// Company, position and start date are all wrong.
	assert.GreaterOrEqual(t, len(vErr.Violations), 3)
}
