package rendering

import (
	"bytes"
	"context"
	_ "embed"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/antoine/hireme/internal/types"
)

//go:embed design.yaml
var defaultDesign []byte

// BuildInput converts a TailoredResume into the RenderCV document structure.
// Empty sections are omitted so RenderCV never prints empty headings.
func BuildInput(resume *types.TailoredResume) map[string]any {
	cv := map[string]any{
		"name":     resume.Name,
		"location": resume.Location,
		"email":    resume.Email,
	}
	if resume.Phone != "" {
		cv["phone"] = resume.Phone
	}

	var socialNetworks []map[string]string
	if resume.LinkedinUsername != "" {
		socialNetworks = append(socialNetworks, map[string]string{
			"network":  "LinkedIn",
			"username": resume.LinkedinUsername,
		})
	}
	if resume.GithubUsername != "" {
		socialNetworks = append(socialNetworks, map[string]string{
			"network":  "GitHub",
			"username": resume.GithubUsername,
		})
	}
	if len(socialNetworks) > 0 {
		cv["social_networks"] = socialNetworks
	}

	sections := map[string]any{}

	if resume.ProfessionalSummary != "" {
		sections["summary"] = []string{resume.ProfessionalSummary}
	}

	if len(resume.Education) > 0 {
		var entries []map[string]any
		for _, edu := range resume.Education {
			entry := map[string]any{
				"institution": edu.Institution,
				"area":        edu.Area,
				"degree":      edu.Degree,
				"start_date":  edu.StartDate,
				"end_date":    edu.EndDate,
			}
			if edu.Location != "" {
				entry["location"] = edu.Location
			}
			if len(edu.Highlights) > 0 {
				entry["highlights"] = edu.Highlights
			}
			entries = append(entries, entry)
		}
		sections["education"] = entries
	}

	if len(resume.Experience) > 0 {
		var entries []map[string]any
		for _, exp := range resume.Experience {
			entry := map[string]any{
				"company":    exp.Company,
				"position":   exp.Position,
				"start_date": exp.StartDate,
				"end_date":   exp.EndDate,
				"highlights": exp.Highlights,
			}
			if exp.Location != "" {
				entry["location"] = exp.Location
			}
			entries = append(entries, entry)
		}
		sections["experience"] = entries
	}

	if len(resume.Projects) > 0 {
		var entries []map[string]any
		for _, proj := range resume.Projects {
			entry := map[string]any{
				"name": proj.Name,
			}
			if proj.StartDate != "" {
				entry["start_date"] = proj.StartDate
			}
			if proj.EndDate != "" {
				entry["end_date"] = proj.EndDate
			}
			if proj.Summary != "" {
				entry["summary"] = proj.Summary
			}
			if len(proj.Highlights) > 0 {
				entry["highlights"] = proj.Highlights
			}
			entries = append(entries, entry)
		}
		sections["projects"] = entries
	}

	if len(resume.Skills) > 0 {
		var entries []map[string]any
		for _, skill := range resume.Skills {
			entries = append(entries, map[string]any{
				"label":   skill.Label,
				"details": skill.Details,
			})
		}
		sections["skills"] = entries
	}

	if len(resume.Languages) > 0 {
		sections["languages"] = resume.Languages
	}

	cv["sections"] = sections
	return map[string]any{"cv": cv}
}

// LoadDesign reads a RenderCV design document. An empty path loads the
// embedded default design.
func LoadDesign(path string) (map[string]any, error) {
	data := defaultDesign
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, &TemplateError{
				Message: "failed to read design file",
				Cause:   err,
			}
		}
	}

	var design map[string]any
	if err := yaml.Unmarshal(data, &design); err != nil {
		return nil, &TemplateError{
			Message: "failed to parse design YAML",
			Cause:   err,
		}
	}
	if design == nil {
		design = map[string]any{}
	}
	return design, nil
}

// WriteInput generates the complete RenderCV input file and returns its
// path. The file is named after the candidate, e.g. "jane_doe_cv.yaml".
func WriteInput(resume *types.TailoredResume, design map[string]any, outputDir string) (string, error) {
	doc := BuildInput(resume)
	for key, value := range design {
		doc[key] = value
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", &RenderError{
			Message: "failed to marshal RenderCV input",
			Cause:   err,
		}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", &RenderError{
			Message: "failed to create output directory",
			Cause:   err,
		}
	}

	safeName := strings.ToLower(strings.ReplaceAll(resume.Name, " ", "_"))
	outputPath := filepath.Join(outputDir, safeName+"_cv.yaml")
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return "", &RenderError{
			Message: "failed to write RenderCV input",
			Cause:   err,
		}
	}

	return outputPath, nil
}

// RunRenderCV invokes the external rendercv binary on the generated input
// file and returns the path of the produced PDF.
func RunRenderCV(ctx context.Context, yamlPath, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = filepath.Dir(yamlPath)
	}

	stem := strings.TrimSuffix(filepath.Base(yamlPath), filepath.Ext(yamlPath))
	pdfPath := filepath.Join(outputDir, stem+".pdf")

	cmd := exec.CommandContext(ctx, "rendercv", "render", yamlPath,
		"--output-folder-name", outputDir+string(filepath.Separator),
		"-pdf", pdfPath,
		"-typ", filepath.Join(outputDir, stem+".typ"),
		"-nomd", "-nohtml", "-nopng",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &RenderError{
			Message: "rendercv failed",
			Stderr:  strings.TrimSpace(stderr.String()),
			Cause:   err,
		}
	}

	if _, err := os.Stat(pdfPath); err != nil {
		// rendercv sometimes names the PDF after the CV title instead.
		matches, _ := filepath.Glob(filepath.Join(outputDir, "*.pdf"))
		if len(matches) == 0 {
			return "", &RenderError{
				Message: "rendercv did not produce a PDF",
				Stderr:  strings.TrimSpace(stderr.String()),
			}
		}
		pdfPath = matches[0]
	}

	return pdfPath, nil
}
