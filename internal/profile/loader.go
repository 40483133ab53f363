// Package profile loads a candidate profile from a local directory.
//
// Expected layout:
//
//	profile_dir/
//	    context.md      main background narrative (source of truth)
//	    profile.yaml    structured contact info (optional)
//	    *.md, *.txt     any additional notes, appended to the context
//
// The directory is read-only input; nothing in it is ever mutated.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/antoine/hireme/internal/types"
)

const (
	// ContextNoteFilename is the main context note file.
	ContextNoteFilename = "context.md"
	// ProfileFilename is the structured contact-info file.
	ProfileFilename = "profile.yaml"
)

// LoadError represents a failure to load the profile directory.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile load error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("profile load error for %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Load reads a candidate profile from dir. The context note is required in
// some form: either context.md or at least one other markdown/text file.
func Load(dir string) (*types.CandidateProfile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &LoadError{Path: dir, Message: "profile directory not found", Cause: err}
	}
	if !info.IsDir() {
		return nil, &LoadError{Path: dir, Message: "not a directory"}
	}

	var candidate types.CandidateProfile

	// Structured contact info, if present.
	yamlPath := filepath.Join(dir, ProfileFilename)
	if data, err := os.ReadFile(yamlPath); err == nil {
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			return nil, &LoadError{Path: yamlPath, Message: "failed to parse profile YAML", Cause: err}
		}
	} else if !os.IsNotExist(err) {
		return nil, &LoadError{Path: yamlPath, Message: "failed to read profile YAML", Cause: err}
	}

	contextNote, extras, err := loadNotes(dir)
	if err != nil {
		return nil, err
	}

	// Without an explicit context note, all markdown/text files become the
	// context.
	if contextNote == "" {
		contextNote = strings.Join(extras, "\n\n---\n\n")
	} else if len(extras) > 0 {
		contextNote = contextNote + "\n\n---\n\n" + strings.Join(extras, "\n\n---\n\n")
	}

	if strings.TrimSpace(contextNote) == "" {
		return nil, &LoadError{
			Path:    dir,
			Message: fmt.Sprintf("no context found: add %s or other markdown/text files", ContextNoteFilename),
		}
	}

	candidate.ContextNote = contextNote
	return &candidate, nil
}

// loadNotes reads context.md plus every other .md/.txt file, in stable
// filename order.
func loadNotes(dir string) (contextNote string, extras []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", nil, &LoadError{Path: dir, Message: "failed to read directory", Cause: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".md" && ext != ".txt" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		data, readErr := os.ReadFile(filepath.Join(dir, name))
		if readErr != nil {
			return "", nil, &LoadError{Path: filepath.Join(dir, name), Message: "failed to read file", Cause: readErr}
		}
		content := strings.TrimSpace(string(data))
		if content == "" {
			continue
		}
		if name == ContextNoteFilename {
			contextNote = content
			continue
		}
		extras = append(extras, content)
	}

	return contextNote, extras, nil
}
