// Package prompts loads the LLM prompt templates embedded with the binary.
// Each JSON file maps prompt keys to template strings; templates use
// {{.Name}} placeholders filled in by Format.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

var (
	mu     sync.Mutex
	loaded = make(map[string]map[string]string)
)

// Get returns the template stored under key in the given file.
// The filename is bare, without a path (e.g. "extraction.json").
func Get(filename, key string) (string, error) {
	file, err := loadFile(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := file[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for templates the program cannot run without.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// GetForLanguage returns the "<key>-<lang>" variant of a template when one
// exists (e.g. "tailor-resume-fr") and the base template otherwise.
func GetForLanguage(filename, key, lang string) (string, error) {
	if lang != "" {
		if prompt, err := Get(filename, key+"-"+lang); err == nil {
			return prompt, nil
		}
	}
	return Get(filename, key)
}

// Format substitutes {{.Name}} placeholders with values from data.
// Placeholders without a matching entry are left in place.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for name, value := range data {
		pairs = append(pairs, "{{."+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// List returns the prompt keys defined in a file.
func List(filename string) ([]string, error) {
	file, err := loadFile(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(file))
	for key := range file {
		keys = append(keys, key)
	}
	return keys, nil
}

// ClearCache drops all parsed files. Tests use it to force reparsing.
func ClearCache() {
	mu.Lock()
	loaded = make(map[string]map[string]string)
	mu.Unlock()
}

func loadFile(filename string) (map[string]string, error) {
	mu.Lock()
	defer mu.Unlock()

	if file, ok := loaded[filename]; ok {
		return file, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var file map[string]string
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}
	loaded[filename] = file
	return file, nil
}
