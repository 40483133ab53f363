package llm

import "strings"

// CleanJSONBlock strips a surrounding markdown code fence from a model
// response. Models wrap JSON in ```json ... ``` fences often enough, even
// when told not to, that every JSON path runs through this.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	rest := strings.TrimPrefix(text, "```")

	// The fence may open with a language tag ("json", "yaml") on its own
	// line. Anything long or containing spaces or braces is payload.
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		tag := strings.TrimSpace(rest[:nl])
		if tag == "" || (len(tag) < 20 && !strings.ContainsAny(tag, " {")) {
			rest = rest[nl+1:]
		}
	} else {
		rest = strings.TrimPrefix(rest, "json")
	}

	if end := strings.LastIndex(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
