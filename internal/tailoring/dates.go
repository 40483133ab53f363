package tailoring

import (
	"regexp"
	"strings"
)

// PresentMarker is the only permitted representation of an ongoing entry.
const PresentMarker = "present"

var yearMonthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// presentAliases maps informal ongoing markers to PresentMarker.
var presentAliases = map[string]bool{
	"present":     true,
	"current":     true,
	"currently":   true,
	"now":         true,
	"ongoing":     true,
	"today":       true,
	"aujourd'hui": true,
	"en cours":    true,
}

// monthNumbers covers English and French month names, full and abbreviated.
var monthNumbers = map[string]string{
	"january": "01", "jan": "01", "janvier": "01",
	"february": "02", "feb": "02", "fevrier": "02", "février": "02",
	"march": "03", "mar": "03", "mars": "03",
	"april": "04", "apr": "04", "avril": "04",
	"may": "05", "mai": "05",
	"june": "06", "jun": "06", "juin": "06",
	"july": "07", "jul": "07", "juillet": "07",
	"august": "08", "aug": "08", "aout": "08", "août": "08",
	"september": "09", "sep": "09", "sept": "09", "septembre": "09",
	"october": "10", "oct": "10", "octobre": "10",
	"november": "11", "nov": "11", "novembre": "11",
	"december": "12", "dec": "12", "decembre": "12", "décembre": "12",
}

var (
	yearMonthDay = regexp.MustCompile(`^(\d{4})-(\d{2})-\d{2}$`) // YYYY-MM-DD
	slashYM      = regexp.MustCompile(`^(\d{4})/(\d{1,2})$`)     // YYYY/MM
	slashMY      = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)     // MM/YYYY
	looseYM      = regexp.MustCompile(`^(\d{4})[-.](\d{1,2})$`)  // YYYY-M, YYYY.MM
	monthYear    = regexp.MustCompile(`^([A-Za-zÀ-ÿ]+)\.?,?\s+(\d{4})$`)
)

// NormalizeDate maps common date spellings onto the two permitted tokens:
// "YYYY-MM" or "present". Inputs it cannot resolve are returned trimmed and
// unchanged, so the format check catches them instead of a silent guess.
func NormalizeDate(date string) string {
	trimmed := strings.TrimSpace(date)
	if trimmed == "" {
		return ""
	}

	if presentAliases[strings.ToLower(trimmed)] {
		return PresentMarker
	}

	if yearMonthPattern.MatchString(trimmed) {
		return trimmed
	}

	if m := yearMonthDay.FindStringSubmatch(trimmed); m != nil {
		return m[1] + "-" + m[2]
	}
	if m := slashYM.FindStringSubmatch(trimmed); m != nil {
		return m[1] + "-" + pad(m[2])
	}
	if m := slashMY.FindStringSubmatch(trimmed); m != nil {
		return m[2] + "-" + pad(m[1])
	}
	if m := looseYM.FindStringSubmatch(trimmed); m != nil {
		return m[1] + "-" + pad(m[2])
	}
	if m := monthYear.FindStringSubmatch(trimmed); m != nil {
		if num, ok := monthNumbers[strings.ToLower(m[1])]; ok {
			return m[2] + "-" + num
		}
	}

	return trimmed
}

// IsValidDate reports whether a date field holds one of the two permitted
// representations.
func IsValidDate(date string) bool {
	return date == PresentMarker || yearMonthPattern.MatchString(date)
}

func pad(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
