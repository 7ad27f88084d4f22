package event

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateStrategy is one named attempt at turning raw text into an ISO date.
// Strategies run in order; the first success wins.
type dateStrategy struct {
	name  string
	parse func(s string, now time.Time) (string, bool)
}

var dateStrategies = []dateStrategy{
	{"iso-prefix", parseISOPrefix},
	{"known-layouts", parseKnownLayouts},
	{"month-day", parseMonthDay},
}

// NormalizeDate converts a scraped date string to YYYY-MM-DD. It accepts
// "January 25, 2025", "Jan 25, 2025", "2025-01-25" (with or without a time
// part), "Jan 25 2025" and bare "Jan 25" forms. Returns "" when nothing
// parses.
func NormalizeDate(s string, now time.Time) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, " ", " "))
	if s == "" {
		return ""
	}
	for _, st := range dateStrategies {
		if out, ok := st.parse(s, now); ok {
			return out
		}
	}
	return ""
}

// parseISOPrefix handles "2025-01-25" and full timestamps like JSON-LD
// startDate values ("2025-01-25T18:00:00Z").
func parseISOPrefix(s string, _ time.Time) (string, bool) {
	if len(s) < 10 {
		return "", false
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

var dateLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
}

func parseKnownLayouts(s string, _ time.Time) (string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

var monthDayRe = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+(\d{1,2})(?:,?\s*(\d{4}))?`)

// parseMonthDay handles "Jan 25", "JAN 25", "Oct. 18" and similar forms in
// any casing, with an optional trailing year. Without a year the date is
// placed in the current year, rolling to next year once it is more than a
// week in the past.
func parseMonthDay(s string, now time.Time) (string, bool) {
	m := monthDayRe.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	monthName := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:3])
	mt, err := time.Parse("Jan", monthName)
	if err != nil {
		return "", false
	}
	day, err := strconv.Atoi(m[2])
	if err != nil || day < 1 || day > 31 {
		return "", false
	}

	if m[3] != "" {
		year, _ := strconv.Atoi(m[3])
		return fmt.Sprintf("%04d-%02d-%02d", year, mt.Month(), day), true
	}

	candidate := time.Date(now.Year(), mt.Month(), day, 0, 0, 0, 0, time.UTC)
	if candidate.Before(now.AddDate(0, 0, -7)) {
		candidate = candidate.AddDate(1, 0, 0)
	}
	return candidate.Format("2006-01-02"), true
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)\.?\s+\d{1,2}(?:,\s*\d{4})?`),
	regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+\d{1,2}(?:,\s*\d{4})?`),
}

// FindDate scans free text (a table row, a page header, an event name) for
// the first recognizable date token and normalizes it. Returns "" when the
// text carries no date.
func FindDate(text string, now time.Time) string {
	for _, re := range datePatterns {
		if m := re.FindString(text); m != "" {
			if d := NormalizeDate(m, now); d != "" {
				return d
			}
		}
	}
	return ""
}
