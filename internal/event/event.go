package event

import (
	"regexp"
	"strings"
)

// Event describes one scheduled fight card discovered on the schedule page.
// Events are immutable once created; the discoverer deduplicates by ID with
// first occurrence winning.
type Event struct {
	ID      string `json:"event_id"`
	Name    string `json:"event_name"`
	Date    string `json:"event_date"`
	URL     string `json:"event_url"`
	CardURL string `json:"card_url"`
	OddsURL string `json:"odds_url"`
}

// New builds an Event from its canonical page URL. The card and odds page
// URLs are derived from the canonical URL rather than followed from on-page
// links, so redirects cannot drift them onto another event.
func New(id, name, date, eventURL string) *Event {
	base := strings.TrimRight(eventURL, "/")
	return &Event{
		ID:      id,
		Name:    name,
		Date:    date,
		URL:     eventURL,
		CardURL: base + "/fights",
		OddsURL: base + "/odds",
	}
}

// Token returns the short disambiguation token for the event, like
// "UFC 319" when the name carries a numbered designation, otherwise the
// full name.
func (e *Event) Token(keyword string) string {
	re := regexp.MustCompile(`(?i)(` + regexp.QuoteMeta(keyword) + `\s+\d+)`)
	if m := re.FindString(e.Name); m != "" {
		return m
	}
	return e.Name
}

// Residual navigation/footer text that leaks into scraped event names.
var nameJunk = []*regexp.Regexp{
	regexp.MustCompile(`(?i)FightersBetOnlineBovada.*$`),
	regexp.MustCompile(`(?i)EVENT INFOFIGHT CARD.*$`),
	regexp.MustCompile(`(?i)More Events.*$`),
	regexp.MustCompile(`(?i)LoginRegister.*$`),
	regexp.MustCompile(`(?i)Track Lines Breakdown.*$`),
	regexp.MustCompile(`(?i)You must be 18.*$`),
}

var whitespace = regexp.MustCompile(`\s+`)

// CleanName strips scraping artifacts from an event name and reports
// whether the result still looks like a real event: long enough and
// carrying the league keyword.
func CleanName(raw, keyword string) (string, bool) {
	name := whitespace.ReplaceAllString(raw, " ")
	for _, re := range nameJunk {
		name = re.ReplaceAllString(name, "")
	}
	name = strings.TrimSpace(whitespace.ReplaceAllString(name, " "))

	if len(name) <= 10 {
		return "", false
	}
	if !strings.Contains(strings.ToUpper(name), strings.ToUpper(keyword)) {
		return "", false
	}
	return name, true
}

// Slug converts an event name to the URL slug form used in event links.
func Slug(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, ":", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
	return strings.ReplaceAll(s, " ", "-")
}
