package discover

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/mma-odds/internal/event"
)

// pageDateStrategy is one named attempt at pulling a date out of an event
// detail page. Strategies run in order; the first hit wins.
type pageDateStrategy struct {
	name    string
	extract func(doc *goquery.Document, now time.Time) string
}

var pageDateStrategies = []pageDateStrategy{
	{"json-ld", dateFromJSONLD},
	{"meta-tags", dateFromMetaTags},
	{"visible-text", dateFromVisibleText},
}

// DateFromEventPage scans a rendered event detail page for its date:
// structured JSON-LD first, then metadata tags, then visible header text.
// Returns "" when nothing parses.
func DateFromEventPage(html string, now time.Time) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	for _, st := range pageDateStrategies {
		if date := st.extract(doc, now); date != "" {
			return date
		}
	}
	return ""
}

var jsonLDDateKeys = []string{"startDate", "datePublished", "dateCreated", "date"}

func dateFromJSONLD(doc *goquery.Document, now time.Time) string {
	date := ""
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var payload interface{}
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return true
		}

		objects := []interface{}{payload}
		if list, ok := payload.([]interface{}); ok {
			objects = list
		}
		for _, obj := range objects {
			m, ok := obj.(map[string]interface{})
			if !ok {
				continue
			}
			for _, key := range jsonLDDateKeys {
				raw, ok := m[key].(string)
				if !ok || raw == "" {
					continue
				}
				if d := event.NormalizeDate(raw, now); d != "" {
					date = d
					return false
				}
			}
		}
		return true
	})
	return date
}

var metaDateNames = []string{"event_date", "date", "pubdate", "og:pubdate", "article:published_time"}

func dateFromMetaTags(doc *goquery.Document, now time.Time) string {
	for _, name := range metaDateNames {
		sel := doc.Find(`meta[name="` + name + `"], meta[property="` + name + `"]`).First()
		if sel.Length() == 0 {
			continue
		}
		content, _ := sel.Attr("content")
		if d := event.NormalizeDate(content, now); d != "" {
			return d
		}
	}
	return ""
}

func dateFromVisibleText(doc *goquery.Document, now time.Time) string {
	header := doc.Find("h1, h2, h3").First().Text()
	body := doc.Text()
	if len(body) > 2000 {
		body = body[:2000]
	}
	return event.FindDate(header+" "+body, now)
}
