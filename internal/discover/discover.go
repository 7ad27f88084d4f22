// Package discover parses the upcoming-events schedule page into event
// descriptors.
//
// Two passes run over the page: an anchor pass over event-detail links, and
// a text-pattern pass that recovers events announced in prose but not yet
// linked. Candidates without a numeric event id are rejected; duplicates by
// id keep the first occurrence.
package discover

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/pfrederiksen/mma-odds/internal/event"
	"github.com/pfrederiksen/mma-odds/internal/fetch"
)

var (
	eventIDRe   = regexp.MustCompile(`/mma-events/(\d+)/`)
	eventSlugRe = regexp.MustCompile(`/mma-events/\d+/([^/]+)`)
)

// Discoverer extracts events from the schedule page. The fetcher, when
// present, is used for secondary visits to event detail pages when the
// schedule row carries no date; nil disables that fallback.
type Discoverer struct {
	fetcher fetch.Fetcher
	baseURL string
	keyword string
	now     time.Time
	log     *zap.Logger

	pageDates map[string]string
}

// New creates a Discoverer for the given site root and league keyword.
func New(fetcher fetch.Fetcher, baseURL, keyword string, log *zap.Logger) *Discoverer {
	return &Discoverer{
		fetcher:   fetcher,
		baseURL:   baseURL,
		keyword:   keyword,
		now:       time.Now(),
		log:       log,
		pageDates: make(map[string]string),
	}
}

// Discover parses rendered schedule-page HTML into events in page order.
// Individual malformed candidates are skipped; an unrecognizable page
// yields an empty slice and the caller decides whether that is fatal.
func (d *Discoverer) Discover(ctx context.Context, html string) []*event.Event {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		d.log.Warn("schedule page unparseable", zap.Error(err))
		return nil
	}

	var events []*event.Event
	seenIDs := make(map[string]bool)
	seenNames := make(map[string]bool)

	// Anchor pass: every event-detail link on the page.
	doc.Find("a[href*='/mma-events/']").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		eventURL := d.resolveURL(href)
		if eventURL == "" {
			return
		}

		m := eventIDRe.FindStringSubmatch(eventURL)
		if m == nil {
			return
		}
		id := m[1]
		if seenIDs[id] {
			return
		}

		slug := ""
		if sm := eventSlugRe.FindStringSubmatch(eventURL); sm != nil {
			slug = sm[1]
		}

		inferred := strings.TrimSpace(a.Text())
		if inferred == "" {
			inferred = titleFromSlug(slug)
		}
		if !strings.Contains(strings.ToUpper(inferred), strings.ToUpper(d.keyword)) &&
			!strings.Contains(strings.ToLower(slug), strings.ToLower(d.keyword)) {
			return
		}
		name, ok := event.CleanName(inferred, d.keyword)
		if !ok {
			return
		}

		date := d.resolveDate(ctx, a, name, eventURL)

		seenIDs[id] = true
		seenNames[name] = true
		events = append(events, event.New(id, name, date, eventURL))
		d.log.Debug("found event", zap.String("id", id), zap.String("name", name), zap.String("date", date))
	})

	// Text-pattern pass: event names announced on the page without a
	// structured link of their own.
	pageText := doc.Text()
	for _, re := range d.namePatterns() {
		for _, raw := range re.FindAllString(pageText, -1) {
			name, ok := event.CleanName(raw, d.keyword)
			if !ok || seenNames[name] {
				continue
			}
			link := d.findLinkBySlug(doc, event.Slug(name))
			if link == nil {
				continue
			}
			href, _ := link.Attr("href")
			eventURL := d.resolveURL(href)
			m := eventIDRe.FindStringSubmatch(eventURL)
			if m == nil || seenIDs[m[1]] {
				continue
			}

			date := d.resolveDate(ctx, link, name, eventURL)

			seenIDs[m[1]] = true
			seenNames[name] = true
			events = append(events, event.New(m[1], name, date, eventURL))
			d.log.Debug("found event via text pattern", zap.String("id", m[1]), zap.String("name", name))
		}
	}

	return events
}

// resolveDate runs the date fallback chain: text near the link, then the
// event's own detail page, then the event name itself.
func (d *Discoverer) resolveDate(ctx context.Context, link *goquery.Selection, name, eventURL string) string {
	if row := link.Closest("tr, li, section, div"); row.Length() > 0 {
		if date := event.FindDate(row.Text(), d.now); date != "" {
			return date
		}
	}
	if date := d.eventPageDate(ctx, eventURL); date != "" {
		return date
	}
	return event.FindDate(name, d.now)
}

// eventPageDate fetches an event's detail page and scans it for a date.
// Results (including misses) are cached per URL for the run.
func (d *Discoverer) eventPageDate(ctx context.Context, eventURL string) string {
	if d.fetcher == nil || eventURL == "" {
		return ""
	}
	if cached, ok := d.pageDates[eventURL]; ok {
		return cached
	}

	html, err := d.fetcher.Fetch(ctx, eventURL)
	if err != nil {
		d.log.Debug("event page fetch failed", zap.String("url", eventURL), zap.Error(err))
		d.pageDates[eventURL] = ""
		return ""
	}

	date := DateFromEventPage(html, d.now)
	d.pageDates[eventURL] = date
	return date
}

func (d *Discoverer) resolveURL(href string) string {
	if href == "" {
		return ""
	}
	base, err := url.Parse(d.baseURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// namePatterns builds the free-text event name patterns, most specific
// first (with a trailing date token) down to a bare "KEYWORD n ... vs".
func (d *Discoverer) namePatterns() []*regexp.Regexp {
	kw := regexp.QuoteMeta(d.keyword)
	months := `(?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)`
	return []*regexp.Regexp{
		regexp.MustCompile(`(?i)` + kw + `\s+Fight\s+Night[^\n]*?vs\.?[^\n]*?` + months + `\s+\d+`),
		regexp.MustCompile(`(?i)` + kw + `\s+\d+[^\n]*?vs\.?[^\n]*?` + months + `\s+\d+`),
		regexp.MustCompile(`(?i)` + kw + `\s+Fight\s+Night[^\n]*?vs\.?\s+[A-Z][a-z]+`),
		regexp.MustCompile(`(?i)` + kw + `\s+\d+[^\n]*?vs\.?\s+[A-Z][a-z]+`),
	}
}

// findLinkBySlug locates an anchor whose event URL carries the given slug.
func (d *Discoverer) findLinkBySlug(doc *goquery.Document, slug string) *goquery.Selection {
	if slug == "" {
		return nil
	}
	re := regexp.MustCompile(`/mma-events/\d+/` + regexp.QuoteMeta(slug))
	var found *goquery.Selection
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if re.MatchString(href) {
			found = a
			return false
		}
		return true
	})
	return found
}

func titleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
