// Package odds extracts raw price rows from an event's odds page.
//
// The odds page is a wide table: one fighter per row, one sportsbook per
// column. Column headers, when present, name the books; header-less pages
// fall back to image alt text and finally to a configured list of known
// books. Rows are returned raw; matching against the card roster happens
// downstream.
package odds

import (
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/pfrederiksen/mma-odds/internal/dom"
	"github.com/pfrederiksen/mma-odds/internal/event"
)

// Row is one scraped odds-table row: the fighter name as printed and the
// price string per sportsbook (signed integer token, or "" when the cell
// was blank or unparseable).
type Row struct {
	Name   string
	Prices map[string]string
}

// Extractor parses odds pages. fallbackBooks is used when a page exposes
// no readable column headers.
type Extractor struct {
	fallbackBooks []string
	log           *zap.Logger
}

// New creates an Extractor with the given fallback sportsbook list.
func New(fallbackBooks []string, log *zap.Logger) *Extractor {
	return &Extractor{fallbackBooks: fallbackBooks, log: log}
}

// Extract parses a rendered odds page into raw rows for the given event,
// along with the resolved sportsbook column order. Total parse failure
// yields an empty slice, never an error: a missing odds table means
// unpriced bouts, not a broken run.
func (e *Extractor) Extract(r io.Reader, ev *event.Event, keyword string) ([]Row, []string) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		e.log.Warn("odds page unparseable", zap.String("event", ev.Name), zap.Error(err))
		return nil, nil
	}

	books := e.resolveHeaders(doc)

	// Prefer a table scoped to this event's own heading; multiple events
	// can share one rendered page and the largest table is not reliably
	// ours.
	if table := findEventTable(doc, ev, keyword); table != nil {
		return parseTable(table, books), books
	}

	// No scoped table: scan everything and rely on downstream roster
	// filtering to discard rows that belong to other events.
	e.log.Debug("no event-scoped odds table, scanning all tables", zap.String("event", ev.Name))
	var rows []Row
	seen := make(map[string]bool)
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		for _, row := range parseTable(table, books) {
			if seen[row.Name] {
				continue
			}
			seen[row.Name] = true
			rows = append(rows, row)
		}
	})
	return rows, books
}

// headerStrategy is one named attempt at resolving the sportsbook column
// headers. Strategies run in order; the first non-empty result wins.
type headerStrategy struct {
	name    string
	resolve func(doc *goquery.Document) []string
}

var headerStrategies = []headerStrategy{
	{"header-cells", headersFromCells},
	{"header-images", headersFromImages},
}

func (e *Extractor) resolveHeaders(doc *goquery.Document) []string {
	for _, st := range headerStrategies {
		if books := st.resolve(doc); len(books) > 0 {
			return dedupe(books)
		}
	}
	// Best effort: columns may mis-align on books this list has never
	// seen.
	e.log.Debug("no readable odds headers, using fallback sportsbook list")
	return e.fallbackBooks
}

func headersFromCells(doc *goquery.Document) []string {
	var books []string
	doc.Find("th").Each(func(_ int, th *goquery.Selection) {
		text := strings.TrimSpace(th.Text())
		if len(text) > 1 && !nonNameLabels[strings.ToLower(text)] {
			books = append(books, text)
		}
	})
	return books
}

func headersFromImages(doc *goquery.Document) []string {
	var books []string
	doc.Find("thead tr img[alt], tr.header img[alt]").Each(func(_ int, img *goquery.Selection) {
		alt, _ := img.Attr("alt")
		alt = strings.TrimSpace(alt)
		if alt != "" && !nonNameLabels[strings.ToLower(alt)] {
			books = append(books, alt)
		}
	})
	return books
}

// findEventTable locates the odds table nearest to a heading or text node
// carrying the event's name or short token.
func findEventTable(doc *goquery.Document, ev *event.Event, keyword string) *goquery.Selection {
	tokens := []string{ev.Name}
	if short := ev.Token(keyword); short != ev.Name {
		tokens = append(tokens, short)
	}
	for _, token := range tokens {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(token))
		for _, marker := range dom.DeepestMatching(doc.Selection, re) {
			if table := dom.NearestTable(marker); table != nil {
				return table
			}
		}
	}
	return nil
}

var priceRe = regexp.MustCompile(`[+-]\d+`)

// nonNameLabels are first-cell or header texts that are never fighter or
// sportsbook names.
var nonNameLabels = map[string]bool{
	"fighters": true,
	"fighter":  true,
	"props":    true,
	"events":   true,
}

// parseTable reads one odds table: first cell is the fighter name, the
// remaining cells align positionally with books. Exact duplicate names
// within a table collapse to the first occurrence.
func parseTable(table *goquery.Selection, books []string) []Row {
	var rows []Row
	seen := make(map[string]bool)

	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return // header row
		}
		cells := tr.Find("td, th")
		if cells.Length() < 2 {
			return
		}

		name := strings.TrimSpace(cells.Eq(0).Text())
		if len(name) < 3 || nonNameLabels[strings.ToLower(name)] || seen[name] {
			return
		}
		seen[name] = true

		row := Row{Name: name, Prices: make(map[string]string)}
		for j, book := range books {
			cell := j + 1
			if cell >= cells.Length() {
				break
			}
			row.Prices[book] = priceRe.FindString(cells.Eq(cell).Text())
		}
		rows = append(rows, row)
	})
	return rows
}

func dedupe(books []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, b := range books {
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out
}
