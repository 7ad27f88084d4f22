// Package card resolves an event's fight-card page into the authoritative
// roster and bout order.
//
// The card page lists bouts in display order under section headings (main
// card first, then preliminaries, then cancelled bouts). The resolver walks
// sections top-down assigning a shared order number to both sides of each
// bout; cancelled bouts carry order 0 and do not advance the counter.
package card

import (
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/mma-odds/internal/dom"
	"github.com/pfrederiksen/mma-odds/internal/match"
)

// ErrNoRoster reports a card page with no recoverable bouts. The caller
// must treat this as event-level failure: odds for the event cannot be
// trusted without a roster.
var ErrNoRoster = errors.New("card: no recoverable bouts")

// Card is the resolved fight card for one event.
type Card struct {
	// Roster holds fighter names in card order with their published
	// casing, two names per bout.
	Roster []string
	// Order maps normalized (lower-case) fighter names to bout order.
	// 1 is the main event; 0 marks a cancelled bout.
	Order map[string]int
}

// section groups the card rows under one heading.
type section struct {
	sel       *goquery.Selection
	cancelled bool
}

var sectionHeadings = []struct {
	re        *regexp.Regexp
	cancelled bool
}{
	{regexp.MustCompile(`(?i)MAIN\s+CARD`), false},
	{regexp.MustCompile(`(?i)PRELIMINARY`), false},
	{regexp.MustCompile(`(?i)CANCELLED`), true},
}

var (
	connectiveRe = regexp.MustCompile(`(?i)\bvs\.?\b|\bversus\b`)
	cancelledRe  = regexp.MustCompile(`(?i)cancel`)
)

// uiLabels are short element texts on card rows that are never fighter
// names.
var uiLabels = map[string]bool{
	"odds":      true,
	"news":      true,
	"breakdown": true,
	"info":      true,
	"fights":    true,
	"event":     true,
}

// Resolve parses a rendered card page. When no section headings are found
// the whole page is treated as a single unlabeled section; when no bouts
// are recoverable at all it returns ErrNoRoster.
func Resolve(r io.Reader) (*Card, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, ErrNoRoster
	}

	sections := findSections(doc)
	if len(sections) == 0 {
		sections = []section{{sel: doc.Selection}}
	}

	c := &Card{Order: make(map[string]int)}
	seenPairs := make(map[string]bool)
	nextOrder := 1

	for _, sec := range sections {
		sec.sel.Find("tr, div").Each(func(_ int, row *goquery.Selection) {
			// Rendered pages arrive without inter-tag whitespace, so
			// plain Text() would glue "vs" onto the names around it.
			text := dom.JoinedText(row)
			if !connectiveRe.MatchString(text) {
				return
			}
			a, b, ok := fighterPair(row)
			if !ok {
				return
			}

			pairKey := match.Normalize(a) + "|" + match.Normalize(b)
			if seenPairs[pairKey] {
				return
			}
			keyA, keyB := match.Normalize(a), match.Normalize(b)
			if _, dup := c.Order[keyA]; dup {
				return
			}
			if _, dup := c.Order[keyB]; dup {
				return
			}
			seenPairs[pairKey] = true

			order := nextOrder
			if sec.cancelled || cancelledRe.MatchString(text) {
				order = 0
			} else {
				nextOrder++
			}

			c.Roster = append(c.Roster, a, b)
			c.Order[keyA] = order
			c.Order[keyB] = order
		})
	}

	if len(c.Roster) == 0 {
		return nil, ErrNoRoster
	}
	return c, nil
}

// findSections locates labeled card sections in prominence order: main
// card first, preliminaries next, cancelled last.
func findSections(doc *goquery.Document) []section {
	var sections []section
	seen := make(map[any]bool)
	for _, h := range sectionHeadings {
		for _, heading := range dom.DeepestMatching(doc.Selection, h.re) {
			container := dom.Container(heading.Parent())
			if container.Length() == 0 {
				continue
			}
			node := container.Get(0)
			if seen[node] {
				continue
			}
			seen[node] = true
			sections = append(sections, section{sel: container, cancelled: h.cancelled})
		}
	}
	return sections
}

// fighterPair extracts the first two plausible fighter names from a bout
// row, skipping UI labels and combined "A vs B" wrappers.
func fighterPair(row *goquery.Selection) (string, string, bool) {
	var names []string
	row.Find("a, span, div").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text := dom.JoinedText(el)
		if !plausibleName(text) {
			return true
		}
		if len(names) > 0 && names[0] == text {
			return true
		}
		names = append(names, text)
		return len(names) < 2
	})
	if len(names) < 2 {
		return "", "", false
	}
	return names[0], names[1], true
}

func plausibleName(text string) bool {
	if len(text) <= 2 || len(text) > 50 {
		return false
	}
	if uiLabels[strings.ToLower(text)] {
		return false
	}
	if connectiveRe.MatchString(text) {
		return false
	}
	return match.Normalize(text) != ""
}
