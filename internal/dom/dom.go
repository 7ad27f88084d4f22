// Package dom provides the structural traversal helpers the parsing
// packages share: locating the deepest elements carrying a text marker and
// walking outward from a node to the nearest table.
package dom

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// JoinedText returns sel's descendant text nodes joined with single
// spaces. goquery's Text concatenates text nodes with no separator, which
// glues adjacent words together on compact rendered markup
// ("Alpha OnevsBravo One"); joining keeps word boundaries intact for
// substring and word-boundary checks.
func JoinedText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// DeepestMatching returns the deepest elements whose text matches re, in
// document order. An element qualifies when its text matches but none of
// its children's text does, which pins headings and labels to the node
// that actually holds them instead of every ancestor.
func DeepestMatching(root *goquery.Selection, re *regexp.Regexp) []*goquery.Selection {
	var out []*goquery.Selection
	root.Find("*").Each(func(_ int, s *goquery.Selection) {
		if !re.MatchString(s.Text()) {
			return
		}
		childMatches := false
		s.Children().EachWithBreak(func(_ int, c *goquery.Selection) bool {
			if re.MatchString(c.Text()) {
				childMatches = true
				return false
			}
			return true
		})
		if !childMatches {
			out = append(out, s)
		}
	})
	return out
}

// NearestTable returns the table closest to sel in ancestry order: the
// table containing sel if there is one, otherwise the first table found
// under progressively wider ancestors. Returns nil when the document holds
// no table reachable this way.
func NearestTable(sel *goquery.Selection) *goquery.Selection {
	if t := sel.Closest("table"); t.Length() > 0 {
		return t
	}
	for p := sel.Parent(); p.Length() > 0; p = p.Parent() {
		if t := p.Find("table").First(); t.Length() > 0 {
			return t
		}
	}
	return nil
}

// Container returns the nearest ancestor of sel that acts as a section
// container, falling back to sel itself.
func Container(sel *goquery.Selection) *goquery.Selection {
	if c := sel.Closest("section, table, tbody, div"); c.Length() > 0 {
		return c
	}
	return sel
}
