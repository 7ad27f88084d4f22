// Package output assembles the final record set and writes the two output
// files. Both files are fully overwritten each run; there is no history.
package output

import (
	"sort"

	"github.com/pfrederiksen/mma-odds/internal/reconcile"
)

// SportsbookUnion computes the ordered union of price sources for the run:
// first-seen order over the per-event column lists (events in discovery
// order), then any stray keys present on records but absent from every
// column list, sorted for determinism.
func SportsbookUnion(bookLists [][]string, records []reconcile.Record) []string {
	seen := make(map[string]bool)
	var union []string
	for _, books := range bookLists {
		for _, b := range books {
			if b != "" && !seen[b] {
				seen[b] = true
				union = append(union, b)
			}
		}
	}

	var strays []string
	for _, rec := range records {
		for b := range rec.Odds {
			if b != "" && !seen[b] {
				seen[b] = true
				strays = append(strays, b)
			}
		}
	}
	sort.Strings(strays)
	return append(union, strays...)
}

// Project re-keys every record's price map onto the fixed sportsbook
// union, filling absent sources with empty values so tabular output has a
// stable shape.
func Project(records []reconcile.Record, books []string) {
	for i := range records {
		projected := make(map[string]string, len(books))
		for _, b := range books {
			projected[b] = records[i].Odds[b]
		}
		records[i].Odds = projected
	}
}
