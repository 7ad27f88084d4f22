package odds

import (
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/pfrederiksen/mma-odds/internal/event"
)

var testBooks = []string{"DraftKings", "FanDuel", "BetMGM"}

func testEvent() *event.Event {
	return event.New("3456", "UFC 319: Du Plessis vs Chimaev", "2025-08-16",
		"https://fightodds.io/mma-events/3456/ufc-319-du-plessis-vs-chimaev")
}

func TestExtractFixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/odds_page.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	e := New(testBooks, zap.NewNop())
	rows, books := e.Extract(strings.NewReader(string(data)), testEvent(), "UFC")

	if len(books) != 3 || books[0] != "DraftKings" || books[1] != "FanDuel" || books[2] != "BetMGM" {
		t.Fatalf("unexpected books: %v", books)
	}

	// The scoped table has 5 fighter rows; the other event's table on the
	// same page must not leak in.
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d: %+v", len(rows), rows)
	}
	for _, row := range rows {
		if row.Name == "Magomed Ankalaev" || row.Name == "Alex Pereira" {
			t.Errorf("row from other event leaked in: %s", row.Name)
		}
	}

	byName := make(map[string]Row)
	for _, row := range rows {
		byName[row.Name] = row
	}

	if got := byName["Dricus Du Plessis"].Prices["DraftKings"]; got != "+240" {
		t.Errorf("Du Plessis DraftKings = %q, want +240", got)
	}
	if got := byName["K. Chimaev"].Prices["FanDuel"]; got != "-310" {
		t.Errorf("Chimaev FanDuel = %q, want -310", got)
	}
	// Blank and unparseable cells come through as empty strings.
	if got := byName["Lerone Murphy"].Prices["FanDuel"]; got != "" {
		t.Errorf("Murphy FanDuel = %q, want empty", got)
	}
	if got := byName["Aaron Pico"].Prices["FanDuel"]; got != "" {
		t.Errorf("Pico FanDuel = %q, want empty", got)
	}
}

func TestHeadersFromImages(t *testing.T) {
	html := `<html><body>
	<table>
	<thead><tr>
	<th>Fighters</th>
	<th><img src="/dk.png" alt="DraftKings"></th>
	<th><img src="/fd.png" alt="FanDuel"></th>
	</tr></thead>
	<tbody>
	<tr><td>Alpha Fighter</td><td>-150</td><td>-145</td></tr>
	</tbody>
	</table>
	</body></html>`

	e := New(testBooks, zap.NewNop())
	rows, books := e.Extract(strings.NewReader(html), testEvent(), "UFC")

	if len(books) != 2 || books[0] != "DraftKings" || books[1] != "FanDuel" {
		t.Fatalf("unexpected books: %v", books)
	}
	if len(rows) != 1 || rows[0].Prices["DraftKings"] != "-150" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestHeadersFallback(t *testing.T) {
	html := `<html><body>
	<table>
	<tr><td>Odds</td><td>a</td></tr>
	<tr><td>Alpha Fighter</td><td>-150</td><td>+200</td></tr>
	</table>
	</body></html>`

	fallback := []string{"BetOnline", "Bovada"}
	e := New(fallback, zap.NewNop())
	rows, books := e.Extract(strings.NewReader(html), testEvent(), "UFC")

	if len(books) != 2 || books[0] != "BetOnline" {
		t.Fatalf("expected fallback books, got %v", books)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Prices["BetOnline"] != "-150" || rows[0].Prices["Bovada"] != "+200" {
		t.Errorf("unexpected prices: %v", rows[0].Prices)
	}
}

func TestExtractScanAllTables(t *testing.T) {
	// No marker for the event anywhere: every table is scanned and exact
	// duplicate names collapse.
	html := `<html><body>
	<table>
	<tr><th>Fighters</th><th>DraftKings</th></tr>
	<tr><td>Alpha Fighter</td><td>-150</td></tr>
	</table>
	<table>
	<tr><td>x</td><td>y</td></tr>
	<tr><td>Alpha Fighter</td><td>-155</td></tr>
	<tr><td>Bravo Fighter</td><td>+130</td></tr>
	</table>
	</body></html>`

	e := New(testBooks, zap.NewNop())
	rows, _ := e.Extract(strings.NewReader(html), testEvent(), "UFC")

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(rows), rows)
	}
	if rows[0].Name != "Alpha Fighter" || rows[0].Prices["DraftKings"] != "-150" {
		t.Errorf("first occurrence should win: %+v", rows[0])
	}
}

func TestExtractEmptyPage(t *testing.T) {
	e := New(testBooks, zap.NewNop())
	rows, _ := e.Extract(strings.NewReader("<html><body></body></html>"), testEvent(), "UFC")
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %+v", rows)
	}
}
