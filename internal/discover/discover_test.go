package discover

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
)

// stubFetcher serves canned HTML by URL and fails anything else.
type stubFetcher map[string]string

func (s stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	if html, ok := s[url]; ok {
		return html, nil
	}
	return "", fmt.Errorf("unexpected fetch: %s", url)
}

const eventPageJSONLD = `<html><head>
<script type="application/ld+json">
{"@type": "SportsEvent", "name": "UFC 321: Aspinall vs Gane", "startDate": "2025-10-25T18:00:00Z"}
</script>
</head><body><h1>UFC 321: Aspinall vs Gane</h1></body></html>`

func testDiscoverer(t *testing.T, fetcher stubFetcher) *Discoverer {
	t.Helper()
	d := New(fetcher, "https://fightodds.io", "UFC", zap.NewNop())
	d.now = time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC)
	return d
}

func TestDiscoverFixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/schedule_page.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	fetcher := stubFetcher{
		"https://fightodds.io/mma-events/3458/ufc-321-aspinall-vs-gane": eventPageJSONLD,
	}
	d := testDiscoverer(t, fetcher)
	events := d.Discover(context.Background(), string(data))

	if len(events) != 4 {
		for _, ev := range events {
			t.Logf("got event %s %q %s", ev.ID, ev.Name, ev.Date)
		}
		t.Fatalf("expected 4 events, got %d", len(events))
	}

	tests := []struct {
		id   string
		name string
		date string
	}{
		{"3456", "UFC 319: Du Plessis vs Chimaev", "2025-08-16"},
		{"3457", "UFC Fight Night: Lewis vs Teixeira", "2025-09-13"},
		{"3458", "UFC 321: Aspinall vs Gane", "2025-10-25"},
		{"3460", "UFC 318: Holloway vs Poirier", "2025-10-18"},
	}
	for i, tt := range tests {
		ev := events[i]
		if ev.ID != tt.id || ev.Name != tt.name || ev.Date != tt.date {
			t.Errorf("event %d = (%s, %q, %s), want (%s, %q, %s)",
				i, ev.ID, ev.Name, ev.Date, tt.id, tt.name, tt.date)
		}
	}

	// Other leagues never come through, and the duplicate link to the
	// first event keeps its first occurrence only.
	for _, ev := range events {
		if ev.ID == "9999" {
			t.Error("non-UFC event leaked through")
		}
	}
}

func TestDiscoverDerivedURLs(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/schedule_page.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	fetcher := stubFetcher{
		"https://fightodds.io/mma-events/3458/ufc-321-aspinall-vs-gane": eventPageJSONLD,
	}
	d := testDiscoverer(t, fetcher)
	events := d.Discover(context.Background(), string(data))
	if len(events) == 0 {
		t.Fatal("expected events")
	}

	ev := events[0]
	if ev.URL != "https://fightodds.io/mma-events/3456/ufc-319-du-plessis-vs-chimaev" {
		t.Errorf("unexpected event URL: %s", ev.URL)
	}
	if ev.CardURL != ev.URL+"/fights" {
		t.Errorf("unexpected card URL: %s", ev.CardURL)
	}
	if ev.OddsURL != ev.URL+"/odds" {
		t.Errorf("unexpected odds URL: %s", ev.OddsURL)
	}
}

func TestDiscoverEmptyPage(t *testing.T) {
	d := testDiscoverer(t, stubFetcher{})
	events := d.Discover(context.Background(), "<html><body><p>maintenance</p></body></html>")
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}

func TestDateFromEventPage(t *testing.T) {
	now := time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		html string
		want string
	}{
		{"json-ld", eventPageJSONLD, "2025-10-25"},
		{"meta tag", `<html><head><meta name="event_date" content="2025-11-01"></head><body></body></html>`, "2025-11-01"},
		{"visible text", `<html><body><h1>UFC 322 November 15, 2025</h1></body></html>`, "2025-11-15"},
		{"nothing", `<html><body><p>no date here</p></body></html>`, ""},
	}
	for _, tt := range tests {
		if got := DateFromEventPage(tt.html, now); got != tt.want {
			t.Errorf("%s: DateFromEventPage = %q, want %q", tt.name, got, tt.want)
		}
	}
}
