// Package fetch renders pages through a headless browser.
//
// fightodds.io sits behind an anti-automation interstitial, so plain HTTP
// GETs return a challenge page instead of content. The Browser fetcher
// drives a single Chrome session, waits out the challenge, and retries with
// exponential backoff before giving up with a typed Failure.
package fetch

import (
	"context"
	"fmt"
	"strings"
)

// Fetcher renders a URL and returns its HTML.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Failure reports a fetch whose retry budget is exhausted. Callers treat it
// as event-scoped: the event is skipped, the run continues.
type Failure struct {
	URL      string
	Attempts int
	Err      error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("fetching %s failed after %d attempts: %v", f.URL, f.Attempts, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// isChallenge reports whether rendered HTML is still the anti-automation
// interstitial rather than page content.
func isChallenge(html string) bool {
	lower := strings.ToLower(html)
	return strings.Contains(lower, "cloudflare") && strings.Contains(lower, "checking your browser")
}
