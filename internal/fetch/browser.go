package fetch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/pfrederiksen/mma-odds/internal/config"
)

var errChallenge = errors.New("anti-automation challenge not cleared")

// Browser is a chromedp-backed Fetcher. It owns one browser session; page
// loads are serialized so only one tab renders at a time.
type Browser struct {
	mu            sync.Mutex
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	retries     int
	pageTimeout time.Duration
	settle      time.Duration
	log         *zap.Logger
}

// NewBrowser starts a headless Chrome allocator configured like the browser
// the site expects to see.
func NewBrowser(cfg config.FetchConfig, log *zap.Logger) (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(cfg.UserAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser up front so a broken Chrome install fails the run
	// immediately instead of on the first page.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	return &Browser{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		retries:       cfg.Retries,
		pageTimeout:   cfg.PageTimeout,
		settle:        cfg.Settle,
		log:           log,
	}, nil
}

// Close shuts the browser session down.
func (b *Browser) Close() {
	b.browserCancel()
	b.allocCancel()
}

// Fetch navigates to url, waits for scripts (and the interstitial) to
// settle, and returns the rendered HTML. Transient errors and uncleared
// challenges are retried with exponential backoff; exhaustion returns a
// *Failure.
func (b *Browser) Fetch(ctx context.Context, url string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	attempts := 0
	var html string

	op := func() error {
		attempts++
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}

		tabCtx, cancel := context.WithTimeout(b.browserCtx, b.pageTimeout)
		defer cancel()

		var out string
		err := chromedp.Run(tabCtx,
			chromedp.Navigate(url),
			chromedp.Sleep(b.settle),
			chromedp.OuterHTML("html", &out),
		)
		if err != nil {
			b.log.Debug("page load failed", zap.String("url", url), zap.Int("attempt", attempts), zap.Error(err))
			return fmt.Errorf("rendering page: %w", err)
		}
		if isChallenge(out) {
			b.log.Debug("challenge not cleared", zap.String("url", url), zap.Int("attempt", attempts))
			return errChallenge
		}
		html = out
		return nil
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(b.retries)),
		ctx,
	)
	if err := backoff.Retry(op, bo); err != nil {
		return "", &Failure{URL: url, Attempts: attempts, Err: err}
	}

	b.log.Debug("page rendered", zap.String("url", url), zap.Int("attempt", attempts), zap.Int("bytes", len(html)))
	return html, nil
}
