// Package pipeline wires the run together: discover events, resolve each
// event's card and odds pages, reconcile, and aggregate.
//
// Events are processed sequentially in discovery order. The fetcher wraps
// a single browser session so there is nothing to parallelize at the page
// level, and a fixed merge order keeps cross-event collision winners
// reproducible between runs. Each event's fetching runs under its own
// context timeout so one hung page cannot stall the whole run.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pfrederiksen/mma-odds/internal/card"
	"github.com/pfrederiksen/mma-odds/internal/config"
	"github.com/pfrederiksen/mma-odds/internal/discover"
	"github.com/pfrederiksen/mma-odds/internal/event"
	"github.com/pfrederiksen/mma-odds/internal/fetch"
	"github.com/pfrederiksen/mma-odds/internal/match"
	"github.com/pfrederiksen/mma-odds/internal/odds"
	"github.com/pfrederiksen/mma-odds/internal/output"
	"github.com/pfrederiksen/mma-odds/internal/reconcile"
)

// Result is everything one run produced.
type Result struct {
	Events        []*event.Event
	Records       []reconcile.Record
	Sportsbooks   []string
	Stats         reconcile.Stats
	EventsSkipped int
}

// Pipeline runs the full extraction against a Fetcher.
type Pipeline struct {
	cfg     *config.Config
	fetcher fetch.Fetcher
	log     *zap.Logger
}

// New creates a Pipeline.
func New(cfg *config.Config, fetcher fetch.Fetcher, log *zap.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, fetcher: fetcher, log: log}
}

// Run executes one full extraction. Only a failure to load the schedule
// page is fatal; per-event failures skip that event and the run continues.
// A run that discovers nothing returns an empty Result, not an error: the
// caller owns the exit-code policy.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	scheduleHTML, err := p.fetcher.Fetch(ctx, p.cfg.ScheduleURL)
	if err != nil {
		return nil, fmt.Errorf("loading schedule page: %w", err)
	}

	disc := discover.New(p.fetcher, p.cfg.BaseURL, p.cfg.LeagueKeyword, p.log)
	events := disc.Discover(ctx, scheduleHTML)
	p.log.Info("events discovered", zap.Int("count", len(events)))

	matcher := match.New(p.cfg.Match.Threshold, p.cfg.Match.SubsetBonus)
	engine := reconcile.NewEngine(matcher, p.cfg.Source, p.log)
	extractor := odds.New(p.cfg.Odds.FallbackSportsbooks, p.log)
	sess := reconcile.NewSession()

	result := &Result{Events: events}
	var bookLists [][]string

	for _, ev := range events {
		evCtx, cancel := context.WithTimeout(ctx, p.cfg.Fetch.EventTimeout)
		records, books, err := p.processEvent(evCtx, engine, extractor, sess, ev)
		cancel()
		if err != nil {
			result.EventsSkipped++
			p.log.Warn("event skipped", zap.String("event", ev.Name), zap.Error(err))
			continue
		}
		result.Records = append(result.Records, records...)
		if len(books) > 0 {
			bookLists = append(bookLists, books)
		}
	}

	result.Sportsbooks = output.SportsbookUnion(bookLists, result.Records)
	output.Project(result.Records, result.Sportsbooks)
	result.Stats = sess.Stats()

	p.log.Info("run complete",
		zap.Int("events", len(events)),
		zap.Int("events_skipped", result.EventsSkipped),
		zap.Int("records", len(result.Records)),
		zap.Int("sportsbooks", len(result.Sportsbooks)),
		zap.Int("rows_kept", result.Stats.RowsKept),
		zap.Int("rows_skipped", result.Stats.RowsSkipped),
		zap.Int("cross_event_drops", result.Stats.CrossEventDrops),
		zap.Int("duplicate_drops", result.Stats.DuplicateDrops))
	return result, nil
}

// processEvent resolves one event end to end. A missing card page or
// roster fails the event: odds cannot be trusted without the roster. A
// missing odds page only degrades it to unpriced records.
func (p *Pipeline) processEvent(ctx context.Context, engine *reconcile.Engine, extractor *odds.Extractor, sess *reconcile.Session, ev *event.Event) ([]reconcile.Record, []string, error) {
	cardHTML, err := p.fetcher.Fetch(ctx, ev.CardURL)
	if err != nil {
		return nil, nil, fmt.Errorf("card page: %w", err)
	}
	crd, err := card.Resolve(strings.NewReader(cardHTML))
	if err != nil {
		return nil, nil, err
	}

	var rows []odds.Row
	var books []string
	oddsHTML, err := p.fetcher.Fetch(ctx, ev.OddsURL)
	if err != nil {
		p.log.Warn("odds page unavailable, emitting unpriced records",
			zap.String("event", ev.Name), zap.Error(err))
	} else {
		rows, books = extractor.Extract(strings.NewReader(oddsHTML), ev, p.cfg.LeagueKeyword)
	}

	records := engine.MergeEvent(sess, ev, crd, rows)

	// The resolved column list feeds the run-wide sportsbook union only
	// when the event actually priced something; otherwise the union would
	// grow all-empty columns from a page whose rows never matched the
	// roster (the fallback book list included).
	priced := false
	for _, rec := range records {
		if len(rec.Odds) > 0 {
			priced = true
			break
		}
	}
	if !priced {
		books = nil
	}

	return records, books, nil
}
