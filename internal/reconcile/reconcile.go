// Package reconcile merges each event's card roster with its raw odds rows
// into canonical records, enforcing the run-wide invariants: a fighter
// belongs to at most one event, and no (event, fighter) pair is emitted
// twice.
package reconcile

import (
	"go.uber.org/zap"

	"github.com/pfrederiksen/mma-odds/internal/card"
	"github.com/pfrederiksen/mma-odds/internal/event"
	"github.com/pfrederiksen/mma-odds/internal/match"
	"github.com/pfrederiksen/mma-odds/internal/odds"
)

// Record is the canonical output unit: one fighter on one event, with the
// fighter's bout order and per-sportsbook prices.
type Record struct {
	Fighter    string            `json:"fighter"`
	Event      string            `json:"event"`
	EventID    string            `json:"event_id"`
	EventDate  string            `json:"event_date"`
	FightOrder int               `json:"fight_order"`
	Source     string            `json:"source"`
	Odds       map[string]string `json:"odds"`
}

// Engine merges one event at a time. It is stateless itself; run state
// lives in the Session passed to MergeEvent.
type Engine struct {
	matcher *match.Matcher
	source  string
	log     *zap.Logger
}

// NewEngine creates an Engine stamping records with the given provenance
// tag.
func NewEngine(matcher *match.Matcher, source string, log *zap.Logger) *Engine {
	return &Engine{matcher: matcher, source: source, log: log}
}

// MergeEvent builds the event's record batch: one base record per roster
// entry, odds rows folded in by fuzzy name match, then the cross-event and
// duplicate guards applied against the session. Rows that match no roster
// name are dropped and counted; an event with a roster but no odds rows
// still yields unpriced records.
func (e *Engine) MergeEvent(sess *Session, ev *event.Event, crd *card.Card, rows []odds.Row) []Record {
	roster := uniqueRoster(crd.Roster)

	// Fold raw rows into roster names. Later rows overwrite earlier ones
	// when two rows resolve to the same fighter.
	prices := make(map[string]map[string]string)
	kept, skipped := 0, 0
	for _, row := range rows {
		name, ok := e.matcher.ToRoster(row.Name, roster)
		if !ok {
			skipped++
			e.log.Debug("odds row not on card", zap.String("event", ev.Name), zap.String("name", row.Name))
			continue
		}
		kept++
		prices[name] = row.Prices
	}
	e.log.Info("event reconciled",
		zap.String("event", ev.Name),
		zap.Int("roster", len(roster)),
		zap.Int("rows_kept", kept),
		zap.Int("rows_skipped", skipped))

	var out []Record

	sess.mu.Lock()
	sess.stats.RowsKept += kept
	sess.stats.RowsSkipped += skipped

	for _, name := range roster {
		key := match.Normalize(name)
		if owner, taken := sess.nameEvent[key]; taken && owner != ev.ID {
			sess.stats.CrossEventDrops++
			e.log.Warn("cross-event collision, keeping earlier event",
				zap.String("fighter", name),
				zap.String("kept_event", owner),
				zap.String("dropped_event", ev.ID))
			continue
		}
		pair := ev.ID + "|" + key
		if sess.emitted[pair] {
			sess.stats.DuplicateDrops++
			continue
		}
		sess.nameEvent[key] = ev.ID
		sess.emitted[pair] = true

		order, hasOrder := crd.Order[key]
		if !hasOrder {
			order = -1
		}
		rowPrices := prices[name]
		if rowPrices == nil {
			rowPrices = make(map[string]string)
		}
		out = append(out, Record{
			Fighter:    name,
			Event:      ev.Name,
			EventID:    ev.ID,
			EventDate:  ev.Date,
			FightOrder: order,
			Source:     e.source,
			Odds:       rowPrices,
		})
	}
	sess.mu.Unlock()

	backfillOrder(out)
	return out
}

// backfillOrder assigns bout order to records the card gave none, pairing
// consecutive records two-at-a-time in roster order after the last
// card-derived slot. A best-effort approximation, weaker than card-derived
// order; cancelled bouts (order 0) are left alone.
func backfillOrder(records []Record) {
	order := 1
	for _, rec := range records {
		if rec.FightOrder >= order {
			order = rec.FightOrder + 1
		}
	}
	pending := 0
	for i := range records {
		if records[i].FightOrder >= 0 {
			continue
		}
		records[i].FightOrder = order
		pending++
		if pending == 2 {
			order++
			pending = 0
		}
	}
}

func uniqueRoster(roster []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range roster {
		key := match.Normalize(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}
