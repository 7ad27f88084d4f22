// Package match implements fuzzy matching of scraped fighter names against
// an event's card roster.
//
// Names from the odds table rarely agree letter-for-letter with the card
// page ("J. Jones" vs "Jon Jones", truncated nicknames, stray suffixes), so
// rows are aligned by token-set similarity instead of string equality. The
// scoring is a Jaccard index over normalized tokens with a bonus when one
// token set contains the other.
package match

import (
	"sort"
	"strings"
)

// Matcher scores candidate names against roster names. The zero value is
// not usable; construct with New.
type Matcher struct {
	threshold   float64
	subsetBonus float64
}

// New creates a Matcher accepting matches scoring at least threshold, with
// subsetBonus added when one token set is a subset of the other.
func New(threshold, subsetBonus float64) *Matcher {
	return &Matcher{threshold: threshold, subsetBonus: subsetBonus}
}

// Normalize lowers a name and reduces it to space-separated letter runs.
// "J. Jones-Smith" becomes "j jones smith".
func Normalize(name string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			lastSpace = false
		case !lastSpace:
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

func tokenSet(name string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(Normalize(name)) {
		set[tok] = struct{}{}
	}
	return set
}

// overlap counts shared tokens between two sets. A single-letter token
// counts as shared when it is the initial of a token on the other side, so
// "j jones" overlaps fully with "jon jones".
func overlap(a, b map[string]struct{}) int {
	shared := 0
	for ta := range a {
		if _, ok := b[ta]; ok {
			shared++
			continue
		}
		if len(ta) == 1 {
			for tb := range b {
				if strings.HasPrefix(tb, ta) {
					shared++
					break
				}
			}
			continue
		}
		for tb := range b {
			if len(tb) == 1 && strings.HasPrefix(ta, tb) {
				shared++
				break
			}
		}
	}
	min := len(a)
	if len(b) < min {
		min = len(b)
	}
	if shared > min {
		shared = min
	}
	return shared
}

// Score computes the similarity between a candidate and a roster name:
// Jaccard index of their token sets plus the subset bonus when one set
// contains the other. Scores are in [0, 1+bonus].
func (m *Matcher) Score(candidate, rosterName string) float64 {
	a := tokenSet(candidate)
	b := tokenSet(rosterName)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := overlap(a, b)
	union := len(a) + len(b) - inter
	score := float64(inter) / float64(union)
	if inter == len(a) || inter == len(b) {
		score += m.subsetBonus
	}
	return score
}

// ToRoster returns the roster name best matching candidate, or ok=false
// when no roster name scores at or above the threshold. Roster names are
// tried in sorted order and ties keep the first, so results are
// deterministic for a fixed roster.
func (m *Matcher) ToRoster(candidate string, roster []string) (string, bool) {
	if candidate == "" || len(roster) == 0 {
		return "", false
	}

	sorted := make([]string, len(roster))
	copy(sorted, roster)
	sort.Strings(sorted)

	bestName := ""
	bestScore := 0.0
	for _, name := range sorted {
		if s := m.Score(candidate, name); s > bestScore {
			bestScore = s
			bestName = name
		}
	}
	if bestScore >= m.threshold {
		return bestName, true
	}
	return "", false
}
