// Package comparison ranks calculation results across instruments.
package comparison

import (
	"sort"

	"github.com/iwvelando/fincalc/pkg/finance"
)

// Entry is one named candidate in a comparison.
type Entry struct {
	Name   string         `json:"name" yaml:"name"`
	Result finance.Result `json:"result" yaml:"result"`
}

// Ranking is an ordered comparison. Best is the first entry, or the zero
// Entry when there are no candidates.
type Ranking struct {
	Entries []Entry `json:"entries" yaml:"entries"`
	Best    Entry   `json:"best" yaml:"best"`
}

// BestEntry returns the top entry and whether the ranking is non-empty.
func (r Ranking) BestEntry() (Entry, bool) {
	if len(r.Entries) == 0 {
		return Entry{}, false
	}
	return r.Entries[0], true
}

// Rank orders candidates by maturity, highest first. Equal maturities keep
// their input order. The input slice is not modified.
func Rank(candidates []Entry) Ranking {
	return rank(candidates, func(a, b Entry) bool {
		return a.Result.Maturity > b.Result.Maturity
	})
}

// RankByCost orders loan candidates by total amount paid, lowest first.
// Equal totals keep their input order.
func RankByCost(candidates []Entry) Ranking {
	return rank(candidates, func(a, b Entry) bool {
		return a.Result.Maturity < b.Result.Maturity
	})
}

func rank(candidates []Entry, less func(a, b Entry) bool) Ranking {
	entries := append([]Entry(nil), candidates...)
	sort.SliceStable(entries, func(i, j int) bool {
		return less(entries[i], entries[j])
	})

	ranking := Ranking{Entries: entries}
	if len(entries) > 0 {
		ranking.Best = entries[0]
	}
	return ranking
}
