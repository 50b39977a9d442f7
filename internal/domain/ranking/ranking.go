// Package ranking answers top-N questions over the precomputed grouped views.
//
// Every query applies the same slice predicate (region match, known year at or
// before the cutoff, unknown years always kept) and the same ordering: sales
// descending, then lowest original rank ascending, then name ascending. The
// ordering is total, so repeated calls return identical results.
package ranking

import (
	"sort"

	"github.com/okian/vgsales/internal/domain/aggregation"
	"github.com/okian/vgsales/internal/domain/filter"
	"github.com/okian/vgsales/internal/domain/model"
)

// LabelCount is the size of the highlighted-label overlay on charts. It does
// not follow the table size.
const LabelCount = 5

// Query selects and truncates a slice of a view.
type Query struct {
	Region     model.Region
	YearCutoff int
	Limit      int // <= 0 keeps every entry
}

// QueryFor derives the table query of a filter snapshot.
func QueryFor(s filter.State) Query {
	return Query{Region: s.Region, YearCutoff: s.YearCutoff, Limit: s.ResultCount}
}

// WithLimit returns a copy of q with another limit.
func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

func (q Query) matches(region model.Region, year model.Year) bool {
	return region != model.RegionUnknown && region == q.Region && year.AtOrBefore(q.YearCutoff)
}

// Entry is one ranked entity.
type Entry struct {
	Position int
	Entity   string
	Sales    model.Amount
	MinRank  int
}

// Result is an ordered, truncated ranking.
type Result struct {
	Entity   model.Entity
	Entries  []Entry
	Distinct int // entities matching the query before truncation
}

// Len returns the number of ranked entries.
func (r Result) Len() int { return len(r.Entries) }

// Empty reports whether nothing matched the query. An empty result is a
// valid answer, not a failure.
func (r Result) Empty() bool { return len(r.Entries) == 0 }

// Total returns the summed sales of the ranked entries.
func (r Result) Total() model.Amount {
	var t model.Amount
	for _, e := range r.Entries {
		t += e.Sales
	}
	return t
}

// before reports whether (aSales, aRank, aName) ranks ahead of (b...).
func before(aSales model.Amount, aRank int, aName string, bSales model.Amount, bRank int, bName string) bool {
	if aSales != bSales {
		return aSales > bSales
	}
	if aRank != bRank {
		return aRank < bRank
	}
	return aName < bName
}

func limit(n, max int) int {
	if max > 0 && n > max {
		return max
	}
	return n
}

// Rank filters view by q, re-aggregates the surviving cells by entity and
// returns the top q.Limit entities.
func Rank(view *aggregation.View, q Query) Result {
	res := Result{}
	if view == nil {
		return res
	}
	res.Entity = view.Entity()

	type acc struct {
		sales   model.Amount
		minRank int
	}
	byEntity := make(map[string]acc)
	view.Each(func(k aggregation.Key, c aggregation.Cell) {
		if !q.matches(k.Region, k.Year) {
			return
		}
		a, ok := byEntity[k.Entity]
		if !ok || c.MinRank < a.minRank {
			a.minRank = c.MinRank
		}
		a.sales += c.Sales
		byEntity[k.Entity] = a
	})

	entries := make([]Entry, 0, len(byEntity))
	for name, a := range byEntity {
		entries = append(entries, Entry{Entity: name, Sales: a.sales, MinRank: a.minRank})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		return before(a.Sales, a.MinRank, a.Entity, b.Sales, b.MinRank, b.Entity)
	})

	res.Distinct = len(entries)
	entries = entries[:limit(len(entries), q.Limit)]
	for i := range entries {
		entries[i].Position = i + 1
	}
	res.Entries = entries
	return res
}

// Labels returns the label overlay for a chart: the top n entities of the
// same slice, whatever the query's own limit. n <= 0 means LabelCount.
func Labels(view *aggregation.View, q Query, n int) Result {
	if n <= 0 {
		n = LabelCount
	}
	return Rank(view, q.WithLimit(n))
}
