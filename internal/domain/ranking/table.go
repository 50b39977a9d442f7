package ranking

import (
	"sort"

	"github.com/okian/vgsales/internal/domain/aggregation"
	"github.com/okian/vgsales/internal/domain/model"
)

// TableRows returns the top record-level rows of the slice: one row per title
// and platform, ordered like every other ranking.
func TableRows(src aggregation.Source, q Query) []model.SaleRecord {
	rows := make([]model.SaleRecord, 0)
	if src == nil {
		return rows
	}
	src.Each(func(r model.SaleRecord) {
		if q.matches(r.Region, r.Year) {
			rows = append(rows, r)
		}
	})
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Sales == b.Sales && a.Rank == b.Rank && a.Name == b.Name {
			return a.Platform < b.Platform
		}
		return before(a.Sales, a.Rank, a.Name, b.Sales, b.Rank, b.Name)
	})
	return rows[:limit(len(rows), q.Limit)]
}
