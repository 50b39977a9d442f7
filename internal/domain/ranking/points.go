package ranking

import (
	"sort"

	"github.com/okian/vgsales/internal/domain/aggregation"
	"github.com/okian/vgsales/internal/domain/model"
)

// Point is one (entity, genre) mark of a chart.
type Point struct {
	Entity  string
	Genre   string
	Sales   model.Amount
	MinRank int
}

// Points reduces the filtered view to (entity, genre) and orders the marks
// with the ranking order, genre ascending as the final tie-break.
func Points(view *aggregation.View, q Query) []Point {
	if view == nil {
		return []Point{}
	}
	type pk struct{ entity, genre string }
	idx := make(map[pk]int)
	points := make([]Point, 0)
	view.Each(func(k aggregation.Key, c aggregation.Cell) {
		if !q.matches(k.Region, k.Year) {
			return
		}
		key := pk{k.Entity, k.Genre}
		i, ok := idx[key]
		if !ok {
			idx[key] = len(points)
			points = append(points, Point{Entity: k.Entity, Genre: k.Genre, Sales: c.Sales, MinRank: c.MinRank})
			return
		}
		p := &points[i]
		p.Sales += c.Sales
		if c.MinRank < p.MinRank {
			p.MinRank = c.MinRank
		}
	})
	sort.Slice(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.Sales == b.Sales && a.MinRank == b.MinRank && a.Entity == b.Entity {
			return a.Genre < b.Genre
		}
		return before(a.Sales, a.MinRank, a.Entity, b.Sales, b.MinRank, b.Entity)
	})
	return points[:limit(len(points), q.Limit)]
}

// GenreTotal is the summed sales of one genre within a slice.
type GenreTotal struct {
	Genre string
	Sales model.Amount
}

// GenreTotals orders genres by their summed sales in the filtered view.
func GenreTotals(view *aggregation.View, q Query) []GenreTotal {
	sums := make(map[string]model.Amount)
	if view != nil {
		view.Each(func(k aggregation.Key, c aggregation.Cell) {
			if q.matches(k.Region, k.Year) {
				sums[k.Genre] += c.Sales
			}
		})
	}
	return orderGenres(sums)
}

// RecordGenreTotals orders genres by summed sales over raw records. Genre
// salience is a property of the region's sales mix, so the platform and
// publisher charts take their axis order from here.
func RecordGenreTotals(src aggregation.Source, q Query) []GenreTotal {
	sums := make(map[string]model.Amount)
	if src != nil {
		src.Each(func(r model.SaleRecord) {
			if q.matches(r.Region, r.Year) {
				sums[r.Genre] += r.Sales
			}
		})
	}
	return orderGenres(sums)
}

// GenreOrder returns the genre axis order for a chart drawn from view.
func GenreOrder(view *aggregation.View, q Query) []string {
	return genreNames(GenreTotals(view, q))
}

// RecordGenreOrder returns the genre axis order over raw records.
func RecordGenreOrder(src aggregation.Source, q Query) []string {
	return genreNames(RecordGenreTotals(src, q))
}

func orderGenres(sums map[string]model.Amount) []GenreTotal {
	out := make([]GenreTotal, 0, len(sums))
	for g, s := range sums {
		out = append(out, GenreTotal{Genre: g, Sales: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sales != out[j].Sales {
			return out[i].Sales > out[j].Sales
		}
		return out[i].Genre < out[j].Genre
	})
	return out
}

func genreNames(totals []GenreTotal) []string {
	names := make([]string, len(totals))
	for i, t := range totals {
		names[i] = t.Genre
	}
	return names
}
