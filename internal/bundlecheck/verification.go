package bundlecheck

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/okian/vgsales/internal/domain/types"
)

// tabTopPerformers is the only tab that carries data.
const tabTopPerformers = "tab-3"

// verifyBundle checks one bundle against the case that produced it.
func verifyBundle(c Case, b types.Bundle) []string {
	var issues []string
	if b.State.Region != c.Region || b.State.ResultCount != c.Count || b.State.Tab != c.Tab {
		issues = append(issues, fmt.Sprintf("state echo %+v does not match request", b.State))
	}

	if c.Tab != tabTopPerformers {
		if b.Placeholder == nil {
			issues = append(issues, "placeholder tab without placeholder")
		}
		if b.TopPerformers != nil {
			issues = append(issues, "placeholder tab carries top performers")
		}
		return issues
	}

	tp := b.TopPerformers
	if tp == nil {
		return append(issues, "top performers tab without data")
	}
	issues = append(issues, verifyTable(tp.TableRows, c.Count)...)
	for _, ch := range []types.Chart{tp.Title, tp.Platform, tp.Publisher} {
		issues = append(issues, verifyChart(ch, c)...)
		if order, ok := tp.GenreOrders[ch.Entity]; !ok || !slices.Equal(order, ch.GenreOrder) {
			issues = append(issues, fmt.Sprintf("%s: genre_orders entry differs from chart", ch.Entity))
		}
	}
	return issues
}

// verifyTable checks length and ordering of the table rows.
func verifyTable(rows []types.TableRow, count int) []string {
	var issues []string
	if len(rows) > count {
		issues = append(issues, fmt.Sprintf("table: %d rows exceed count %d", len(rows), count))
	}
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if cur.Sales > prev.Sales || (cur.Sales == prev.Sales && cur.Rank < prev.Rank) {
			issues = append(issues, fmt.Sprintf("table: row %d (%s) out of order", i+1, cur.Name))
		}
	}
	return issues
}

// verifyChart checks one chart's ranking, overlays and region.
func verifyChart(ch types.Chart, c Case) []string {
	var issues []string
	if ch.Region != c.Region {
		issues = append(issues, fmt.Sprintf("%s: region %q, want %q", ch.Entity, ch.Region, c.Region))
	}
	issues = append(issues, verifyRanking(ch.Entity, ch.Ranking, c.Count)...)
	if !rankingPrefix(ch.Labels, ch.Ranking) {
		issues = append(issues, fmt.Sprintf("%s: labels are not a prefix of the ranking", ch.Entity))
	}
	if !pointPrefix(ch.Highlights, ch.Points) {
		issues = append(issues, fmt.Sprintf("%s: highlights are not a prefix of the points", ch.Entity))
	}
	for i := 1; i < len(ch.Points); i++ {
		if ch.Points[i].Sales > ch.Points[i-1].Sales {
			issues = append(issues, fmt.Sprintf("%s: point %d out of order", ch.Entity, i+1))
			break
		}
	}
	return issues
}

// verifyRanking checks length, positions and the sales-then-rank order.
func verifyRanking(entity string, r []types.RankedEntity, count int) []string {
	var issues []string
	if len(r) > count {
		issues = append(issues, fmt.Sprintf("%s: %d entries exceed count %d", entity, len(r), count))
	}
	seen := make(map[string]bool, len(r))
	for i, e := range r {
		if e.Position != i+1 {
			issues = append(issues, fmt.Sprintf("%s: entry %d has position %d", entity, i+1, e.Position))
		}
		if seen[e.Entity] {
			issues = append(issues, fmt.Sprintf("%s: %q listed twice", entity, e.Entity))
		}
		seen[e.Entity] = true
		if i == 0 {
			continue
		}
		prev := r[i-1]
		if e.Sales > prev.Sales || (e.Sales == prev.Sales && e.MinRank < prev.MinRank) {
			issues = append(issues, fmt.Sprintf("%s: entry %d (%s) out of order", entity, i+1, e.Entity))
		}
	}
	return issues
}

// rankingPrefix reports whether the shorter of a and b is a prefix of the other.
func rankingPrefix(a, b []types.RankedEntity) bool {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i].Entity != b[i].Entity || a[i].Sales != b[i].Sales {
			return false
		}
	}
	return true
}

func pointPrefix(a, b []types.ChartPoint) bool {
	if len(a) > len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// verifyIdentical reports a difference between two renditions of the same bundle.
func verifyIdentical(what string, a, b []byte) []string {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return nil
	}
	return []string{fmt.Sprintf("%s: bundles differ (%d vs %d bytes)", what, len(a), len(b))}
}
