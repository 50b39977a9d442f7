// Package aggregation reduces the canonical dataset into grouped views keyed
// by (entity, year, genre, region), one view per ranked granularity.
//
// The reduction runs once per process. Views are immutable after Build and
// safe for concurrent readers.
package aggregation

import (
	"sort"

	"github.com/okian/vgsales/internal/domain/model"
)

// Source is anything that can enumerate canonical sale records.
type Source interface {
	Each(fn func(model.SaleRecord))
}

// Key identifies one cell of a grouped view.
type Key struct {
	Entity string
	Year   model.Year
	Genre  string
	Region model.Region
}

// less orders keys by entity, year (unknown first), genre, region.
func (k Key) less(o Key) bool {
	if k.Entity != o.Entity {
		return k.Entity < o.Entity
	}
	if k.Year != o.Year {
		return k.Year.Less(o.Year)
	}
	if k.Genre != o.Genre {
		return k.Genre < o.Genre
	}
	return k.Region < o.Region
}

// Cell is the reduced value of a key.
type Cell struct {
	Sales   model.Amount
	MinRank int // lowest original rank contributing to the cell
	Records int
}

func (c Cell) merge(sales model.Amount, rank int) Cell {
	if c.Records == 0 || rank < c.MinRank {
		c.MinRank = rank
	}
	c.Sales += sales
	c.Records++
	return c
}

// View is the grouped sales of one granularity.
type View struct {
	entity model.Entity
	cells  map[Key]Cell
	keys   []Key
}

// Entity returns the granularity the view is grouped by.
func (v *View) Entity() model.Entity { return v.entity }

// Len returns the number of distinct keys.
func (v *View) Len() int { return len(v.keys) }

// Get returns the cell for key.
func (v *View) Get(k Key) (Cell, bool) {
	c, ok := v.cells[k]
	return c, ok
}

// Each visits every cell in key order. Iteration order never depends on the
// order records were loaded in.
func (v *View) Each(fn func(Key, Cell)) {
	for _, k := range v.keys {
		fn(k, v.cells[k])
	}
}

// Total returns the sum of every cell.
func (v *View) Total() model.Amount {
	var t model.Amount
	for _, c := range v.cells {
		t += c.Sales
	}
	return t
}

// Views bundles the three precomputed granularities.
type Views struct {
	Title     *View
	Platform  *View
	Publisher *View
}

// Get returns the view for a granularity, or nil for an unknown one.
func (vs *Views) Get(e model.Entity) *View {
	switch e {
	case model.EntityTitle:
		return vs.Title
	case model.EntityPlatform:
		return vs.Platform
	case model.EntityPublisher:
		return vs.Publisher
	default:
		return nil
	}
}

// Build groups the source by (entity, year, genre, region) at every
// granularity and reduces each group by summation.
func Build(src Source) *Views {
	vs := &Views{
		Title:     newView(model.EntityTitle),
		Platform:  newView(model.EntityPlatform),
		Publisher: newView(model.EntityPublisher),
	}
	all := []*View{vs.Title, vs.Platform, vs.Publisher}
	src.Each(func(r model.SaleRecord) {
		for _, v := range all {
			v.add(r)
		}
	})
	for _, v := range all {
		v.seal()
	}
	return vs
}

// BuildView groups the source at a single granularity.
func BuildView(src Source, e model.Entity) *View {
	v := newView(e)
	src.Each(v.add)
	v.seal()
	return v
}

func newView(e model.Entity) *View {
	return &View{entity: e, cells: make(map[Key]Cell)}
}

func (v *View) add(r model.SaleRecord) {
	k := Key{Entity: r.Key(v.entity), Year: r.Year, Genre: r.Genre, Region: r.Region}
	v.cells[k] = v.cells[k].merge(r.Sales, r.Rank)
}

func (v *View) seal() {
	v.keys = make([]Key, 0, len(v.cells))
	for k := range v.cells {
		v.keys = append(v.keys, k)
	}
	sort.Slice(v.keys, func(i, j int) bool { return v.keys[i].less(v.keys[j]) })
}
