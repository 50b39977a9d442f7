// Package filter defines the user-controlled parameters that drive every
// recomputation.
package filter

import (
	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/types"
)

// Defaults applied at startup.
const (
	DefaultResultCount = 5
	DefaultYearCutoff  = 2020
	DefaultRegion      = model.RegionNA
	DefaultTab         = TabCounts
)

// ResultCounts are the table sizes offered to users.
var ResultCounts = []int{5, 10, 15, 20}

// Tab is the active analysis tab.
type Tab uint8

// Tabs.
const (
	TabCounts Tab = iota
	TabSales
	TabTopPerformers
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabCounts, TabSales, TabTopPerformers}

// Wire returns the identifier the rendering boundary uses, e.g. "tab-3".
func (t Tab) Wire() string {
	switch t {
	case TabCounts:
		return "tab-1"
	case TabSales:
		return "tab-2"
	case TabTopPerformers:
		return "tab-3"
	default:
		return ""
	}
}

// Label returns the tab title.
func (t Tab) Label() string {
	switch t {
	case TabCounts:
		return "Number of games released"
	case TabSales:
		return "Number of sales"
	case TabTopPerformers:
		return "Top performers"
	default:
		return ""
	}
}

func (t Tab) String() string {
	switch t {
	case TabCounts:
		return "counts"
	case TabSales:
		return "sales"
	case TabTopPerformers:
		return "top_performers"
	default:
		return "unknown"
	}
}

// ParseTab accepts either the wire form ("tab-1") or the name ("counts").
func ParseTab(s string) (Tab, bool) {
	for _, t := range Tabs {
		if s == t.Wire() || s == t.String() {
			return t, true
		}
	}
	return 0, false
}

// State is one snapshot of the filter parameters. It is a value: changing a
// field produces a new State.
type State struct {
	Region      model.Region
	ResultCount int
	Tab         Tab
	YearCutoff  int
}

// Default returns the startup state.
func Default() State {
	return State{
		Region:      DefaultRegion,
		ResultCount: DefaultResultCount,
		Tab:         DefaultTab,
		YearCutoff:  DefaultYearCutoff,
	}
}

// Change carries the fields a user interaction modified. Nil fields are left
// untouched.
type Change struct {
	Region      *model.Region
	ResultCount *int
	Tab         *Tab
}

// IsEmpty reports whether the change touches no field.
func (c Change) IsEmpty() bool {
	return c.Region == nil && c.ResultCount == nil && c.Tab == nil
}

// Apply returns s with the change applied.
func (s State) Apply(c Change) State {
	if c.Region != nil {
		s.Region = *c.Region
	}
	if c.ResultCount != nil {
		s.ResultCount = *c.ResultCount
	}
	if c.Tab != nil {
		s.Tab = *c.Tab
	}
	return s
}

// Wire returns the snapshot in wire form.
func (s State) Wire() types.State {
	return types.State{
		Region:      s.Region.Column(),
		ResultCount: s.ResultCount,
		Tab:         s.Tab.Wire(),
		YearCutoff:  s.YearCutoff,
	}
}
