// Package model contains domain models passed between layers.
package model

import (
	"math"
	"strconv"
)

// Region is one of the four disjoint sales markets.
type Region uint8

// Regions. RegionUnknown is never produced by the dataset loader; it is what
// unrecognised wire values map to, and it matches no records.
const (
	RegionUnknown Region = iota
	RegionNA
	RegionEU
	RegionJP
	RegionOther
)

// Regions lists the canonical regions in display order.
var Regions = []Region{RegionNA, RegionEU, RegionJP, RegionOther}

// Column returns the dataset column (and wire value) of the region, e.g. "NA_Sales".
func (r Region) Column() string {
	switch r {
	case RegionNA:
		return "NA_Sales"
	case RegionEU:
		return "EU_Sales"
	case RegionJP:
		return "JP_Sales"
	case RegionOther:
		return "Other_Sales"
	default:
		return ""
	}
}

// Label returns the human readable region name.
func (r Region) Label() string {
	switch r {
	case RegionNA:
		return "North America"
	case RegionEU:
		return "Europe"
	case RegionJP:
		return "Japan"
	case RegionOther:
		return "Other"
	default:
		return "Unknown"
	}
}

func (r Region) String() string {
	if c := r.Column(); c != "" {
		return c
	}
	return "unknown"
}

// ParseRegion maps a column/wire value to a Region. Unrecognised values map to
// RegionUnknown rather than failing.
func ParseRegion(s string) Region {
	for _, r := range Regions {
		if r.Column() == s {
			return r
		}
	}
	return RegionUnknown
}

// Year is a release year that may be unknown.
type Year struct {
	Value int
	Known bool
}

// KnownYear returns a known year.
func KnownYear(v int) Year { return Year{Value: v, Known: true} }

// UnknownYear is the bucket for records without a release year.
var UnknownYear = Year{}

// AtOrBefore reports whether the year passes a cutoff. Unknown years always pass.
func (y Year) AtOrBefore(cutoff int) bool {
	return !y.Known || y.Value <= cutoff
}

// Less orders years ascending with the unknown bucket first.
func (y Year) Less(o Year) bool {
	if y.Known != o.Known {
		return !y.Known
	}
	return y.Value < o.Value
}

func (y Year) String() string {
	if !y.Known {
		return "N/A"
	}
	return strconv.Itoa(y.Value)
}

// Ptr returns the year as a nullable int for wire encoding.
func (y Year) Ptr() *int {
	if !y.Known {
		return nil
	}
	v := y.Value
	return &v
}

// amountScale is the fixed-point resolution of Amount: one unit is one
// millionth of a million copies. Sales figures carry two decimals, so
// conversion is exact and sums are order independent.
const amountScale = 1_000_000

// Amount is a sales figure in fixed-point millions.
type Amount int64

// AmountFromMillions converts a float sales figure into an Amount.
func AmountFromMillions(v float64) Amount {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return Amount(math.Round(v * amountScale))
}

// Millions converts an Amount back to a float in millions.
func (a Amount) Millions() float64 {
	return float64(a) / amountScale
}

// SaleRecord is one observation of the canonical long-form dataset: one
// title on one platform in one region.
type SaleRecord struct {
	Rank      int
	Name      string
	Platform  string
	Year      Year
	Genre     string
	Publisher string
	Region    Region
	Sales     Amount
}

// Entity selects one of the ranked granularities.
type Entity uint8

// Granularities.
const (
	EntityTitle Entity = iota
	EntityPlatform
	EntityPublisher
)

// Entities lists every granularity in chart order.
var Entities = []Entity{EntityTitle, EntityPlatform, EntityPublisher}

func (e Entity) String() string {
	switch e {
	case EntityTitle:
		return "title"
	case EntityPlatform:
		return "platform"
	case EntityPublisher:
		return "publisher"
	default:
		return "unknown"
	}
}

// ParseEntity maps "title", "platform" or "publisher" to an Entity.
func ParseEntity(s string) (Entity, bool) {
	for _, e := range Entities {
		if e.String() == s {
			return e, true
		}
	}
	return 0, false
}

// Key returns the value of the record at the given granularity.
func (r SaleRecord) Key(e Entity) string {
	switch e {
	case EntityPlatform:
		return r.Platform
	case EntityPublisher:
		return r.Publisher
	default:
		return r.Name
	}
}
