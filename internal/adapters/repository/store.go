// Package repository holds the canonical sale-record dataset and its loader.
package repository

import (
	"github.com/okian/vgsales/internal/domain/model"
)

// Dataset is the immutable canonical long-form collection of sale records.
// It is populated once by a loader and only exposes read access.
type Dataset struct {
	source  string
	records []model.SaleRecord
	genres  []string
	rows    int
}

// Source returns a description of where the dataset was read from.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of canonical records (rows x regions).
func (d *Dataset) Len() int { return len(d.records) }

// Rows returns the number of source rows that were read.
func (d *Dataset) Rows() int { return d.rows }

// Each calls fn for every record in load order. Records are passed by value.
func (d *Dataset) Each(fn func(model.SaleRecord)) {
	for _, r := range d.records {
		fn(r)
	}
}

// Records returns a copy of the canonical records.
func (d *Dataset) Records() []model.SaleRecord {
	out := make([]model.SaleRecord, len(d.records))
	copy(out, d.records)
	return out
}

// Genres returns the distinct genres in first-seen order.
func (d *Dataset) Genres() []string {
	out := make([]string, len(d.genres))
	copy(out, d.genres)
	return out
}

// NewDataset builds a Dataset from records already in canonical form. Records
// for RegionUnknown are dropped since they are not observations of a market.
func NewDataset(source string, records []model.SaleRecord) *Dataset {
	d := &Dataset{source: source}
	seen := make(map[string]bool)
	rows := make(map[int]bool)
	for _, r := range records {
		if r.Region == model.RegionUnknown {
			continue
		}
		d.records = append(d.records, r)
		rows[r.Rank] = true
		if !seen[r.Genre] {
			seen[r.Genre] = true
			d.genres = append(d.genres, r.Genre)
		}
	}
	d.rows = len(rows)
	return d
}
