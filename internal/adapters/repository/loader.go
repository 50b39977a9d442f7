package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/pkg/logger"
	"github.com/okian/vgsales/pkg/metrics"
)

// Dataset column names.
const (
	colRank      = "Rank"
	colName      = "Name"
	colPlatform  = "Platform"
	colYear      = "Year"
	colGenre     = "Genre"
	colPublisher = "Publisher"
	colGlobal    = "Global_Sales"
)

var requiredColumns = []string{colName, colPlatform, colGenre, colPublisher}

// unknownYearCells are the cell values treated as a missing release year.
var unknownYearCells = map[string]bool{"": true, "N/A": true, "NA": true, "NaN": true, "nan": true}

// Load parses a tabular sale-record source into the canonical dataset. Each
// source row becomes one record per region column present; Global_Sales is a
// derived total and is skipped.
func Load(ctx context.Context, source string, r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty source")
		}
		return nil, &DataLoadError{Source: source, Err: err}
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, &DataLoadError{Source: source, Column: c, Err: ErrMissingColumn}
		}
	}
	type regionCol struct {
		region model.Region
		col    int
	}
	var regions []regionCol
	for _, reg := range model.Regions {
		if i, ok := idx[reg.Column()]; ok {
			regions = append(regions, regionCol{region: reg, col: i})
		}
	}
	if len(regions) == 0 {
		return nil, &DataLoadError{Source: source, Column: "*_Sales", Err: ErrMissingColumn}
	}
	rankCol, hasRank := idx[colRank]
	yearCol, hasYear := idx[colYear]

	var records []model.SaleRecord
	rows := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, &DataLoadError{Source: source, Err: err}
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DataLoadError{Source: source, Row: rows + 1, Err: err}
		}
		rows++

		cell := func(i int) string {
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		rank := rows
		if hasRank {
			if rank, err = parseRank(cell(rankCol)); err != nil {
				return nil, &DataLoadError{Source: source, Row: rows, Column: colRank, Err: err}
			}
		}
		year := model.UnknownYear
		if hasYear {
			if year, err = parseYear(cell(yearCol)); err != nil {
				return nil, &DataLoadError{Source: source, Row: rows, Column: colYear, Err: err}
			}
		}

		base := model.SaleRecord{
			Rank:      rank,
			Name:      cell(idx[colName]),
			Platform:  cell(idx[colPlatform]),
			Year:      year,
			Genre:     cell(idx[colGenre]),
			Publisher: cell(idx[colPublisher]),
		}
		for _, rc := range regions {
			sales, err := parseSales(cell(rc.col))
			if err != nil {
				return nil, &DataLoadError{Source: source, Row: rows, Column: rc.region.Column(), Err: err}
			}
			rec := base
			rec.Region = rc.region
			rec.Sales = sales
			records = append(records, rec)
		}
	}

	d := NewDataset(source, records)
	d.rows = rows
	return d, nil
}

// LoadFile opens path and loads it with Load.
func LoadFile(ctx context.Context, path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Source: path, Err: err}
	}
	defer func() { _ = f.Close() }()
	return Load(ctx, path, f)
}

func parseRank(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: rank %q", ErrMalformedCell, s)
	}
	return n, nil
}

// parseYear accepts integer years, integral floats ("2006.0") and the
// missing-value markers. It never defaults a missing year to 0.
func parseYear(s string) (model.Year, error) {
	if unknownYearCells[s] {
		return model.UnknownYear, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return model.KnownYear(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return model.UnknownYear, fmt.Errorf("%w: year %q", ErrMalformedCell, s)
	}
	return model.KnownYear(int(f)), nil
}

func parseSales(s string) (model.Amount, error) {
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: sales %q", ErrMalformedCell, s)
	}
	return model.AmountFromMillions(f), nil
}

// Store owns the process-wide dataset. It accepts exactly one successful load.
type Store struct {
	mu      sync.RWMutex
	dataset *Dataset
	logger  logger.Logger
}

// NewStore creates an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadFile populates the store from path. A second successful call is
// rejected with ErrAlreadyLoaded; a failed load leaves the store empty.
func (s *Store) LoadFile(ctx context.Context, path string) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dataset != nil {
		return nil, &DataLoadError{Source: path, Err: ErrAlreadyLoaded}
	}

	start := time.Now()
	d, err := LoadFile(ctx, path)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "load")
		return nil, err
	}
	s.dataset = d

	metrics.UpdateDatasetRows(d.Rows())
	metrics.UpdateDatasetRecords(d.Len())
	metrics.RecordDatasetLoadDuration(float64(time.Since(start).Milliseconds()))
	if s.logger != nil {
		s.logger.Info(ctx, "dataset loaded",
			logger.String("path", path),
			logger.Int("rows", d.Rows()),
			logger.Int("records", d.Len()),
			logger.Int("genres", len(d.genres)),
		)
	}
	return d, nil
}

// Dataset returns the loaded dataset, or nil before LoadFile succeeds.
func (s *Store) Dataset() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}
