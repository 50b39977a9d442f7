// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional .env file, an optional YAML file and
//   VGSALES_* environment variables, in that order of precedence.
// - External errors are wrapped with this package's sentinels.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/okian/vgsales/internal/domain/filter"
	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/ranking"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8050".
	Addr string `koanf:"addr"`

	// DatasetPath points at the sales CSV loaded once at startup.
	DatasetPath string `koanf:"dataset_path"`

	// YearCutoff excludes titles released after this year. Unknown years are kept.
	YearCutoff int `koanf:"year_cutoff"`

	// DefaultRegion is the wire value of the startup region, e.g. "NA_Sales".
	DefaultRegion string `koanf:"default_region"`

	// DefaultResultCount is the startup table size.
	DefaultResultCount int `koanf:"default_result_count"`

	// LabelCount is the size of the highlighted-label overlay on charts.
	LabelCount int `koanf:"label_count"`

	// CORSAllowedOrigins is a comma separated list of origins; "*" allows all.
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`

	// ChartWidth and ChartHeight size the rendered chart documents in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8050",
		DatasetPath:        "data/vgsales.csv",
		YearCutoff:         filter.DefaultYearCutoff,
		DefaultRegion:      filter.DefaultRegion.Column(),
		DefaultResultCount: filter.DefaultResultCount,
		LabelCount:         ranking.LabelCount,
		CORSAllowedOrigins: "*",
		ChartWidth:         560,
		ChartHeight:        420,
	}
}

// AllowedOrigins splits CORSAllowedOrigins into trimmed, non-empty entries.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// InitialState returns the filter state the service starts with.
func (c *Config) InitialState() filter.State {
	s := filter.Default()
	s.Region = model.ParseRegion(c.DefaultRegion)
	s.ResultCount = c.DefaultResultCount
	s.YearCutoff = c.YearCutoff
	return s
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DatasetPath) == "":
		return fmt.Errorf("%w: dataset_path must not be empty", ErrInvalidConfig)
	case model.ParseRegion(c.DefaultRegion) == model.RegionUnknown:
		return fmt.Errorf("%w: default_region %q is not a sales region", ErrInvalidConfig, c.DefaultRegion)
	case !slices.Contains(filter.ResultCounts, c.DefaultResultCount):
		return fmt.Errorf("%w: default_result_count must be one of %v", ErrInvalidConfig, filter.ResultCounts)
	case c.LabelCount <= 0:
		return fmt.Errorf("%w: label_count must be positive", ErrInvalidConfig)
	case c.ChartWidth <= 0 || c.ChartHeight <= 0:
		return fmt.Errorf("%w: chart size must be positive", ErrInvalidConfig)
	}
	return nil
}
