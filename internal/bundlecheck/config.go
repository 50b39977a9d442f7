// Package bundlecheck verifies a running sales explorer: it sweeps every
// region, table size and tab and checks that the served bundles are ordered,
// bounded, mutually consistent and reproducible.
package bundlecheck

import (
	"fmt"
	"time"

	"github.com/okian/vgsales/internal/domain/filter"
	"github.com/okian/vgsales/internal/domain/model"
)

// Default settings.
const (
	DefaultBaseURL = "http://localhost:8050"
	DefaultTimeout = 30 * time.Second
)

// Config holds the settings of one sweep.
type Config struct {
	BaseURL string        // Base URL of the service
	Timeout time.Duration // HTTP request timeout
	Regions []string      // Region wire values to sweep
	Counts  []int         // Table sizes to sweep
	Tabs    []string      // Tab wire values to sweep
	// SkipStateful disables the tab-switch check, which changes the
	// server's shared state and restores it afterwards.
	SkipStateful bool
	Verbose      bool
}

// DefaultConfig sweeps every selectable value.
func DefaultConfig() *Config {
	cfg := &Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
		Counts:  append([]int(nil), filter.ResultCounts...),
	}
	for _, r := range model.Regions {
		cfg.Regions = append(cfg.Regions, r.Column())
	}
	for _, t := range filter.Tabs {
		cfg.Tabs = append(cfg.Tabs, t.Wire())
	}
	return cfg
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("%w: base url is empty", ErrInvalidConfig)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	case len(c.Regions) == 0 || len(c.Counts) == 0 || len(c.Tabs) == 0:
		return fmt.Errorf("%w: nothing to sweep", ErrInvalidConfig)
	}
	return nil
}

// Case is one point of the sweep.
type Case struct {
	Region string
	Count  int
	Tab    string
}

func (c Case) String() string {
	return fmt.Sprintf("%s/%d/%s", c.Region, c.Count, c.Tab)
}

// Cases expands the sweep in a stable order.
func (c *Config) Cases() []Case {
	out := make([]Case, 0, len(c.Regions)*len(c.Counts)*len(c.Tabs))
	for _, r := range c.Regions {
		for _, n := range c.Counts {
			for _, t := range c.Tabs {
				out = append(out, Case{Region: r, Count: n, Tab: t})
			}
		}
	}
	return out
}
