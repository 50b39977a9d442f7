package service

import (
	"github.com/okian/vgsales/internal/adapters/repository"
	"github.com/okian/vgsales/internal/domain/filter"
	"github.com/okian/vgsales/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDatasetPath sets the CSV file loaded by Start.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.datasetPath = path
		}
	}
}

// WithDataset hands the service an already loaded dataset; Start then skips
// reading the file.
func WithDataset(d *repository.Dataset) Option {
	return func(s *Service) {
		if d != nil {
			s.dataset = d
		}
	}
}

// WithStore shares a dataset store with the service. A store that already
// holds a dataset is used as is; otherwise Start loads into it.
func WithStore(st *repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithInitialState sets the filter state the service starts with.
func WithInitialState(st filter.State) Option {
	return func(s *Service) {
		s.state = st
	}
}

// WithLabelCount sets how many entities the chart label overlay highlights.
func WithLabelCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.labelCount = n
		}
	}
}
