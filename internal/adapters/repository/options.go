package repository

import "github.com/okian/vgsales/pkg/logger"

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithLogger sets the logger used to report loads.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}
