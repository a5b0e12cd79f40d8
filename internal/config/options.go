package config

import "github.com/rs/zerolog"

// Option customises Load and NewManager.
type Option func(*settings)

type settings struct {
	logger      zerolog.Logger
	parallelism int
}

func newSettings(opts []Option) *settings {
	s := &settings{
		logger:      zerolog.Nop(),
		parallelism: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// WithLogger provides the logger used for warnings and validation
// diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithParallelism loads up to n documents concurrently. Values below 2 keep
// loading sequential. Indexing and merging are always sequential.
func WithParallelism(n int) Option {
	return func(s *settings) {
		if n < 1 {
			n = 1
		}
		s.parallelism = n
	}
}
