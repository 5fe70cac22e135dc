package tmdb

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	catalogerrors "github.com/Conte777/MovieFlow/internal/domain/catalog/errors"
	"github.com/Conte777/MovieFlow/internal/infrastructure/metrics"
)

const breakerName = "tmdb-api"

// BreakerSettings controls when the catalog circuit opens
type BreakerSettings struct {
	// ConsecutiveFailures opens the circuit once reached
	ConsecutiveFailures uint32
	// OpenTimeout is how long the circuit stays open before probing
	OpenTimeout time.Duration
	// HalfOpenRequests is the number of trial requests allowed in half-open state
	HalfOpenRequests uint32
}

// DefaultBreakerSettings returns production breaker settings
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		ConsecutiveFailures: 5,
		OpenTimeout:         time.Minute,
		HalfOpenRequests:    1,
	}
}

func newBreaker(s BreakerSettings, m *metrics.Metrics, logger zerolog.Logger) *gobreaker.CircuitBreaker[[]byte] {
	m.SetBreakerState(breakerName, stateToFloat(gobreaker.StateClosed))

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: s.HalfOpenRequests,
		Interval:    time.Minute,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= s.ConsecutiveFailures
			if trip {
				logger.Warn().
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("opening catalog circuit")
			}
			return trip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("catalog circuit state transition")
			m.RecordBreakerTransition(name, from.String(), to.String(), stateToFloat(to))
		},
		// A missing movie is an answer, not an outage
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, catalogerrors.ErrMovieNotFound)
		},
	})
}

func isRejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
