// Package resilience provides the circuit breaker guarding the bank API.
// There is deliberately no retry layer: every failed call is terminal
// for that operation and is surfaced to the user instead of retried.
package resilience

import (
	"time"

	"github.com/sony/gobreaker"
)

// NewCircuitBreaker creates a circuit breaker with defaults tuned for an
// interactive client: trip fast, recover fast.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,                // half-open: probe with a single request
		Interval:    30 * time.Second, // closed: reset counters every 30s
		Timeout:     5 * time.Second,  // open -> half-open after 5s
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
	})
}
