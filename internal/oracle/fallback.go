package oracle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"billscan/internal/port"
)

// circuitState tracks rate-limit backoff for a single provider.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// Fallback tries oracles in order, skipping those with open circuits.
// It implements port.CompletionOracle.
type Fallback struct {
	oracles  []port.CompletionOracle
	circuits []*circuitState
	names    []string
	logger   *zap.Logger
}

// NewFallback creates a Fallback from an ordered list of oracles and their names.
func NewFallback(oracles []port.CompletionOracle, names []string, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	circuits := make([]*circuitState, len(oracles))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &Fallback{
		oracles:  oracles,
		circuits: circuits,
		names:    names,
		logger:   logger,
	}
}

func (f *Fallback) Complete(ctx context.Context, input port.CompletionInput) (*port.CompletionOutput, error) {
	now := time.Now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, o := range f.oracles {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			f.logger.Info("oracle.Fallback: skipping provider",
				zap.String("provider", f.names[i]), zap.Time("circuit_open_until", resetAt))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := o.Complete(ctx, input)
		if err == nil {
			return out, nil
		}

		f.logger.Warn("oracle.Fallback: provider failed", zap.String("provider", f.names[i]), zap.Error(err))
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	// Either every provider was skipped or every attempt was rate limited.
	if lastErr == nil || allRateLimited {
		retryAfter := earliestReset.Sub(now)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all providers rate limited"), int(retryAfter.Seconds()))
	}

	return nil, NewServiceError("all", 0, fmt.Errorf("all providers failed: %w", lastErr))
}
