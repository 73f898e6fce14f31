package oracle

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"billscan/internal/port"
)

// RateLimited throttles calls to an underlying oracle.
type RateLimited struct {
	next    port.CompletionOracle
	limiter *rate.Limiter
}

// NewRateLimited allows requestsPerMinute calls per minute to next, with a
// burst of one. A non-positive rate returns next unchanged.
func NewRateLimited(next port.CompletionOracle, requestsPerMinute int) port.CompletionOracle {
	if requestsPerMinute <= 0 {
		return next
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
	}
}

// Complete blocks until the limiter admits the call or ctx is done.
func (r *RateLimited) Complete(ctx context.Context, input port.CompletionInput) (*port.CompletionOutput, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, NewServiceError("throttle", 0, fmt.Errorf("waiting for rate limiter: %w", err))
	}
	return r.next.Complete(ctx, input)
}
