package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures of the wrapped provider with
// jittered exponential backoff.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps p with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

type retryPolicy int

const (
	retryNever retryPolicy = iota
	retryOnce              // malformed output: the model may do better on a second try
	retryAlways
)

func retryPolicyFor(err error) retryPolicy {
	var (
		maxTok  *ErrMaxTokensExceeded
		badReq  *ErrInvalidRequest
		badResp *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retryNever
	case errors.As(err, &maxTok), errors.As(err, &badReq):
		return retryNever
	case errors.As(err, &badResp):
		return retryOnce
	default:
		// Rate limits, outages and plain network errors.
		return retryAlways
	}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		err         error
		retriedOnce bool
	)
	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch retryPolicyFor(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if retriedOnce {
				return nil, err
			}
			retriedOnce = true
		}
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		timer := time.NewTimer(r.backoff(attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

// backoff is InitialWait*Multiplier^attempt capped at MaxWait, with ±20%
// jitter. A rate limit's RetryAfter takes precedence.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.config.MaxWait))
	wait *= 1 + 0.2*(2*rand.Float64()-1)
	return time.Duration(math.Max(wait, 0))
}
