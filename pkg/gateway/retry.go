package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// RetryConfig bounds the retry policy applied to transient gateway
// failures.
type RetryConfig struct {
	// MaxRetries is the number of retries after the initial attempt; zero
	// means 3. Negative disables retries.
	MaxRetries int

	// BaseDelay is the delay before the first retry; zero means 1s.
	BaseDelay time.Duration

	// MaxDelay caps the backoff delay; zero means 30s.
	MaxDelay time.Duration

	// Multiplier grows the delay between retries; zero means 2.
	Multiplier float64
}

func (r RetryConfig) withDefaults() RetryConfig {
	out := r
	if out.MaxRetries == 0 {
		out.MaxRetries = 3
	}
	if out.MaxRetries < 0 {
		out.MaxRetries = 0
	}
	if out.BaseDelay <= 0 {
		out.BaseDelay = time.Second
	}
	if out.MaxDelay <= 0 {
		out.MaxDelay = 30 * time.Second
	}
	if out.Multiplier <= 0 {
		out.Multiplier = 2
	}
	return out
}

// newBackOff builds a jitter-free exponential policy so the delay sequence
// is BaseDelay, BaseDelay*Multiplier, ... capped at MaxDelay.
func (r RetryConfig) newBackOff(ctx context.Context) backoff.BackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.BaseDelay
	policy.RandomizationFactor = 0
	policy.Multiplier = r.Multiplier
	policy.MaxInterval = r.MaxDelay
	policy.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.MaxRetries)), ctx)
}

// execute runs a single logical request through the retry policy. Transport
// failures and 429/5xx responses retry; anything else returns immediately.
func (c *Client) execute(ctx context.Context, method, requestURL, operation string, payload []byte) ([]byte, error) {
	var result []byte
	var lastErr error
	attempts := 0

	work := func() error {
		attempts++
		body, err := c.send(ctx, method, requestURL, operation, payload)
		if err != nil {
			lastErr = err
			if !IsRetryable(err) {
				return backoff.Permanent(err)
			}
			c.logRetry(operation, attempts, err)
			return err
		}
		result = body
		return nil
	}

	err := backoff.Retry(work, c.retry.newBackOff(ctx))
	if err == nil {
		return result, nil
	}
	if lastErr == nil {
		// The context died before the first attempt ran.
		return nil, fmt.Errorf("gateway request %s interrupted: %w", operation, err)
	}
	if IsRetryable(lastErr) {
		if attempts > c.retry.MaxRetries {
			return nil, &RetryExhaustedError{Attempts: attempts, Err: lastErr}
		}
		// Retries remained but the context died during backoff.
		return nil, fmt.Errorf("gateway request %s interrupted: %w", operation, err)
	}
	return nil, lastErr
}

func (c *Client) logRetry(operation string, attempt int, err error) {
	if c.logger == nil || !c.logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	c.logger.Debug("gateway request retrying",
		zap.String("operation", operation),
		zap.Int("attempt", attempt),
		zap.String("cause", err.Error()),
	)
}
