package execution

import (
	"time"

	"wqa/internal/registry"
)

// RetryPolicy bounds re-attempts of failed cases. Retries apply to
// assertion and timeout failures; infrastructure failures and skips are
// never retried.
type RetryPolicy struct {
	Retries int
}

// Attempts returns the total attempt budget (first run plus retries).
func (p RetryPolicy) Attempts() int {
	if p.Retries < 0 {
		return 1
	}
	return p.Retries + 1
}

// TimeoutPolicy bounds a single case attempt.
type TimeoutPolicy struct {
	CaseTimeout time.Duration
}

// For returns the timeout for a case, honoring a per-case override.
func (p TimeoutPolicy) For(c registry.Case) time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	if p.CaseTimeout > 0 {
		return p.CaseTimeout
	}
	return 30 * time.Second
}
