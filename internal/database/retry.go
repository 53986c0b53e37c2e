package database

import "time"

// StepKind is the outcome of a single connection attempt.
type StepKind int

const (
	Connected StepKind = iota
	RetryAfter
	Failed
)

func (k StepKind) String() string {
	switch k {
	case Connected:
		return "connected"
	case RetryAfter:
		return "retry"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Step tells the connect loop what to do after an attempt.
// Delay is set for RetryAfter, Cause for Failed.
type Step struct {
	Kind  StepKind
	Delay time.Duration
	Cause error
}

// RetryPolicy decides between retrying and giving up. MaxRetries is the total
// number of attempts; the wait before attempt n+1 is BaseBackoff * 2^(n-1).
type RetryPolicy struct {
	MaxRetries  int
	BaseBackoff time.Duration
}

// DefaultRetryPolicy matches the documented defaults: three attempts, one second base.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, BaseBackoff: time.Second}

// Next evaluates the result of attempt (1-based). It performs no I/O.
func (p RetryPolicy) Next(attempt int, err error) Step {
	if err == nil {
		return Step{Kind: Connected}
	}
	max := p.MaxRetries
	if max < 1 {
		max = 1
	}
	if attempt >= max {
		return Step{Kind: Failed, Cause: err}
	}
	return Step{Kind: RetryAfter, Delay: p.Backoff(attempt)}
}

// Backoff returns the wait that follows a failed attempt.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := p.BaseBackoff
	for i := 1; i < attempt; i++ {
		d *= 2
	}
	return d
}
