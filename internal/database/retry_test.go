package database

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy_Next(t *testing.T) {
	p := RetryPolicy{MaxRetries: 3, BaseBackoff: time.Second}
	boom := errors.New("boom")

	assert.Equal(t, Step{Kind: Connected}, p.Next(1, nil))
	assert.Equal(t, Step{Kind: RetryAfter, Delay: time.Second}, p.Next(1, boom))
	assert.Equal(t, Step{Kind: RetryAfter, Delay: 2 * time.Second}, p.Next(2, boom))

	last := p.Next(3, boom)
	assert.Equal(t, Failed, last.Kind)
	assert.Equal(t, boom, last.Cause)
	assert.Zero(t, last.Delay)

	// success on the final attempt still counts
	assert.Equal(t, Connected, p.Next(3, nil).Kind)
}

func TestRetryPolicy_SingleAttempt(t *testing.T) {
	p := RetryPolicy{MaxRetries: 0, BaseBackoff: time.Second}
	assert.Equal(t, Failed, p.Next(1, errors.New("x")).Kind)
}

func TestRetryPolicy_Backoff(t *testing.T) {
	p := RetryPolicy{MaxRetries: 5, BaseBackoff: 100 * time.Millisecond}
	assert.Equal(t, 100*time.Millisecond, p.Backoff(1))
	assert.Equal(t, 200*time.Millisecond, p.Backoff(2))
	assert.Equal(t, 400*time.Millisecond, p.Backoff(3))
	assert.Equal(t, 800*time.Millisecond, p.Backoff(4))
}
