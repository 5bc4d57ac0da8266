package output

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// linearBackoff increases its delay by one second per attempt, matching the
// original Rust publish_with_backoff helpers in apache_kafka.rs/gcs.rs: the
// first retry waits 0s, the second 1s, the third 2s, and so on.
type linearBackoff struct {
	attempt int
}

func (b *linearBackoff) NextBackOff() time.Duration {
	d := time.Duration(b.attempt) * time.Second
	b.attempt++
	return d
}

func (b *linearBackoff) Reset() { b.attempt = 0 }

// publishWithLinearBackoff retries op with linearBackoff, giving up after
// maxRetries retries (maxRetries+1 attempts in all).
func publishWithLinearBackoff(op func() error, maxRetries uint64) error {
	return backoff.Retry(op, backoff.WithMaxRetries(&linearBackoff{}, maxRetries))
}
