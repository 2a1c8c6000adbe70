package watcher

import "time"

// backoff produces the increasing delays between retried fetch attempts:
// base, then doubling, capped at max. With the default 2s base the
// sequence is 2s, 4s, 8s, ...
type backoff struct {
	base time.Duration
	max  time.Duration
	cur  time.Duration
}

func newBackoff(base, max time.Duration) *backoff {
	return &backoff{base: base, max: max}
}

// Next returns the delay to wait before the next attempt.
func (b *backoff) Next() time.Duration {
	if b.cur <= 0 {
		b.cur = b.base
	} else {
		b.cur *= 2
		if b.max > 0 && b.cur > b.max {
			b.cur = b.max
		}
	}
	return b.cur
}
