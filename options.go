package jwt

import "time"

// Option configures Decode and Codec
type Option func(*options)

type options struct {
	now    func() time.Time
	leeway time.Duration
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock sets the clock exp and nbf are checked against
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLeeway tolerates clock skew of up to d when checking exp and nbf
func WithLeeway(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.leeway = d
		}
	}
}
