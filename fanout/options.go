package fanout

import "github.com/kbukum/promptprobe/logger"

// Option configures a Run.
type Option func(*options)

type options struct {
	concurrency int
	observer    Observer
	log         *logger.Logger
}

func newOptions(opts []Option) *options {
	o := &options{
		observer: nopObserver{},
		log:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithConcurrency bounds the number of submissions in flight. Values < 1, or
// at least n, mean all submissions start at once. Bounding never changes
// result ordering or failure reporting.
func WithConcurrency(k int) Option {
	return func(o *options) { o.concurrency = k }
}

// WithObserver adds an observer. Repeated calls add more observers.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs == nil {
			return
		}
		if _, ok := o.observer.(nopObserver); ok {
			o.observer = obs
			return
		}
		o.observer = multiObserver{o.observer, obs}
	}
}

// WithLogger sets the logger. Each line carries the submission's index and
// request id.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l.WithComponent("fanout")
		}
	}
}
