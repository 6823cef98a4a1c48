package arbitrary

import (
	"context"
	"log/slog"
)

// DefaultMaxTries is the retry budget shared by filter and uniqueness
// combinators.
const DefaultMaxTries = 10_000

// Observer receives sampling outcomes from refinement combinators. The
// metrics package provides an implementation; nil observers are ignored.
type Observer interface {
	// ObserveSample is called after a constrained draw succeeded.
	ObserveSample(op string, attempts int)

	// ObserveFailure is called when a constrained draw gave up.
	ObserveFailure(op string, err error)

	// ObserveScope reports the size of a uniqueness scope after an insert.
	ObserveScope(op string, size int)
}

// Option configures a refinement combinator.
type Option func(*options)

type options struct {
	maxTries int
	logger   *slog.Logger
	observer Observer
	backend  Backend
	name     string
}

// WithMaxTries overrides the retry budget. Values <= 0 restore the default.
func WithMaxTries(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = DefaultMaxTries
		}
		o.maxTries = n
	}
}

// WithLogger sets the logger that constraint failures are reported to at
// debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithObserver sets the sampling observer.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithBackend sets the randomness backend used by InjectNull.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithName prefixes the op reported to loggers and observers, so
// "age" turns a filter's op into "age.filter".
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func newOptions(opts []Option) options {
	o := options{maxTries: DefaultMaxTries}
	for _, opt := range opts {
		opt(&o)
	}
	o.backend = orDefault(o.backend)
	return o
}

// governor runs the bounded retry loop for filter and unique.
type governor struct {
	op string
	options
}

func newGovernor(op string, opts []Option) governor {
	o := newOptions(opts)
	if o.name != "" {
		op = o.name + "." + op
	}
	return governor{op: op, options: o}
}

// governedDraw samples g until accept reports true. A fixed g is drawn exactly once.
// Errors from g or accept are returned unchanged.
func governedDraw[T any](gov *governor, g Generator[T], accept func(T) (bool, error)) (T, error) {
	limit := gov.maxTries
	fixed := g.Fixed()
	if fixed {
		limit = 1
	}

	var last T
	for attempt := 1; attempt <= limit; attempt++ {
		v, err := g.Sample()
		if err != nil {
			var zero T
			return zero, err
		}
		ok, err := accept(v)
		if err != nil {
			var zero T
			return zero, err
		}
		if ok {
			if gov.observer != nil {
				gov.observer.ObserveSample(gov.op, attempt)
			}
			return v, nil
		}
		last = v
	}

	cerr := &ConstraintError{Op: gov.op, Attempts: limit, Fixed: fixed, Value: last}
	if gov.logger != nil && gov.logger.Enabled(context.Background(), slog.LevelDebug) {
		gov.logger.Debug("constraint not satisfied",
			"op", gov.op,
			"attempts", limit,
			"fixed", fixed,
			"last", last,
		)
	}
	if gov.observer != nil {
		gov.observer.ObserveFailure(gov.op, cerr)
	}
	var zero T
	return zero, cerr
}
