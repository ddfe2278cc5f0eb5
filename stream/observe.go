package stream

import "github.com/kbukum/streamext/logger"

// Observer receives item lifecycle notifications from Throttle and Debounce.
// Calls happen synchronously on the polling goroutine.
type Observer interface {
	// ItemReceived is called for every item pulled from the source.
	ItemReceived()
	// ItemDropped is called when a pending item is superseded by a newer one.
	ItemDropped()
	// ItemEmitted is called for every item handed downstream.
	ItemEmitted()
	// Finished is called once, when the combinator reports exhaustion.
	Finished()
}

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) ItemReceived() {}
func (NopObserver) ItemDropped()  {}
func (NopObserver) ItemEmitted()  {}
func (NopObserver) Finished()     {}

// Option configures a shaping combinator.
type Option func(*options)

type options struct {
	name     string
	observer Observer
	log      *logger.Logger
}

// WithName sets the stage name used in logs. Defaults to the combinator kind.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithObserver attaches an Observer.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithLogger sets the logger for lifecycle events.
// Defaults to logger.Get("stream").
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

func buildOptions(kind string, opts []Option) options {
	o := options{name: kind}
	for _, opt := range opts {
		opt(&o)
	}
	if o.observer == nil {
		o.observer = NopObserver{}
	}
	if o.log == nil {
		o.log = logger.Get("stream")
	}
	o.log = o.log.WithStage(o.name, "")
	return o
}
