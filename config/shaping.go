package config

import (
	"strings"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/kbukum/streamext/errors"
	"github.com/kbukum/streamext/logger"
	"github.com/kbukum/streamext/stream"
	"github.com/kbukum/streamext/validation"
)

// Throttle modes.
const (
	ModeInterval    = "interval"
	ModeTokenBucket = "token_bucket"
)

// Shaping configures the throttle and debounce stages of one pipeline.
//
// Example config.yml:
//
//	name: orders
//	logging:
//	  level: debug
//	throttle:
//	  mode: interval
//	  period: 100ms
//	  edge: trailing
//	  max_ready_count: 32
//	debounce:
//	  delay: 250ms
//
// Every key can be overridden with an environment variable prefixed with the
// service name, e.g. ORDERS_THROTTLE_PERIOD=50ms.
type Shaping struct {
	Name     string        `yaml:"name" mapstructure:"name" validate:"required"`
	Logging  logger.Config `yaml:"logging" mapstructure:"logging"`
	Throttle Throttle      `yaml:"throttle" mapstructure:"throttle"`
	Debounce Debounce      `yaml:"debounce" mapstructure:"debounce"`
}

// Throttle configures a throttle stage. Period and Edge apply to the
// interval mode, Rate and Burst to the token bucket mode.
type Throttle struct {
	Mode          string        `yaml:"mode" mapstructure:"mode" validate:"oneof=interval token_bucket"`
	Period        time.Duration `yaml:"period" mapstructure:"period" validate:"gte=0"`
	Edge          string        `yaml:"edge" mapstructure:"edge"`
	MaxReadyCount int           `yaml:"max_ready_count" mapstructure:"max_ready_count" validate:"min=1"`
	Rate          float64       `yaml:"rate" mapstructure:"rate" validate:"gte=0"`
	Burst         int           `yaml:"burst" mapstructure:"burst" validate:"gte=0"`
}

// Debounce configures a debounce stage.
type Debounce struct {
	Delay time.Duration `yaml:"delay" mapstructure:"delay" validate:"gte=0"`
}

// ApplyDefaults fills in unset fields.
func (c *Shaping) ApplyDefaults() {
	c.Logging.ApplyDefaults()
	c.Throttle.ApplyDefaults()
}

// ApplyDefaults fills in unset throttle fields.
func (t *Throttle) ApplyDefaults() {
	if t.Mode == "" {
		t.Mode = ModeInterval
	}
	t.Mode = strings.ToLower(strings.TrimSpace(t.Mode))
	if t.Edge == "" {
		t.Edge = stream.Leading.String()
	}
	if t.MaxReadyCount == 0 {
		t.MaxReadyCount = 1
	}
	if t.Mode == ModeTokenBucket && t.Burst == 0 {
		t.Burst = 1
	}
}

// Validate checks struct tags first, then the rules that span fields.
func (c *Shaping) Validate() error {
	v := validation.New()
	v.Merge("shaping", validation.Struct(c))

	if c.Throttle.Mode == ModeInterval {
		_, err := stream.ParseEdge(c.Throttle.Edge)
		v.Custom(err == nil, "throttle.edge", "must be one of: leading, trailing")
	}
	if c.Throttle.Mode == ModeTokenBucket {
		v.Custom(c.Throttle.Rate > 0, "throttle.rate", "must be positive in token_bucket mode")
	}
	v.Merge("logging", c.Logging.Validate())

	return v.Validate()
}

// Logger returns a logger built from the logging section, tagged with the
// pipeline name.
func (c *Shaping) Logger() *logger.Logger {
	return logger.New(&c.Logging, c.Name).
		WithComponent("stream").
		WithFields(logger.Fields("throttle_mode", c.Throttle.Mode))
}

// IntervalConfig converts the throttle section for stream.ThrottleInterval.
func (t *Throttle) IntervalConfig() (stream.ThrottleIntervalConfig, error) {
	edge, err := stream.ParseEdge(t.Edge)
	if err != nil {
		return stream.ThrottleIntervalConfig{}, err
	}
	return stream.ThrottleIntervalConfig{Period: t.Period, Edge: edge}, nil
}

// TokenBucketConfig converts the throttle section for stream.ThrottleTokenBucket.
func (t *Throttle) TokenBucketConfig() stream.TokenBucketConfig {
	return stream.TokenBucketConfig{Rate: t.Rate, Burst: t.Burst}
}

// BuildThrottle wraps source in the throttle described by cfg. The stage is
// named after the pipeline and logs through cfg.Logger(); opts are applied
// after those and can override them.
func BuildThrottle[T any](cfg *Shaping, source stream.Stream[T], clock clockz.Clock, opts ...stream.Option) (*stream.Throttle[T], error) {
	opts = append([]stream.Option{
		stream.WithName(cfg.Name + ".throttle"),
		stream.WithLogger(cfg.Logger()),
	}, opts...)

	switch cfg.Throttle.Mode {
	case ModeInterval:
		ic, err := cfg.Throttle.IntervalConfig()
		if err != nil {
			return nil, err
		}
		return stream.ThrottleInterval(source, clock, ic, cfg.Throttle.MaxReadyCount, opts...), nil
	case ModeTokenBucket:
		if cfg.Throttle.Rate <= 0 {
			return nil, errors.InvalidConfig("throttle.rate", "must be positive in token_bucket mode")
		}
		return stream.ThrottleTokenBucket(source, clock, cfg.Throttle.TokenBucketConfig(), cfg.Throttle.MaxReadyCount, opts...), nil
	default:
		return nil, errors.InvalidConfig("throttle.mode", "unknown mode "+cfg.Throttle.Mode)
	}
}

// BuildDebounce wraps source in the debounce described by cfg.
func BuildDebounce[T any](cfg *Shaping, source stream.Stream[T], clock clockz.Clock, opts ...stream.Option) *stream.Debounce[T] {
	opts = append([]stream.Option{
		stream.WithName(cfg.Name + ".debounce"),
		stream.WithLogger(cfg.Logger()),
	}, opts...)
	return stream.NewDebounce(source, clock, cfg.Debounce.Delay, opts...)
}
