// Package validation checks configuration values and reports failures as
// INVALID_CONFIG errors.
//
// # Struct Tag Validation
//
//	type Throttle struct {
//	    Period        time.Duration `mapstructure:"period" validate:"gte=0"`
//	    MaxReadyCount int           `mapstructure:"max_ready_count" validate:"min=1"`
//	}
//	err := validation.Struct(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Positive("debounce.delay", cfg.Delay)
//	err := v.Validate()
package validation
