// Package config loads and validates shaping configuration.
//
// Values come from an optional config.yml, an optional .env file and the
// process environment, merged by Viper. Environment variables must carry the
// service name as prefix, with underscores for nesting:
//
//	ORDERS_THROTTLE_PERIOD=50ms
//	ORDERS_DEBOUNCE_DELAY=250ms
//
// # Usage
//
//	var cfg config.Shaping
//	if err := config.Load("orders", &cfg); err != nil {
//	    return err
//	}
//	th, err := config.BuildThrottle(&cfg, src, clockz.RealClock)
package config
