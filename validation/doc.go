// Package validation checks configuration and input values.
//
// Struct tags cover most fields and report them by their config key:
//
//	type APIConfig struct {
//	    BaseURL string `mapstructure:"base_url" validate:"required,url"`
//	}
//	err := validation.Validate(cfg) // CONFIG_INVALID: api.base_url: must be a valid URL
//
// Checks that tags cannot express go through a Validator:
//
//	v := validation.New()
//	v.Pattern("api.routing_header", h, `^[A-Za-z0-9-]+$`)
//	err := v.Err()
package validation
