package config

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// duration_min=<go duration> on a Duration or time.Duration field.
		_ = v.RegisterValidation("duration_min", func(fl validator.FieldLevel) bool {
			limit, err := time.ParseDuration(fl.Param())
			if err != nil {
				return false
			}
			return time.Duration(fl.Field().Int()) >= limit
		})

		_ = v.RegisterValidation("cookie_name", func(fl validator.FieldLevel) bool {
			name := fl.Field().String()
			if name == "" {
				return false
			}
			return (&http.Cookie{Name: name, Value: "x"}).Valid() == nil
		})

		_ = v.RegisterValidation("origin", func(fl validator.FieldLevel) bool {
			u, err := url.Parse(fl.Field().String())
			if err != nil {
				return false
			}
			return (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" && (u.Path == "" || u.Path == "/")
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
