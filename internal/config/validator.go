package config

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/alexisbeaulieu97/todos/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	kvDrivers = map[string]struct{}{"file": {}, "sqlite": {}, "memory": {}}
	logLevels = map[string]struct{}{"trace": {}, "debug": {}, "info": {}, "warn": {}, "error": {}, "disabled": {}}
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return strings.ToLower(field.Name)
			}
			return name
		})

		_ = v.RegisterValidation("kv_driver", func(fl validator.FieldLevel) bool {
			_, ok := kvDrivers[fl.Field().String()]
			return ok
		})

		_ = v.RegisterValidation("log_level", func(fl validator.FieldLevel) bool {
			_, ok := logLevels[strings.ToLower(fl.Field().String())]
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig checks the configuration against its schema.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return apperrors.NewValidationError("", "required", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	return nil
}

// convertValidationError normalizes validator errors into validation errors
// keyed by their YAML path.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		return apperrors.NewValidationError(yamlFieldName(ve), ve.Tag(), err)
	}

	return apperrors.NewValidationError("", "", err)
}

func yamlFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		ns = ns[idx+1:]
	}
	return ns
}
