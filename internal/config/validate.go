package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"numberplater/internal/plate"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("family", func(fl validator.FieldLevel) bool {
			_, err := plate.ParseFamilySet([]string{fl.Field().String()})
			return err == nil
		})
	})
	return validate
}

// Validate checks cfg against its field constraints.
func Validate(cfg Config) error {
	err := validatorInstance().Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be >= %s, got %v", field, fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be <= %s, got %v", field, fe.Param(), fe.Value())
	case "family":
		return fmt.Sprintf("%s: unknown family %q", field, fe.Value())
	case "required":
		return fmt.Sprintf("%s is required", field)
	}
	return fmt.Sprintf("%s failed %q", field, fe.Tag())
}
