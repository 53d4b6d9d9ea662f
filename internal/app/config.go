package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	OptionsPath string `validate:"required"` // .hcl/.yaml/.yml file or a directory of them
	Building    string // empty assembles every building

	// Assignments are `attribute=expression` overrides applied to every
	// building after it is loaded.
	Assignments []string `validate:"dive,contains=="`

	LogFormat string     `validate:"omitempty,oneof=text json"`
	LogLevel  slog.Level // zero value is info
}

var validate = validator.New()

func NewConfig(cfg Config) (*Config, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, formatValidationError(err)
	}
	return &cfg, nil
}

// formatValidationError converts validator errors into readable messages.
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf("field '%s' failed validation: %s (value: '%v')", e.Namespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}
