package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the service
type Config struct {
	// BindAddress is the host:port the HTTP server listens on
	BindAddress string `validate:"required,hostname_port"`

	// LogLevel is one of trace, debug, info, warn, error
	LogLevel string `validate:"required,oneof=trace debug info warn error"`

	// Debug prints stack traces of recovered panics
	Debug bool

	// FilterByRestaurant makes the list endpoint honor the restaurant id
	FilterByRestaurant bool

	// AMQPURL enables event publishing to RabbitMQ when set
	AMQPURL   string `validate:"omitempty,url"`
	AMQPQueue string `validate:"required_with=AMQPURL"`
}

// FieldError describes a single invalid setting
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (f FieldError) Error() string {
	return fmt.Sprintf("Field '%s': %s", f.Field, f.Message)
}

// ValidationErrors is returned by Validate when one or more settings are invalid
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every setting and reports all invalid ones at once
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, FieldError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed on the '%s' tag", fe.Tag()),
		})
	}
	return errs
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(filenames ...string) error {
	for _, fn := range filenames {
		err := godotenv.Load(fn)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", fn, err)
		}
	}
	return nil
}
