package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/weathercast/backend/internal/domain"
)

var validate = validator.New()

// fieldMessages maps struct fields to the message shown when they fail validation
var fieldMessages = map[string]string{
	"Humidity": "humidity must be between 0 and 100%",
}

// ValidateInput checks user supplied weather parameters before any prediction is attempted.
// Only humidity is range checked; the other fields are passed through as-is.
func ValidateInput(in domain.WeatherInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.StructField()]
		if !ok {
			msg = fmt.Sprintf("%s failed %q validation", strings.ToLower(fe.StructField()), fe.Tag())
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
}
