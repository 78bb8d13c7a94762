package validator

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	ErrRequired = "is required"
	ErrMinValue = "must be at least %s"
	ErrMaxValue = "must be at most %s"
	ErrShowDate = "must be a calendar date in YYYY-MM-DD format"
	ErrShowTime = "must be a 24-hour time in HH:MM format"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("show_date", validateShowDate)
	validator.RegisterValidation("show_time", validateShowTime)

	return validator
}

func validateShowDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func validateShowTime(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != 5 {
		return false
	}

	_, err := time.Parse("15:04", value)

	return err == nil
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "show_date":
		return ErrShowDate
	case "show_time":
		return ErrShowTime
	default:
		return "is invalid"
	}
}
