package validator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Accepted input layouts for the custom "dateonly" and "timeofday" tags.
var (
	DateLayouts = []string{"2006-01-02"}
	TimeLayouts = []string{"15:04:05", "15:04"}
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("dateonly", layoutValidation(DateLayouts))
	_ = v.RegisterValidation("timeofday", layoutValidation(TimeLayouts))
	return &CustomValidator{
		validator: v,
	}
}

func layoutValidation(layouts []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, ok := ParseAny(value, layouts)
		return ok
	}
}

// ParseAny parses value with the first layout that matches.
func ParseAny(value string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "gt":
				errors[field] = field + " must be greater than " + e.Param()
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "dateonly":
				errors[field] = field + " must be a date in YYYY-MM-DD format"
			case "timeofday":
				errors[field] = field + " must be a time in HH:MM or HH:MM:SS format"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
