package validation

import (
	"reflect"
	"strings"

	"bank-management/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("account_type", validateAccountType)
	_ = v.RegisterValidation("user_role", validateUserRole)
	_ = v.RegisterValidation("positive_amount", validatePositiveAmount)
	_ = v.RegisterValidation("message_body", validateMessageBody)

	// Expose decimal.Decimal fields to numeric rules as float64
	v.RegisterCustomTypeFunc(decimalToFloat, decimal.Decimal{})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate runs struct validation and returns the first error, if any
func (v *Validator) Validate(s interface{}) error {
	return v.validate.Struct(s)
}

func decimalToFloat(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// Custom validation functions

// validateAccountType validates that account type is one of the allowed types
func validateAccountType(fl validator.FieldLevel) bool {
	return models.IsValidAccountType(strings.ToLower(fl.Field().String()))
}

// validateUserRole validates that role is one of the allowed roles
func validateUserRole(fl validator.FieldLevel) bool {
	return models.IsValidRole(strings.ToLower(fl.Field().String()))
}

// validatePositiveAmount validates that an amount is greater than 0
func validatePositiveAmount(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() > 0
	case reflect.Float32, reflect.Float64:
		return fl.Field().Float() > 0
	default:
		return false
	}
}

// validateMessageBody validates that a message body is non-empty and fits the mailbox
func validateMessageBody(fl validator.FieldLevel) bool {
	body := fl.Field().String()
	return body != "" && len(body) <= models.MaxMessageLength
}
