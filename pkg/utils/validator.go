package utils

import (
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Custom validations
	v.RegisterValidation("payment_type", validatePaymentType)
	v.RegisterValidation("rsvp_status", validateRSVPStatus)

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// Accepted wire values for the checkout paymentType field.
func validatePaymentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "full", "installments":
		return true
	}
	return false
}

func validateRSVPStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "PENDING", "CONFIRMED", "DECLINED", "MAYBE":
		return true
	}
	return false
}
