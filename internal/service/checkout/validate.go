package checkout

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ShippingInput is the shipping step form. Field rules match what the
// storefront has always enforced; all must pass before the flow advances.
type ShippingInput struct {
	FirstName      string `json:"firstName" validate:"min=2"`
	LastName       string `json:"lastName" validate:"min=2"`
	Email          string `json:"email" validate:"email"`
	Phone          string `json:"phone" validate:"min=10"`
	Address        string `json:"address" validate:"min=5"`
	City           string `json:"city" validate:"min=2"`
	State          string `json:"state" validate:"min=2"`
	PostalCode     string `json:"postalCode" validate:"min=5"`
	Country        string `json:"country" validate:"min=2"`
	ShippingMethod string `json:"shippingMethod" validate:"oneof=standard express overnight"`
}

// PaymentInput is the payment step form. Card number separators are cosmetic
// and stripped before the length rule applies. When the billing address is
// not the shipping address, the billing block must be filled in.
type PaymentInput struct {
	CardholderName    string `json:"cardholderName" validate:"min=2"`
	CardNumber        string `json:"cardNumber" validate:"cardnumber"`
	ExpiryDate        string `json:"expiryDate" validate:"expiry"`
	CVV               string `json:"cvv" validate:"min=3"`
	SameAsShipping    bool   `json:"sameAsShipping"`
	BillingAddress    string `json:"billingAddress" validate:"required_if=SameAsShipping false"`
	BillingCity       string `json:"billingCity" validate:"required_if=SameAsShipping false"`
	BillingState      string `json:"billingState" validate:"required_if=SameAsShipping false"`
	BillingPostalCode string `json:"billingPostalCode" validate:"required_if=SameAsShipping false"`
	BillingCountry    string `json:"billingCountry" validate:"required_if=SameAsShipping false"`
}

// ValidationError carries field-level messages keyed by JSON field name. It
// blocks a transition but is never fatal.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

var expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("expiry", func(fl validator.FieldLevel) bool {
		return expiryPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		digits := strings.ReplaceAll(fl.Field().String(), " ", "")
		return len(digits) >= 16
	})
	return v
}

var fieldMessages = map[string]string{
	"firstName":         "First name must be at least 2 characters",
	"lastName":          "Last name must be at least 2 characters",
	"email":             "Please enter a valid email address",
	"phone":             "Phone number must be at least 10 characters",
	"address":           "Address must be at least 5 characters",
	"city":              "City must be at least 2 characters",
	"state":             "State must be at least 2 characters",
	"postalCode":        "Postal code must be at least 5 characters",
	"country":           "Country must be at least 2 characters",
	"shippingMethod":    "Select a valid shipping method",
	"cardholderName":    "Cardholder name must be at least 2 characters",
	"cardNumber":        "Card number must be at least 16 characters",
	"expiryDate":        "Must be in MM/YY format",
	"cvv":               "CVV must be at least 3 characters",
	"billingAddress":    "Billing address is required",
	"billingCity":       "Billing city is required",
	"billingState":      "Billing state is required",
	"billingPostalCode": "Billing postal code is required",
	"billingCountry":    "Billing country is required",
}

func validateInput(v *validator.Validate, in interface{}) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = "Invalid value"
		}
		fields[fe.Field()] = msg
	}
	return &ValidationError{Fields: fields}
}
