package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already in use")
	// ErrEmptyCart guards checkout entry: a flow never starts on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrPaymentDeclined is returned when the payment collaborator refuses the charge.
	ErrPaymentDeclined = errors.New("payment declined")
)
