package lumen

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stellar/go/strkey"
)

// amountPrecision is the asset's fractional precision: the smallest
// indivisible unit is 10^-7.
const amountPrecision = 7

// Validation errors surfaced to the user before any network call.
var (
	// ErrRecipientRequired is returned when the recipient identity is empty.
	ErrRecipientRequired = errors.New("recipient address is required")
	// ErrSenderRequired is returned when the sender identity is empty.
	ErrSenderRequired = errors.New("sender address is required")
	// ErrInvalidAddress is returned when an identity is not a valid ledger
	// public key.
	ErrInvalidAddress = errors.New("address is not a valid public key")
	// ErrInvalidAmount is returned when the amount does not parse, is not
	// positive, or carries more than 7 fractional digits.
	ErrInvalidAmount = errors.New("amount must be a positive number with at most 7 decimal places")
	// ErrSelfPayment is returned when sender and recipient are the same.
	ErrSelfPayment = errors.New("cannot send to the same address")
)

// ErrValidatorInit is returned when custom validator registration fails.
var ErrValidatorInit = errors.New("validator initialization failed")

// PaymentIntent is one user-requested transfer. It is created per
// submission and discarded after one pipeline run; a retry is a brand-new
// intent through a brand-new run.
type PaymentIntent struct {
	Sender    string `validate:"required,ledger_address"`
	Recipient string `validate:"required,ledger_address,nefield=Sender"`
	Amount    string `validate:"required,payment_amount"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
	errValidate  error
)

// initValidators configures the validator with the ledger-specific rules.
func initValidators() (*validator.Validate, error) {
	vld := validator.New(validator.WithRequiredStructEnabled())

	if err := vld.RegisterValidation("ledger_address", func(fl validator.FieldLevel) bool {
		return strkey.IsValidEd25519PublicKey(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to register 'ledger_address': %w", ErrValidatorInit, err)
	}

	if err := vld.RegisterValidation("payment_amount", func(fl validator.FieldLevel) bool {
		value, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}

		return value.IsPositive() && value.Exponent() >= -amountPrecision
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to register 'payment_amount': %w", ErrValidatorInit, err)
	}

	return vld, nil
}

func intentValidator() (*validator.Validate, error) {
	validateOnce.Do(func() {
		validate, errValidate = initValidators()
	})

	return validate, errValidate
}

// Validate checks the intent's invariants: both identities are well-formed
// public keys, amount > 0 with at most 7 fractional digits, and sender and
// recipient differ. It issues no network call.
func (i PaymentIntent) Validate() error {
	vld, err := intentValidator()
	if err != nil {
		return err
	}

	err = vld.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	for _, fieldError := range fieldErrors {
		if mapped := mapFieldError(fieldError); mapped != nil {
			return mapped
		}
	}

	return err
}

// mapFieldError translates the first validator failure into the matching
// user-facing sentinel.
func mapFieldError(fieldError validator.FieldError) error {
	switch fieldError.Field() {
	case "Sender":
		if fieldError.Tag() == "required" {
			return ErrSenderRequired
		}

		return ErrInvalidAddress
	case "Recipient":
		switch fieldError.Tag() {
		case "required":
			return ErrRecipientRequired
		case "nefield":
			return ErrSelfPayment
		default:
			return ErrInvalidAddress
		}
	case "Amount":
		return ErrInvalidAmount
	default:
		return nil
	}
}
