package signer

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrDenied is returned when the signer refuses to authorize or sign.
	ErrDenied = errors.New("signer denied the request")
	// ErrUnavailable is returned when the signer cannot be reached.
	ErrUnavailable = errors.New("signer is unavailable")
)

// Signer is the capability boundary to the out-of-process signer.
type Signer interface {
	// Available reports whether the signer can currently be reached.
	Available(ctx context.Context) (bool, error)

	// RequestAuthorization asks the signer for permission to act on behalf
	// of one of its identities and returns that identity. A refusal is
	// reported as an error wrapping ErrDenied.
	RequestAuthorization(ctx context.Context) (string, error)

	// Sign hands the unsigned envelope to the signer and returns the signed
	// envelope in the same text-safe transport encoding. The network
	// passphrase must match the one the envelope was built for; a mismatch
	// is the signer's to reject. Refusals wrap ErrDenied; transport problems
	// wrap ErrUnavailable.
	Sign(ctx context.Context, envelopeXDR, networkPassphrase, identity string) (string, error)
}

// DeniedError carries the signer's opaque refusal message alongside ErrDenied
// so callers can both classify and display it.
type DeniedError struct {
	Message string
}

// Error returns the signer-reported message.
func (e *DeniedError) Error() string {
	if e.Message == "" {
		return ErrDenied.Error()
	}

	return fmt.Sprintf("signer denied the request: %s", e.Message)
}

// Unwrap marks the error as a denial.
func (e *DeniedError) Unwrap() error {
	return ErrDenied
}

// Denied builds a denial error carrying the signer's message verbatim.
func Denied(message string) error {
	return &DeniedError{Message: message}
}

// DeniedMessage extracts the signer-reported message from an error chain.
// It returns the empty string when err is not a denial.
func DeniedMessage(err error) string {
	var denied *DeniedError
	if errors.As(err, &denied) {
		return denied.Message
	}

	if errors.Is(err, ErrDenied) {
		return ErrDenied.Error()
	}

	return ""
}
