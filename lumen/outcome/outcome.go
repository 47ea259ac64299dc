package outcome

import "fmt"

// Kind tags the classified result of a pipeline run.
type Kind string

const (
	// KindSuccess means the network accepted and included the transaction.
	KindSuccess Kind = "SUCCESS"
	// KindValidationFailed means the payment intent was rejected before any
	// network call was made.
	KindValidationFailed Kind = "VALIDATION_FAILED"
	// KindAccountNotFound means the sender has no ledger presence and cannot
	// originate a transaction.
	KindAccountNotFound Kind = "ACCOUNT_NOT_FOUND"
	// KindSignerDenied means the external signer refused to authorize or sign.
	KindSignerDenied Kind = "SIGNER_DENIED"
	// KindSignerUnavailable means the external signer could not be reached.
	KindSignerUnavailable Kind = "SIGNER_UNAVAILABLE"
	// KindRejected means the network returned a well-formed refusal.
	KindRejected Kind = "REJECTED"
	// KindMalformed means a response was received but could not be understood.
	KindMalformed Kind = "MALFORMED"
	// KindTransportFailure means no usable response was obtained from the
	// network.
	KindTransportFailure Kind = "TRANSPORT_FAILURE"
)

// Result is the tagged outcome of a pipeline run or of a single stage.
type Result struct {
	Kind Kind
	// Hash is the 64-hex transaction identifier; set only on success.
	Hash string
	// Code is the network result code forwarded verbatim; set only on
	// rejection.
	Code string
	// Message is a human-readable, user-displayable reason for failure.
	Message string
	// Err is the underlying error, when one exists. It is never required to
	// classify the result.
	Err error
}

// Successful reports whether the result is a success.
func (r Result) Successful() bool {
	return r.Kind == KindSuccess
}

// Terminal failure constructors keep call sites declarative; the pipeline
// stops at the first stage that produces a non-success result.

// Success builds a success result carrying the transaction hash.
func Success(hash string) Result {
	return Result{Kind: KindSuccess, Hash: hash}
}

// ValidationFailed builds a validation failure with the offending reason.
func ValidationFailed(message string) Result {
	return Result{Kind: KindValidationFailed, Message: message}
}

// AccountNotFound builds a sender-unresolvable failure.
func AccountNotFound(identity string) Result {
	return Result{
		Kind:    KindAccountNotFound,
		Message: fmt.Sprintf("account %s does not exist on the network", identity),
	}
}

// SignerDenied builds a signer refusal carrying the signer's opaque message.
func SignerDenied(message string) Result {
	if message == "" {
		message = "the signer declined the request"
	}

	return Result{Kind: KindSignerDenied, Message: message}
}

// SignerUnavailable builds a signer-unreachable failure.
func SignerUnavailable(err error) Result {
	return Result{
		Kind:    KindSignerUnavailable,
		Message: "the signer is not available",
		Err:     err,
	}
}

// Rejected builds a well-formed network refusal carrying the result code.
func Rejected(code string) Result {
	return Result{Kind: KindRejected, Code: code, Message: code}
}

// Malformed builds a failure for responses that could not be understood.
func Malformed(message string, err error) Result {
	if message == "" {
		message = "the network returned an unreadable response"
	}

	return Result{Kind: KindMalformed, Message: message, Err: err}
}

// TransportFailure builds a failure for unreachable endpoints.
func TransportFailure(err error) Result {
	return Result{
		Kind:    KindTransportFailure,
		Message: "the network could not be reached",
		Err:     err,
	}
}
