package lumen

// State is one stage of the pipeline's traversal. No state is re-entrant; a
// fresh PaymentIntent starts a fresh traversal from StateIdle.
type State string

const (
	StateIdle               State = "IDLE"
	StateValidating         State = "VALIDATING"
	StateResolvingAccount   State = "RESOLVING_ACCOUNT"
	StateSelectingOperation State = "SELECTING_OPERATION"
	StateAssembling         State = "ASSEMBLING"
	StateAwaitingSignature  State = "AWAITING_SIGNATURE"
	StateSubmitting         State = "SUBMITTING"
	StateCompleted          State = "COMPLETED"
	StateFailed             State = "FAILED"
)

// Terminal reports whether the state ends a traversal.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}
