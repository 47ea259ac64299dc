package envelope

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stellar/go/txnbuild"
)

// DefaultTimeout is the relative validity window added to the current time
// to form the envelope's absolute time bound.
const DefaultTimeout = 30 * time.Second

var (
	// ErrEmptySource is returned when the source identity is missing.
	ErrEmptySource = errors.New("source identity is empty")
	// ErrEmptyDestination is returned when the destination identity is missing.
	ErrEmptyDestination = errors.New("destination identity is empty")
	// ErrEmptyPassphrase is returned when the network identifier is missing.
	// A wrong or missing passphrase is rejected by the signer or the network,
	// never silently defaulted here.
	ErrEmptyPassphrase = errors.New("network passphrase is empty")
	// ErrNegativeSequence is returned when the resolved sequence is negative.
	ErrNegativeSequence = errors.New("sequence number is negative")
)

// OperationKind names the single operation embedded in an envelope.
type OperationKind string

const (
	// OpPayment transfers the native asset to an existing account.
	OpPayment OperationKind = "payment"
	// OpCreateAccount funds a new account with a starting balance.
	OpCreateAccount OperationKind = "create_account"
)

// Selection is the outcome of operation selection.
type Selection struct {
	Kind      OperationKind
	Operation txnbuild.Operation
}

// SelectOperation picks the operation for the destination. The network
// requires an account record to exist before it can receive an arbitrary
// payment, so funding an unseen identity is expressed as account creation.
// The network's minimum-balance reserve is not validated locally; an
// insufficient starting balance surfaces as a rejection at submission time.
func SelectOperation(destinationExists bool, destination, amount string) Selection {
	if destinationExists {
		return Selection{
			Kind: OpPayment,
			Operation: &txnbuild.Payment{
				Destination: destination,
				Amount:      amount,
				Asset:       txnbuild.NativeAsset{},
			},
		}
	}

	return Selection{
		Kind: OpCreateAccount,
		Operation: &txnbuild.CreateAccount{
			Destination: destination,
			Amount:      amount,
		},
	}
}

// Params carries everything assembly needs; all account state is resolved
// before this point.
type Params struct {
	// Source is the sender identity originating the transaction.
	Source string
	// Sequence is the sender's current sequence counter as observed on the
	// network. The envelope consumes Sequence+1.
	Sequence int64
	// Destination is the recipient identity.
	Destination string
	// Amount is the decimal amount string (payment amount or starting
	// balance, depending on selection).
	Amount string
	// DestinationExists selects between payment and account creation.
	DestinationExists bool
	// NetworkPassphrase identifies the target network. It must match exactly
	// what the signer and the submission endpoint expect.
	NetworkPassphrase string
	// BaseFee is the flat per-operation fee; zero means the network minimum.
	BaseFee int64
	// Timeout is the relative validity window; zero means DefaultTimeout.
	Timeout time.Duration
}

// Unsigned is the immutable assembled envelope in its text-safe transport
// encoding. A given sequence number must never be embedded in two envelopes
// that are both submitted; the pipeline's serialization guarantees that.
type Unsigned struct {
	// XDR is the canonical binary wire encoding in base64.
	XDR string
	// Kind records the selected operation.
	Kind OperationKind
	// Sequence is the sequence number this envelope consumes.
	Sequence int64
	// NetworkPassphrase is the network identifier the envelope was built for.
	NetworkPassphrase string
	// ExpiresAt is the absolute time bound after which the envelope is no
	// longer valid for inclusion.
	ExpiresAt time.Time
}

// Build assembles and encodes the unsigned transaction envelope.
func Build(p Params) (Unsigned, error) {
	if strings.TrimSpace(p.Source) == "" {
		return Unsigned{}, ErrEmptySource
	}

	if strings.TrimSpace(p.Destination) == "" {
		return Unsigned{}, ErrEmptyDestination
	}

	if strings.TrimSpace(p.NetworkPassphrase) == "" {
		return Unsigned{}, ErrEmptyPassphrase
	}

	if p.Sequence < 0 {
		return Unsigned{}, ErrNegativeSequence
	}

	baseFee := p.BaseFee
	if baseFee <= 0 {
		baseFee = txnbuild.MinBaseFee
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	selection := SelectOperation(p.DestinationExists, p.Destination, p.Amount)
	expiresAt := time.Now().UTC().Add(timeout)

	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount: &txnbuild.SimpleAccount{
			AccountID: p.Source,
			Sequence:  p.Sequence,
		},
		IncrementSequenceNum: true,
		Operations:           []txnbuild.Operation{selection.Operation},
		BaseFee:              baseFee,
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimeout(int64(timeout / time.Second)),
		},
	})
	if err != nil {
		return Unsigned{}, fmt.Errorf("build transaction: %w", err)
	}

	encoded, err := tx.Base64()
	if err != nil {
		return Unsigned{}, fmt.Errorf("encode envelope: %w", err)
	}

	return Unsigned{
		XDR:               encoded,
		Kind:              selection.Kind,
		Sequence:          p.Sequence + 1,
		NetworkPassphrase: p.NetworkPassphrase,
		ExpiresAt:         expiresAt,
	}, nil
}
