package horizon

import (
	"fmt"
	"strconv"
)

// Balance is one asset position held by an account.
type Balance struct {
	AssetType string `json:"asset_type"`
	Balance   string `json:"balance"`
}

// Account is the observed ledger state of an account.
type Account struct {
	ID       string    `json:"id"`
	Sequence string    `json:"sequence"`
	Balances []Balance `json:"balances"`
}

// SequenceNumber parses the account's sequence counter.
func (a Account) SequenceNumber() (int64, error) {
	seq, err := strconv.ParseInt(a.Sequence, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse sequence %q: %w", a.Sequence, err)
	}

	return seq, nil
}

// NativeBalance returns the native-asset balance, or "0" when the account
// holds none.
func (a Account) NativeBalance() string {
	for _, b := range a.Balances {
		if b.AssetType == "native" {
			return b.Balance
		}
	}

	return "0"
}

// State is the joined result of the two independent account reads that feed
// operation selection.
type State struct {
	// SenderSequence is the sender's current sequence counter.
	SenderSequence int64
	// RecipientExists reports whether the recipient identity has a ledger
	// record. It is a selector input only; absence is not fatal.
	RecipientExists bool
}
