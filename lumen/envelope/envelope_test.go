package envelope

import (
	"testing"
	"time"

	"github.com/stellar/go/network"
	"github.com/stellar/go/txnbuild"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	senderAddress    = "GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVN"
	recipientAddress = "GDQNY3PBOJOKYZSRMK2S7LHHGWZIUISD4QORETLMXEWXBI7KFZZMKTL3"
)

// decode parses the transport encoding back through the SDK so tests assert
// on the canonical structure, not on base64 strings.
func decode(t *testing.T, encoded string) *txnbuild.Transaction {
	t.Helper()

	generic, err := txnbuild.TransactionFromXDR(encoded)
	require.NoError(t, err)

	tx, ok := generic.Transaction()
	require.True(t, ok, "expected a simple transaction envelope")

	return tx
}

func baseParams() Params {
	return Params{
		Source:            senderAddress,
		Sequence:          5,
		Destination:       recipientAddress,
		Amount:            "10",
		DestinationExists: true,
		NetworkPassphrase: network.TestNetworkPassphrase,
	}
}

func TestSelectOperation(t *testing.T) {
	t.Parallel()

	t.Run("existing destination selects payment", func(t *testing.T) {
		t.Parallel()

		selection := SelectOperation(true, recipientAddress, "10")
		require.Equal(t, OpPayment, selection.Kind)

		payment, ok := selection.Operation.(*txnbuild.Payment)
		require.True(t, ok)
		assert.Equal(t, recipientAddress, payment.Destination)
		assert.Equal(t, "10", payment.Amount)
		assert.Equal(t, txnbuild.NativeAsset{}, payment.Asset)
	})

	t.Run("unseen destination selects account creation", func(t *testing.T) {
		t.Parallel()

		selection := SelectOperation(false, recipientAddress, "10")
		require.Equal(t, OpCreateAccount, selection.Kind)

		create, ok := selection.Operation.(*txnbuild.CreateAccount)
		require.True(t, ok)
		assert.Equal(t, recipientAddress, create.Destination)
		assert.Equal(t, "10", create.Amount, "requested amount becomes the starting balance")
	})
}

func TestBuild_PaymentEnvelope(t *testing.T) {
	t.Parallel()

	unsigned, err := Build(baseParams())
	require.NoError(t, err)

	assert.Equal(t, OpPayment, unsigned.Kind)
	assert.Equal(t, int64(6), unsigned.Sequence, "consumes exactly one sequence number")
	assert.Equal(t, network.TestNetworkPassphrase, unsigned.NetworkPassphrase)

	tx := decode(t, unsigned.XDR)
	assert.Equal(t, int64(6), tx.SourceAccount().Sequence)
	assert.Equal(t, int64(txnbuild.MinBaseFee), tx.BaseFee())

	ops := tx.Operations()
	require.Len(t, ops, 1, "exactly one operation per envelope")

	payment, ok := ops[0].(*txnbuild.Payment)
	require.True(t, ok)
	assert.Equal(t, recipientAddress, payment.Destination)
}

func TestBuild_CreateAccountEnvelope(t *testing.T) {
	t.Parallel()

	p := baseParams()
	p.DestinationExists = false

	unsigned, err := Build(p)
	require.NoError(t, err)
	assert.Equal(t, OpCreateAccount, unsigned.Kind)

	tx := decode(t, unsigned.XDR)
	ops := tx.Operations()
	require.Len(t, ops, 1)

	create, ok := ops[0].(*txnbuild.CreateAccount)
	require.True(t, ok)
	assert.Equal(t, "10.0000000", create.Amount, "starting balance survives the wire round-trip")
}

func TestBuild_AmountRoundTrip(t *testing.T) {
	t.Parallel()

	p := baseParams()
	p.Amount = "12.5000000"

	unsigned, err := Build(p)
	require.NoError(t, err)

	tx := decode(t, unsigned.XDR)
	payment, ok := tx.Operations()[0].(*txnbuild.Payment)
	require.True(t, ok)
	assert.Equal(t, "12.5000000", payment.Amount, "recoverable to 7 decimal places")
}

func TestBuild_TimeBound(t *testing.T) {
	t.Parallel()

	before := time.Now().UTC()

	unsigned, err := Build(baseParams())
	require.NoError(t, err)

	// Absolute expiry derived from the relative default timeout.
	assert.WithinDuration(t, before.Add(DefaultTimeout), unsigned.ExpiresAt, 2*time.Second)

	tx := decode(t, unsigned.XDR)
	bounds := tx.Timebounds()
	assert.InDelta(t, before.Add(DefaultTimeout).Unix(), bounds.MaxTime, 2)
}

func TestBuild_InputGuards(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Params)
		want   error
	}{
		{"empty source", func(p *Params) { p.Source = " " }, ErrEmptySource},
		{"empty destination", func(p *Params) { p.Destination = "" }, ErrEmptyDestination},
		{"empty passphrase", func(p *Params) { p.NetworkPassphrase = "" }, ErrEmptyPassphrase},
		{"negative sequence", func(p *Params) { p.Sequence = -1 }, ErrNegativeSequence},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := baseParams()
			tc.mutate(&p)

			_, err := Build(p)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestBuild_InvalidDestinationFailsAtBuild(t *testing.T) {
	t.Parallel()

	p := baseParams()
	p.Destination = "not-a-ledger-identity"

	_, err := Build(p)
	require.Error(t, err)
}
