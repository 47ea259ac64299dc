package lumen

import (
	"time"

	"github.com/lumenpay/lib-lumen/lumen/envelope"
	"github.com/stellar/go/network"
	"github.com/stellar/go/txnbuild"
)

// Network carries the per-network constants the assembler needs. The
// passphrase must match exactly what the signer and the submission endpoint
// expect; a mismatch is rejected on their side.
type Network struct {
	// Passphrase is the network identifier string.
	Passphrase string
	// BaseFee is the flat per-operation fee; zero means the network minimum.
	BaseFee int64
	// EnvelopeTimeout is the relative validity window for assembled
	// envelopes; zero means envelope.DefaultTimeout.
	EnvelopeTimeout time.Duration
}

// Testnet returns the test network configuration.
func Testnet() Network {
	return Network{
		Passphrase:      network.TestNetworkPassphrase,
		BaseFee:         txnbuild.MinBaseFee,
		EnvelopeTimeout: envelope.DefaultTimeout,
	}
}

// Pubnet returns the public network configuration.
func Pubnet() Network {
	return Network{
		Passphrase:      network.PublicNetworkPassphrase,
		BaseFee:         txnbuild.MinBaseFee,
		EnvelopeTimeout: envelope.DefaultTimeout,
	}
}
