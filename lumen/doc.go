// Package lumen moves native-asset funds from an account the user controls
// to a destination account over the ledger's public HTTP API.
//
// The core is a payment pipeline: resolve account state, select the
// operation, assemble a timed and fee'd envelope, hand it to an
// out-of-process signer, submit the signed envelope, and classify the
// network's response into a typed outcome. Presentation concerns live
// outside this module and drive the pipeline through a single Send call.
//
// Collaborators (ledger client, signer) are injected capability interfaces
// so tests substitute deterministic fakes.
package lumen
