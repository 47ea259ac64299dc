// Package outcome defines the tagged result type produced by every payment
// pipeline stage.
//
// A Result carries exactly one Kind. Success results carry the transaction
// hash; rejections carry the network result code verbatim; all failure
// results carry a human-readable message safe to surface to a user.
package outcome
