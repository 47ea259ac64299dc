// Package signer defines the external signer capability consumed by the
// payment pipeline.
//
// The signer is the sole holder of key material; the pipeline hands over an
// unsigned envelope and receives back a signed one, never a key. Signer
// error strings are opaque, user-displayable messages; the package only
// distinguishes "unavailable" from "denied" from anything else.
//
// Bridge is an HTTP adapter for wallet daemons exposing the conventional
// connected/access/sign JSON contract.
package signer
