// Package envelope selects the ledger operation and assembles the unsigned
// transaction envelope.
//
// Selection is a pure function of recipient existence: an existing recipient
// receives a native-asset payment; a never-before-seen identity must be
// funded through account creation, with the requested amount becoming the
// new account's starting balance. Assembly is pure data transformation over
// already-resolved account state; no network call happens here.
package envelope
