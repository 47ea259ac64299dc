// Package horizon is the client for the ledger's public query/submission
// API.
//
// Reads (account detail, account existence) are idempotent and are retried
// with exponential backoff on transport failures. Submission is never
// retried: a resubmission is a brand-new pipeline run with a freshly
// re-resolved sequence number. All calls run through a circuit breaker and
// carry their own timeout budget, independent of the envelope's validity
// window.
package horizon
