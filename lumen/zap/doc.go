// Package zap provides the zap-backed implementation of log.Logger.
//
// New builds a structured JSON logger from an environment profile with a
// runtime-adjustable level and an OpenTelemetry log bridge, so pipeline log
// events correlate with the distributed traces emitted around network and
// signer calls.
package zap
