// Package log defines the logging interface and typed logging fields used
// across the payment pipeline.
//
// Adapters (such as the zap package) implement Logger so pipeline code can
// keep logging calls consistent across backends. The default everywhere is
// the no-op logger; logging is opt-in for library consumers.
package log
