// Package logger provides structured logging for harbor services using
// zerolog, and the layered pipeline installed during bootstrap.
//
// A Pipeline composes a severity filter with one or more independent sinks:
// a local console formatter, a remote shipping sink, and optionally a
// host-supplied writer. The filter gates every sink; sink order is not
// significant. Install makes the pipeline the single process-wide log
// destination and fails loudly when called twice.
//
// # Usage
//
//	p, err := logger.Build("INFO", apiKey, tags)
//	if err != nil { ... }
//	if err := logger.Install(p); err != nil { ... }
//	logger.Info("pipeline ready")
package logger
