// Package logger provides a structured logging facility based on Zap.
//
// It builds a development logger for the debug level and a production logger otherwise,
// encoded as json or console.
//
// # Context Awareness
//
// WithRayID extracts the request's RayID from a Fiber context and attaches it to the log
// entry, so every log line of a drift or commit request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Commit failed", zap.Error(err))
package logger
