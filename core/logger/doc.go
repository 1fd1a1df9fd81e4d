// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports development (debug level,
// ISO8601 timestamps) and production settings, with console or JSON encoding.
//
// # File Output
//
// When a log file is configured, every entry is additionally written as JSON to a
// rotating file managed by lumberjack, so unattended runs keep a local trail.
//
// # Run Correlation
//
// WithRunID attaches the run identifier of a sync run, so every entry produced by
// one run can be correlated with its history row and snapshot objects.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithRunID(log, runID)
//	log.Info("Sync started")
package logger
