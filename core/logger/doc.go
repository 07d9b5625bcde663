// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) for both interactive CLI runs and unattended
// batch jobs.
//
// # Run Correlation
//
// Batch commands generate a run id at startup. The WithRunID helper attaches
// it to the log entry so all lines belonging to one export or repair run can
// be correlated after the fact.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Export started")
//
//	// In a batch command:
//	l := logger.WithRunID(log, runID)
//	l.Error("Export failed", zap.Error(err))
package logger
