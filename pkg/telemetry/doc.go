// Package telemetry provides structured logging for vnv.
//
// Logger wraps zerolog with helpers for the fields vnv attaches to its log
// entries: the component, a per-invocation run id and the file being
// processed. Diagnostics meant for the user are not logged; commands print
// them on stdout.
//
// # Usage
//
//	logger, err := telemetry.NewLogger(telemetry.DefaultLoggingConfig())
//	if err != nil {
//	    return err
//	}
//	logger = logger.WithNewRunID()
//
//	engineLog := logger.NewComponentLogger("engine")
//	engineLog.WithFile(".vnv").Debug("parsed source")
//
// Failures are attached with WithError:
//
//	logger.WithError(err).Warn("Run failed")
package telemetry
