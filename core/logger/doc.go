// Package logger provides structured logging utilities built on Go's standard slog package.
//
// New builds a *slog.Logger from functional options:
//
//	log := logger.New(
//		logger.WithDevelopment("devserver"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("Server starting",
//		logger.Component("server"),
//		logger.Port(8000),
//	)
//
// Attribute helpers return an empty slog.Attr for nil or empty input, which slog
// drops from the output:
//
//	log.Error("certificate generation failed", logger.Error(err))
//
// Capture logs during tests with WithOutput:
//
//	var buf bytes.Buffer
//	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
package logger
