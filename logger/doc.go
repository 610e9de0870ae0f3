// Package logger provides structured logging for promptprobe tools using
// zerolog.
//
// Model output is written to stdout by the tools, so log lines default to
// stderr. Console and JSON formats are supported.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	logger.Init(cfg.Logging)
//	log := logger.WithComponent("fanout")
//	log.Info("request finished", logger.Fields("index", 2, "duration_ms", 840))
package logger
