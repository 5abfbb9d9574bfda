// Package logger provides structured logging for modkit applications
// using zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and module-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("user-module")
//	log.Info("module initialized", logger.Fields("bindings", 4))
package logger
