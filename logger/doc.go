// Package logger provides structured logging for apiwire using
// zerolog.
//
// It supports JSON and console output formats, level configuration,
// and component-scoped loggers with structured fields.
//
// # Usage
//
//	log := logger.Get("resolver")
//	log.Debug("api built", logger.Fields("ref", ref.String()))
package logger
