// Package logger provides structured logging on top of zerolog.
//
// Loggers carry a service tag, accept map-based fields, and can be scoped
// to a component:
//
//	log := logger.Get("redis")
//	log.Info("client attached", logger.Fields("prefix", "REDIS"))
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
package logger
