// Package logger provides structured logging utilities built on Go's
// standard slog package: a factory with environment presets and a set of
// pre-built attribute helpers for common logging scenarios.
package logger
