// Package server provides an http.Server wrapper with graceful shutdown,
// sane timeout defaults, and environment-driven configuration.
package server
