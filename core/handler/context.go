package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts in the pipeline.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	SetValue(key, val any)
}
