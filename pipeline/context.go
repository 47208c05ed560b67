package pipeline

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrymomot/gatekit/core/handler"
)

// NewContext adapts a writer/request pair into a handler.Context for code
// running downstream of the pipeline, such as application handlers that call
// session transport methods directly.
func NewContext(w http.ResponseWriter, r *http.Request) handler.Context {
	return newRequestContext(w, r)
}

// requestContext is the pipeline's concrete handler.Context. It delegates
// cancellation and values to the request's context so stage-stored values
// survive into the wrapped application handler.
type requestContext struct {
	w http.ResponseWriter
	r *http.Request
}

func newRequestContext(w http.ResponseWriter, r *http.Request) *requestContext {
	return &requestContext{w: w, r: r}
}

// Deadline returns the time when work done on behalf of this context should be canceled.
func (c *requestContext) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done returns a channel that's closed when work done on behalf of this context should be canceled.
func (c *requestContext) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err returns a non-nil error value after Done is closed.
func (c *requestContext) Err() error {
	return c.r.Context().Err()
}

// Value returns the value associated with this context for key.
func (c *requestContext) Value(key any) any {
	return c.r.Context().Value(key)
}

// Request returns the HTTP request associated with this context.
func (c *requestContext) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the HTTP response writer associated with this context.
func (c *requestContext) ResponseWriter() http.ResponseWriter {
	return c.w
}

// SetValue stores a value in the request's context, visible to later stages
// and to the wrapped application handler.
func (c *requestContext) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}
