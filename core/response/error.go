package response

import (
	"net/http"

	"github.com/dmitrymomot/gatekit/core/handler"
)

// Error returns a handler response that propagates the given error.
// The pipeline's error handler decides how it is rendered: HTTPError values
// keep their status and body, everything else becomes a generic 500.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}
