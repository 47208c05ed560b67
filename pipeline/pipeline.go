package pipeline

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/dmitrymomot/gatekit/core/authn"
	"github.com/dmitrymomot/gatekit/core/csrf"
	"github.com/dmitrymomot/gatekit/core/handler"
	"github.com/dmitrymomot/gatekit/core/logger"
	"github.com/dmitrymomot/gatekit/core/response"
	"github.com/dmitrymomot/gatekit/core/sessiontransport"
	"github.com/dmitrymomot/gatekit/middleware"
)

// Deps carries the collaborators every pipeline needs.
type Deps struct {
	// Logger receives request and failure records. Defaults to a no-op logger.
	Logger *slog.Logger

	// Sessions loads, stores, and mints sessions. Required.
	Sessions *sessiontransport.Cookie

	// CSRF issues and validates anti-forgery tokens. Required.
	CSRF *csrf.Manager

	// Authenticator verifies login credentials. Required.
	Authenticator authn.Authenticator
}

// Pipeline is the fixed chain of defense stages wrapped around an
// application handler. Stage order is not configurable: cheap
// identification first, then the stateless origin checks, then everything
// that touches the session store.
type Pipeline struct {
	handler      handler.HandlerFunc
	errorHandler handler.ErrorHandler
	logger       *slog.Logger
}

// New builds the pipeline around the application handler:
//
//	RequestID -> Logging -> CORS -> OriginCheck -> CSRF ->
//	Session -> Logout -> JSONLogin -> Authorize -> app
//
// The first failing stage terminates the request; later stages never run.
func New(app http.Handler, cfg Config, deps Deps) *Pipeline {
	if deps.Sessions == nil || deps.CSRF == nil || deps.Authenticator == nil {
		panic("pipeline: sessions, csrf, and authenticator are required")
	}

	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	stages := []handler.Middleware{
		middleware.RequestID(),
		middleware.LoggingWithLogger(log),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.TrustedOrigins,
			AllowCredentials: true,
			MaxAge:           cfg.CORSMaxAge,
		}),
		middleware.OriginCheckWithConfig(middleware.OriginConfig{
			TrustedOrigins: cfg.TrustedOrigins,
		}),
		middleware.CSRFWithConfig(middleware.CSRFConfig{
			Manager:       deps.CSRF,
			IgnoredRoutes: cfg.CSRFIgnoredRoutes,
		}),
		middleware.SessionWithConfig(middleware.SessionConfig{
			Transport: deps.Sessions,
		}),
		middleware.LogoutWithConfig(middleware.LogoutConfig{
			Transport: deps.Sessions,
			Path:      cfg.LogoutPath,
		}),
		middleware.JSONLoginWithConfig(middleware.JSONLoginConfig{
			Authenticator: deps.Authenticator,
			Transport:     deps.Sessions,
			Path:          cfg.LoginPath,
			CSRF:          deps.CSRF,
		}),
		middleware.AuthorizeWithConfig(middleware.AuthorizeConfig{
			PublicRoutes: cfg.PublicRoutes,
		}),
	}

	p := &Pipeline{
		handler: chain(stages, wrapApp(app)),
		logger:  log,
	}
	p.errorHandler = p.handleError
	return p
}

// ServeHTTP implements http.Handler.
func (p *Pipeline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)
	ctx := newRequestContext(ww, r)

	// Recover from panics to prevent server crashes.
	defer func() {
		if v := recover(); v != nil {
			perr := &panicError{value: v, stack: debug.Stack()}

			if ww.Written() {
				p.logger.Error("panic after response written",
					"value", perr.value,
					"stack", string(perr.stack),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.StatusCode(ww.Status()),
				)
				return
			}
			p.errorHandler(ctx, perr)
		}
	}()

	resp := p.handler(ctx)
	if resp == nil {
		p.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := resp(ww, ctx.Request()); err != nil {
		p.errorHandler(ctx, err)
	}
}

// handleError renders pipeline failures. HTTPError values keep their status
// and message; anything else is a dispatch failure that gets logged in full
// and answered with a generic 500 so internals never leak to the client.
func (p *Pipeline) handleError(ctx handler.Context, err error) {
	w := ctx.ResponseWriter()
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	var httpErr response.HTTPError
	if !errors.As(err, &httpErr) {
		requestID, _ := middleware.GetRequestID(ctx)
		p.logger.ErrorContext(ctx, "request dispatch failed",
			logger.Error(err),
			logger.Method(ctx.Request().Method),
			logger.Path(ctx.Request().URL.Path),
			logger.RequestID(requestID),
		)
		httpErr = response.ErrInternalServerError
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(httpErr.Status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "error",
		"message": httpErr.Message,
	})
}

// chain composes middlewares around the final handler.
// Reverse order required: wrapping innermost first makes it execute last.
func chain(middlewares []handler.Middleware, fn handler.HandlerFunc) handler.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		fn = middlewares[i](fn)
	}
	return fn
}

// wrapApp adapts a plain http.Handler into the final pipeline stage. The
// request is taken from the context so values stored by earlier stages are
// visible to the application.
func wrapApp(app http.Handler) handler.HandlerFunc {
	return func(ctx handler.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			app.ServeHTTP(w, ctx.Request())
			return nil
		}
	}
}
