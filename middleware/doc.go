// Package middleware provides the pipeline stages that guard and serve HTTP
// requests: request identification, logging, CORS evaluation, origin
// verification, CSRF defense, session loading, JSON login processing, and
// route-level authorization.
//
// Every stage follows the same shape: a zero-config constructor plus a
// XWithConfig variant whose Config struct carries an optional Skip hook.
// Stages compose into a handler chain where the first failing stage
// terminates the request.
package middleware
