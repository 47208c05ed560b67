// Package handler defines the core contracts shared by every pipeline stage:
// the request Context, the Response rendering function, and the Middleware
// wrapping shape. Stages never write to the ResponseWriter directly; they
// return a Response, which keeps response mutation single-writer and lets the
// orchestrator guarantee that the first failing stage terminates the chain.
package handler
