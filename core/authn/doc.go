// Package authn provides credential verification for the pipeline's login
// processor: the Principal identity snapshot, the Authenticator delegate
// interface, a bcrypt-backed Service, and user stores (in-memory and
// Postgres).
//
// The package is deliberately enumeration-safe: Authenticate collapses every
// failure cause into ErrInvalidCredentials and equalizes the bcrypt cost for
// unknown identifiers. Raw passwords exist only transiently inside
// Authenticate/Register calls and are never stored or logged.
package authn
