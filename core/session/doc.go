// Package session manages server-side sessions binding an opaque token to an
// authenticated principal snapshot.
//
// Sessions are created only on successful login, always with a fresh
// identifier and token — a pre-login session id is never promoted, which
// closes the session-fixation attack. Anonymous requests get a zero-value
// session view that is never persisted.
//
// The Store interface has two implementations: MemoryStore for tests and
// single-process deployments, and RedisStore for deployments where the
// session table must survive restarts.
package session
