// Package routematch matches request paths against ordered Ant-style
// patterns ("/api/auth/*", "/static/**", "/*.js"). It backs route-level
// access decisions where the first matching pattern wins.
package routematch
