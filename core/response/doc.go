// Package response provides JSON response constructors and the HTTP error
// taxonomy used by the pipeline stages.
package response
