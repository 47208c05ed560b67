// Package pipeline assembles the defense middleware chain around an
// application handler and adapts it to net/http. One builder, one fixed
// stage order, one error handler.
package pipeline
