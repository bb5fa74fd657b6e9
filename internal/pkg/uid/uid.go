// Package uid generates identifiers used for correlation and tracing.
package uid

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
