package validator

// Validator validates a struct based on its `validate` tags.
type Validator interface {
	// Validate returns nil when data is valid, or an error describing every
	// failing field.
	Validate(data any) error
}
