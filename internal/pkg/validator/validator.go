package validator

// Validator validates structs using their `validate` tags.
type Validator interface {
	Validate(data any) error
}
