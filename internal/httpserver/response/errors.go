package response

// ErrorMessage carries the client-facing text of a typed error.
type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

// NotFoundError is returned for unknown banks, branches and favorites.
type NotFoundError struct {
	ErrorMessage
}

func NewNotFoundError(msg string) *NotFoundError {
	return &NotFoundError{ErrorMessage{Message: msg}}
}

// ValidationError is returned for malformed queries and bodies.
type ValidationError struct {
	ErrorMessage
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{ErrorMessage{Message: msg}}
}

// UnavailableError is returned while the directory is still loading.
type UnavailableError struct {
	ErrorMessage
}

func NewUnavailableError(msg string) *UnavailableError {
	return &UnavailableError{ErrorMessage{Message: msg}}
}
