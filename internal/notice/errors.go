package notice

// UserError represents a failure the player should see as a cancel
// message rather than a system fault.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a user-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}

// WrapUserError attaches a user-facing message to err.
func WrapUserError(msg string, err error) *UserError {
	return &UserError{Message: msg, Err: err}
}
