// Package apperr defines user-facing application errors.
package apperr

// Error is an application error with a message that is safe to present
// directly to the user.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
