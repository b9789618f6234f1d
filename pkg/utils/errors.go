package utils

import "errors"

// Error kinds recognised at the request boundary.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidFile     = errors.New("invalid file")
	ErrInvalidSize     = errors.New("invalid size")
	ErrUnauthorized    = errors.New("unauthorized")
)

// AppError pairs an error kind with a message that is safe to show to the user.
type AppError struct {
	Kind    error
	Message string
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Kind }

func NewAppError(kind error, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func NotFound(message string) error        { return NewAppError(ErrNotFound, message) }
func InvalidArgument(message string) error { return NewAppError(ErrInvalidArgument, message) }
func InvalidFile(message string) error     { return NewAppError(ErrInvalidFile, message) }
func InvalidSize(message string) error     { return NewAppError(ErrInvalidSize, message) }
func Unauthorized(message string) error    { return NewAppError(ErrUnauthorized, message) }

// UserMessage returns the user-facing message of err when err is an AppError.
func UserMessage(err error) (string, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message, true
	}
	return "", false
}
