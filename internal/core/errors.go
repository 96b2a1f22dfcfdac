package core

import "errors"

// Error codes carried on the wire for refused requests.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeInvalidMessage = "invalid_message"
)

var (
	// ErrEmptyPassKey is returned when a private join carries no usable passkey.
	ErrEmptyPassKey = errors.New("private room requires a passkey")
	// ErrAlreadyJoined is returned on a join for an already-registered connection.
	ErrAlreadyJoined = errors.New("already joined")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
