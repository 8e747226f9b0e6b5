package client

import (
	"errors"
	"net/http"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation = errors.New("validation")
	ErrAuth       = errors.New("auth")
	ErrNotFound   = errors.New("not found")
	ErrNetwork    = errors.New("network")
	ErrUnknown    = errors.New("unknown")
)

const (
	msgNetwork          = "서버에 연결할 수 없습니다. 잠시 후 다시 시도해 주세요."
	msgUnknown          = "알 수 없는 오류가 발생했습니다. 잠시 후 다시 시도해 주세요."
	msgNotFound         = "요청한 항목을 찾을 수 없습니다."
	msgInvalidLogin     = "이메일 또는 비밀번호가 올바르지 않습니다."
	msgSessionRequired  = "로그인이 필요합니다."
	msgValidationFailed = "입력값을 확인해 주세요."
)

// Error is the only error type returned by Client. Message is safe to show to
// the user; Err holds the original cause, if any.
type Error struct {
	Kind    error
	Message string
	Status  int // HTTP status, 0 when no response was received
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func validationError(message string) *Error {
	return &Error{Kind: ErrValidation, Message: message}
}

func sessionRequired() *Error {
	return &Error{Kind: ErrAuth, Message: msgSessionRequired}
}

// statusError maps a non-2xx response to an Error. message is the server
// provided text and may be empty.
func statusError(status int, message string) *Error {
	e := &Error{Status: status, Message: message}
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		e.Kind = ErrValidation
		if e.Message == "" {
			e.Message = msgValidationFailed
		}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = ErrAuth
		if e.Message == "" {
			e.Message = msgSessionRequired
		}
	case status == http.StatusNotFound:
		e.Kind = ErrNotFound
		if e.Message == "" {
			e.Message = msgNotFound
		}
	default:
		e.Kind = ErrUnknown
		if e.Message == "" {
			e.Message = msgUnknown
		}
	}
	return e
}

// Message returns the user-presentable text of err, or fallback when err is
// not a client error.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
