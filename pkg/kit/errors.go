package kit

import (
	"errors"
	"net/http"
)

// Kind is the closed set of failure categories the error stage knows how to render.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	// KindMethodNotAllowed is a routing failure, not a domain one; it shares
	// the rendering path so every error body has the same shape.
	KindMethodNotAllowed
)

func (k Kind) Code() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "internal_error"
	}
}

func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Error is an anticipated failure carrying a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Code() string { return e.Kind.Code() }
func (e *Error) Status() int  { return e.Kind.Status() }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func MethodNotAllowed(msg string) *Error {
	return &Error{Kind: KindMethodNotAllowed, Message: msg}
}

// AsError returns the domain error in err's chain. Internal-kind errors are
// not domain failures and report false.
func AsError(err error) (*Error, bool) {
	var de *Error
	if !errors.As(err, &de) || de.Kind == KindInternal {
		return nil, false
	}
	return de, true
}

// StatusOf is the response status the error stage will use for err.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if de, ok := AsError(err); ok {
		return de.Status()
	}
	return http.StatusInternalServerError
}
