package apperror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mserebryaakov/handora-service/pkg/i18n"
)

type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindInvalidArgument   Kind = "invalid_argument"
	KindInsufficientStock Kind = "insufficient_stock"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindInternal          Kind = "internal"
)

// Error is a classified failure. Key and Args select the localized message
// shown to the client; Err keeps the cause for logs and errors.Is.
type Error struct {
	Kind Kind
	Key  string
	Args []any
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Key != "" {
		b.WriteString(": ")
		b.WriteString(e.Key)
	}
	if len(e.Args) > 0 {
		fmt.Fprintf(&b, " %v", e.Args)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message renders the client-facing text in the deployment language.
func (e *Error) Message() string {
	if e.Key == "" {
		return i18n.T(defaultKey(e.Kind))
	}
	return i18n.T(e.Key, e.Args...)
}

func New(kind Kind, key string, args ...any) *Error {
	return &Error{Kind: kind, Key: key, Args: args}
}

// Wrap attaches a cause. The cause is never shown to the client.
func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

func NotFound(key string, args ...any) *Error {
	return New(KindNotFound, key, args...)
}

func Conflict(key string, args ...any) *Error {
	return New(KindConflict, key, args...)
}

func InvalidArgument(key string, args ...any) *Error {
	return New(KindInvalidArgument, key, args...)
}

func InsufficientStock(key string, args ...any) *Error {
	return New(KindInsufficientStock, key, args...)
}

func Unauthorized() *Error {
	return New(KindUnauthorized, "error.unauthorized")
}

func Forbidden() *Error {
	return New(KindForbidden, "error.forbidden")
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Key: "error.internal", Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func defaultKey(kind Kind) string {
	switch kind {
	case KindNotFound:
		return "error.not_found"
	case KindConflict:
		return "error.conflict"
	case KindUnauthorized:
		return "error.unauthorized"
	case KindForbidden:
		return "error.forbidden"
	default:
		return "error.internal"
	}
}
