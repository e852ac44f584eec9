package core

import (
	"errors"
	"fmt"
)

// Kind classifies a failure of one exchange or of the listener.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindConnectionRefused
	KindUnknownHost
	KindFraming
	KindDecode
	KindIO
	KindListenerFatal
	KindEncode
	KindInvalidRequest
)

func (k Kind) String() string {
	switch k {
	case KindConnectionRefused:
		return "connection_refused"
	case KindUnknownHost:
		return "unknown_host"
	case KindFraming:
		return "framing"
	case KindDecode:
		return "decode"
	case KindIO:
		return "io"
	case KindListenerFatal:
		return "listener_fatal"
	case KindEncode:
		return "encode"
	case KindInvalidRequest:
		return "invalid_request"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Any *Error of the same Kind matches them.
var (
	ErrConnectionRefused = &Error{Kind: KindConnectionRefused}
	ErrUnknownHost       = &Error{Kind: KindUnknownHost}
	ErrFraming           = &Error{Kind: KindFraming}
	ErrDecode            = &Error{Kind: KindDecode}
	ErrIO                = &Error{Kind: KindIO}
	ErrListenerFatal     = &Error{Kind: KindListenerFatal}
	ErrEncode            = &Error{Kind: KindEncode}
	ErrInvalidRequest    = &Error{Kind: KindInvalidRequest}
)

// Error is a classified failure. Op names the step that failed (dial, read, decode, ...).
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// NewError wraps err with a kind and operation name.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return e.Kind.String()
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	case e.Op == "":
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
