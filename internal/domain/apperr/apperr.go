// Package apperr classifies failures so the transport layer can map them
// without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindSystem is anything unexpected: store unavailable, mapping failure.
	KindSystem Kind = iota
	// KindNotFound: the id does not resolve to a live record.
	KindNotFound
	// KindBusinessRule: well-formed input that violates a domain rule.
	KindBusinessRule
	// KindInvalid: malformed input caught before the domain is touched.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBusinessRule:
		return "business_rule"
	case KindInvalid:
		return "invalid"
	default:
		return "system"
	}
}

// Error is a classified failure. Code is a stable machine-readable token.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(code, msg string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: msg}
}

func BusinessRule(code, msg string) *Error {
	return &Error{Kind: KindBusinessRule, Code: code, Message: msg}
}

func Invalid(code, msg string) *Error {
	return &Error{Kind: KindInvalid, Code: code, Message: msg}
}

// System wraps an unexpected cause.
func System(err error) *Error {
	return &Error{Kind: KindSystem, Code: "SYSTEM_ERROR", Message: "internal error", Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, KindSystem otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindSystem
}

// As returns the first *Error in err's chain, or a System error wrapping err.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return System(err)
}
