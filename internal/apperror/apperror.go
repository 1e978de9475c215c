// Package apperror defines the single failure type that flows from the store,
// the validator and the request decoders up to the HTTP boundary.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindInputDecode
	KindUnsupportedContentType
	KindValidation
	KindPathParam
	KindNotFound
	KindAlreadyCompleted
	KindResourceUnavailable
	KindStoreFailure
)

var kindNames = map[Kind]string{
	KindUnknown:                "unknown",
	KindInputDecode:            "input_decode",
	KindUnsupportedContentType: "unsupported_content_type",
	KindValidation:             "validation",
	KindPathParam:              "path_param",
	KindNotFound:               "not_found",
	KindAlreadyCompleted:       "already_completed",
	KindResourceUnavailable:    "resource_unavailable",
	KindStoreFailure:           "store_failure",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Violation describes one failed constraint on a field. Bound is set only for
// constraints with a numeric parameter, such as min and max.
type Violation struct {
	Constraint string `json:"constraint"`
	Bound      *int   `json:"bound,omitempty"`
}

func BoundViolation(constraint string, bound int) Violation {
	return Violation{Constraint: constraint, Bound: &bound}
}

// Violations maps a JSON field name to every constraint it failed.
type Violations map[string][]Violation

func (v Violations) Add(field string, violation Violation) {
	v[field] = append(v[field], violation)
}

type Error struct {
	Kind   Kind
	Detail string
	Fields Violations
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so sentinels like ErrNotFound work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Detail == "" && t.Err == nil
}

var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrAlreadyCompleted = &Error{Kind: KindAlreadyCompleted}
)

// KindOf reports the kind carried by err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Decode(err error) *Error {
	return &Error{Kind: KindInputDecode, Err: err}
}

func UnsupportedContentType(detail string) *Error {
	return &Error{Kind: KindUnsupportedContentType, Detail: detail}
}

func Validation(fields Violations) *Error {
	return &Error{Kind: KindValidation, Fields: fields}
}

func PathParam(name, raw string, err error) *Error {
	return &Error{Kind: KindPathParam, Detail: fmt.Sprintf("%s=%q", name, raw), Err: err}
}

func NotFound(id int64) *Error {
	return &Error{Kind: KindNotFound, Detail: fmt.Sprintf("task %d", id)}
}

func AlreadyCompleted(id int64) *Error {
	return &Error{Kind: KindAlreadyCompleted, Detail: fmt.Sprintf("task %d", id)}
}

func Unavailable(err error) *Error {
	return &Error{Kind: KindResourceUnavailable, Err: err}
}

func Store(err error) *Error {
	return &Error{Kind: KindStoreFailure, Err: err}
}
