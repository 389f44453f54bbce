package bom

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every validation failure the engine can produce.
// A generation either fully succeeds or fails with exactly one of these.
type ErrorKind string

const (
	KindMalformedDocument     ErrorKind = "malformed_document"
	KindStructuralError       ErrorKind = "structural_error"
	KindDuplicateQuestionName ErrorKind = "duplicate_question_name"
	KindMissingAnswer         ErrorKind = "missing_answer"
	KindTypeMismatch          ErrorKind = "type_mismatch"
	KindBoundsViolation       ErrorKind = "bounds_violation"
	KindInvalidChoice         ErrorKind = "invalid_choice"
	KindSchemaError           ErrorKind = "schema_error"
	KindExpressionError       ErrorKind = "expression_error"
	KindNonIntegerQuantity    ErrorKind = "non_integer_quantity"
	KindRowTooWide            ErrorKind = "row_too_wide"
	KindUnknownProduct        ErrorKind = "unknown_product"
	KindEmptyBOM              ErrorKind = "empty_bom"
)

// Error is a validation failure with enough context for an actionable
// message: the question or field involved and the 1-based rule position.
type Error struct {
	Kind  ErrorKind
	Field string // question name or schema field, when relevant
	Rule  int    // 1-based rule position, when relevant
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf extracts the error kind, or "" for errors the engine did not produce.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func errf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

func (e *Error) withField(name string) *Error {
	e.Field = name
	return e
}

func (e *Error) withRule(pos int) *Error {
	e.Rule = pos
	return e
}

func (e *Error) withCause(err error) *Error {
	e.cause = err
	return e
}
