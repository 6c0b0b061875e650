// Package calcerr defines the error taxonomy returned by the calculation
// engine. Every failure is local to one calculation and is recoverable by
// the caller.
package calcerr

import (
	"errors"
	"fmt"
)

// Kind classifies a calculation failure.
type Kind int

const (
	// InvalidInput marks a non-numeric, non-positive or missing field.
	InvalidInput Kind = iota + 1
	// OutOfBounds marks a deposit below a scheme minimum or above its maximum.
	OutOfBounds
	// LimitExceeded marks a target-driven calculation whose required deposit
	// is above the scheme ceiling.
	LimitExceeded
	// UnsupportedPair marks a currency conversion between unlisted currencies.
	UnsupportedPair
	// IneligibleScheme marks a failed age, gender, tenure or account-age gate.
	IneligibleScheme
)

var kindNames = map[Kind]string{
	InvalidInput:     "invalid_input",
	OutOfBounds:      "out_of_bounds",
	LimitExceeded:    "limit_exceeded",
	UnsupportedPair:  "unsupported_pair",
	IneligibleScheme: "ineligible_scheme",
}

// String returns the snake_case name used in logs and API responses.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error implements error so a bare Kind can be used as an errors.Is target.
func (k Kind) Error() string {
	return k.String()
}

// Error is a calculation failure.
type Error struct {
	Kind  Kind
	Op    string  // operation, e.g. "schemes.MultiYearDeposit"
	Field string  // offending input, if any
	Value float64 // offending value
	Bound float64 // violated bound for OutOfBounds and LimitExceeded
	Msg   string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

// Is lets errors.Is match an *Error against its Kind.
func (e *Error) Is(target error) bool {
	if k, ok := target.(Kind); ok {
		return e.Kind == k
	}
	return false
}

// Invalid builds an InvalidInput error for field.
func Invalid(op, field string, value float64, format string, args ...interface{}) *Error {
	return &Error{Kind: InvalidInput, Op: op, Field: field, Value: value, Msg: fmt.Sprintf(format, args...)}
}

// BelowMinimum builds an OutOfBounds error citing the minimum.
func BelowMinimum(op, field string, value, min float64) *Error {
	return &Error{
		Kind: OutOfBounds, Op: op, Field: field, Value: value, Bound: min,
		Msg: fmt.Sprintf("%s %.2f is below the minimum of %.2f", field, value, min),
	}
}

// AboveMaximum builds an OutOfBounds error citing the maximum.
func AboveMaximum(op, field string, value, max float64) *Error {
	return &Error{
		Kind: OutOfBounds, Op: op, Field: field, Value: value, Bound: max,
		Msg: fmt.Sprintf("%s %.2f exceeds the maximum of %.2f", field, value, max),
	}
}

// Exceeded builds a LimitExceeded error.
func Exceeded(op, field string, value, limit float64) *Error {
	return &Error{
		Kind: LimitExceeded, Op: op, Field: field, Value: value, Bound: limit,
		Msg: fmt.Sprintf("required %s %.0f exceeds limit of %.0f", field, value, limit),
	}
}

// Unsupported builds an UnsupportedPair error.
func Unsupported(op, from, to string) *Error {
	return &Error{Kind: UnsupportedPair, Op: op, Field: "currency", Msg: fmt.Sprintf("currency pair %s/%s not supported", from, to)}
}

// Ineligible builds an IneligibleScheme error.
func Ineligible(op, scheme, reason string) *Error {
	return &Error{Kind: IneligibleScheme, Op: op, Field: scheme, Msg: fmt.Sprintf("%s: %s", scheme, reason)}
}

// KindOf returns the Kind carried by err, or 0 when err is not a calculation error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
