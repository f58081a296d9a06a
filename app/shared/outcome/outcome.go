// Package outcome classifies the result of a user-facing operation.
//
// Business-rule results are values, not errors: a service returns an Outcome
// for everything the caller is expected to see and reserves the error return
// for infrastructure failures.
package outcome

import "net/http"

// Kind tags an Outcome.
type Kind string

const (
	KindSuccess   Kind = "success"
	KindInfo      Kind = "info"
	KindError     Kind = "error"
	KindNotFound  Kind = "not_found"
	KindForbidden Kind = "forbidden"
)

// ForbiddenMessage is the refusal text returned by the authorization gate.
const ForbiddenMessage = "You are not allowed to access this page."

// Outcome carries a classification, a human-readable message and the
// suggested next location for the caller.
type Outcome struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Next    string `json:"next,omitempty"`
}

// Result pairs an Outcome with the value it produced, if any.
type Result[T any] struct {
	Outcome
	Value T
}

func Success(message, next string) Outcome {
	return Outcome{Kind: KindSuccess, Message: message, Next: next}
}

func Info(message, next string) Outcome {
	return Outcome{Kind: KindInfo, Message: message, Next: next}
}

func Error(message, next string) Outcome {
	return Outcome{Kind: KindError, Message: message, Next: next}
}

func NotFound(message string) Outcome {
	return Outcome{Kind: KindNotFound, Message: message}
}

func Forbidden() Outcome {
	return Outcome{Kind: KindForbidden, Message: ForbiddenMessage}
}

// With attaches a value to the outcome.
func With[T any](o Outcome, v T) Result[T] {
	return Result[T]{Outcome: o, Value: v}
}

// KindString returns the kind as a plain string for logs and metric labels.
func (o Outcome) KindString() string { return string(o.Kind) }

// IsSuccess reports whether the operation changed state as requested.
func (o Outcome) IsSuccess() bool { return o.Kind == KindSuccess }

// IsFailure reports whether the operation was refused or could not proceed.
// Informational outcomes are neither success nor failure.
func (o Outcome) IsFailure() bool {
	switch o.Kind {
	case KindError, KindNotFound, KindForbidden:
		return true
	default:
		return false
	}
}

// HTTPStatus maps the outcome onto a response status.
func (o Outcome) HTTPStatus() int {
	switch o.Kind {
	case KindSuccess, KindInfo:
		return http.StatusOK
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
