// MIT License
//
// Copyright (c) 2022-2026 Dactor Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package errors defines the error kinds and sentinel errors shared across
// the dactor runtime.
package errors

import (
	"errors"
	"fmt"
	"reflect"
	"time"
)

// Kind classifies the errors the runtime can raise, independent of the
// concrete Go error type used to carry them.
type Kind int

const (
	// KindInvalidState indicates an operation attempted on a shut-down
	// system or on a reference that is no longer alive.
	KindInvalidState Kind = iota
	// KindIDCollision indicates a spawn with an already-registered id.
	KindIDCollision
	// KindTimeout indicates an ask attempt exceeded its per-attempt timeout.
	// Retryable by default.
	KindTimeout
	// KindResponseTypeMismatch indicates an ask reply payload did not match
	// the expected response type. Non-retryable.
	KindResponseTypeMismatch
	// KindResponseEnvelopeShape indicates a reply was not delivered as an
	// envelope. Non-retryable. ask/reply.go always normalizes a reply through
	// envelope.FromPayload before the type check, so this kind is currently
	// unreachable in practice; it is kept for API completeness against a
	// future reply path that bypasses that normalization.
	KindResponseEnvelopeShape
	// KindHandlerFailure indicates an uncaught error raised by a user
	// handler.
	KindHandlerFailure
	// KindUndeliverable indicates a tell to a recipient that is not alive.
	KindUndeliverable
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidState:
		return "invalid-state"
	case KindIDCollision:
		return "id-collision"
	case KindTimeout:
		return "timeout"
	case KindResponseTypeMismatch:
		return "response-type-mismatch"
	case KindResponseEnvelopeShape:
		return "response-envelope-shape"
	case KindHandlerFailure:
		return "handler-failure"
	case KindUndeliverable:
		return "undeliverable"
	default:
		return "unknown"
	}
}

var (
	// ErrSystemShutDown is returned when an operation is attempted on a
	// system that has already shut down.
	ErrSystemShutDown = errors.New("actor system has shut down")
	// ErrActorAlreadyExists is returned when spawn is called with an id
	// that is already registered.
	ErrActorAlreadyExists = errors.New("actor already exists")
	// ErrDead indicates the target reference is no longer alive.
	ErrDead = errors.New("actor is not alive")
	// ErrActorNotFound indicates the requested actor id is not registered.
	ErrActorNotFound = errors.New("actor not found")
	// ErrRequestTimeout indicates an ask attempt timed out.
	ErrRequestTimeout = errors.New("request timed out")
	// ErrResponseTypeMismatch indicates an ask reply payload type did not
	// match the expected response type.
	ErrResponseTypeMismatch = errors.New("response type mismatch")
	// ErrResponseEnvelopeShape indicates a reply was not delivered as an
	// envelope.
	ErrResponseEnvelopeShape = errors.New("response was not delivered as an envelope")
	// ErrCancelled indicates a reply handle was stopped before completion.
	ErrCancelled = errors.New("request cancelled")
	// ErrReplyUnsupported indicates ask/watch was called on a reply handle.
	ErrReplyUnsupported = errors.New("operation not supported on a reply handle")
	// ErrInvalidTimeout indicates a timeout value was <= 0.
	ErrInvalidTimeout = errors.New("invalid timeout")
	// ErrSchedulerDisposed indicates a timer scheduler operation was
	// attempted after dispose.
	ErrSchedulerDisposed = errors.New("timer scheduler has been disposed")
)

// IDCollisionError reports a spawn attempt against an existing id.
type IDCollisionError struct {
	ID string
}

func (e *IDCollisionError) Error() string {
	return fmt.Sprintf("actor id %q already exists: %v", e.ID, ErrActorAlreadyExists)
}

func (e *IDCollisionError) Unwrap() error { return ErrActorAlreadyExists }

// NewIDCollisionError builds an IDCollisionError for id.
func NewIDCollisionError(id string) error {
	return &IDCollisionError{ID: id}
}

// AskError reports a failed ask attempt, carrying enough context for
// callers and traces to identify the failing attempt.
type AskError struct {
	Kind    Kind
	Target  string
	Timeout time.Duration
	Attempt int
	Err     error
}

func (e *AskError) Error() string {
	return fmt.Sprintf("ask to %q failed on attempt %d (timeout=%s): %v", e.Target, e.Attempt, e.Timeout, e.Err)
}

func (e *AskError) Unwrap() error { return e.Err }

// NewTimeoutError builds an AskError of KindTimeout.
func NewTimeoutError(target string, timeout time.Duration, attempt int) error {
	return &AskError{Kind: KindTimeout, Target: target, Timeout: timeout, Attempt: attempt, Err: ErrRequestTimeout}
}

// ResponseTypeMismatchError reports that an ask reply carried the wrong
// payload type.
type ResponseTypeMismatchError struct {
	Expected reflect.Type
	Actual   reflect.Type
}

func (e *ResponseTypeMismatchError) Error() string {
	return fmt.Sprintf("expected response of type %s, got %s: %v", typeName(e.Expected), typeName(e.Actual), ErrResponseTypeMismatch)
}

func (e *ResponseTypeMismatchError) Unwrap() error { return ErrResponseTypeMismatch }

// NewResponseTypeMismatchError builds a ResponseTypeMismatchError.
func NewResponseTypeMismatchError(expected, actual reflect.Type) error {
	return &ResponseTypeMismatchError{Expected: expected, Actual: actual}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// HandlerFailureError wraps a panic or error raised by a user message
// handler, with the stack captured at the point of failure.
type HandlerFailureError struct {
	ActorID string
	Stack   []byte
	Err     error
}

func (e *HandlerFailureError) Error() string {
	return fmt.Sprintf("actor %q handler failed: %v", e.ActorID, e.Err)
}

func (e *HandlerFailureError) Unwrap() error { return e.Err }

// NewHandlerFailureError builds a HandlerFailureError.
func NewHandlerFailureError(actorID string, stack []byte, err error) error {
	return &HandlerFailureError{ActorID: actorID, Stack: stack, Err: err}
}

// KindOf extracts the Kind carried by err, if any, reporting ok=false for
// errors that do not carry an explicit kind (e.g. plain sentinel wraps).
func KindOf(err error) (Kind, bool) {
	var ae *AskError
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	var rm *ResponseTypeMismatchError
	if errors.As(err, &rm) {
		return KindResponseTypeMismatch, true
	}
	var hf *HandlerFailureError
	if errors.As(err, &hf) {
		return KindHandlerFailure, true
	}
	var ic *IDCollisionError
	if errors.As(err, &ic) {
		return KindIDCollision, true
	}
	switch {
	case errors.Is(err, ErrDead), errors.Is(err, ErrSystemShutDown):
		return KindInvalidState, true
	case errors.Is(err, ErrResponseEnvelopeShape):
		return KindResponseEnvelopeShape, true
	}
	return 0, false
}
