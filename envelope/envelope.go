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

// Package envelope defines the immutable message wrapper that flows through
// mailboxes, carrying a payload alongside its routing metadata.
package envelope

import (
	"time"

	"github.com/google/uuid"
)

// Ref is the narrow addressing contract an envelope needs from an actor
// reference, satisfied by *actor.PID without this package importing actor
// (which would create an import cycle, since actor depends on envelope).
type Ref interface {
	Tell(message any, sender Ref) error
	Name() string
}

// Envelope is an immutable wrapper around a message payload plus its
// routing metadata. Once constructed, none of its fields change; a new
// sender is applied by building a copy via RewriteSender.
type Envelope struct {
	payload       any
	correlationID string
	createdAt     time.Time
	metadata      map[string]any
	sender        Ref
	replyTo       Ref
}

// Option configures an Envelope at construction time.
type Option func(*Envelope)

// WithSender sets the sender reference on a new envelope.
func WithSender(sender Ref) Option {
	return func(e *Envelope) { e.sender = sender }
}

// WithReplyTo sets the reply-to reference on a new envelope.
func WithReplyTo(replyTo Ref) Option {
	return func(e *Envelope) { e.replyTo = replyTo }
}

// WithMetadata attaches a metadata map to a new envelope. The map is
// copied defensively so later caller mutation can't reach the envelope.
func WithMetadata(md map[string]any) Option {
	return func(e *Envelope) {
		if len(md) == 0 {
			return
		}
		cp := make(map[string]any, len(md))
		for k, v := range md {
			cp[k] = v
		}
		e.metadata = cp
	}
}

// WithCorrelationID pins a specific correlation id instead of generating a
// fresh one. Used when re-wrapping a payload that already carries an
// envelope's identity (e.g. preserving correlation id across a sender
// rewrite).
func WithCorrelationID(id string) Option {
	return func(e *Envelope) {
		if id != "" {
			e.correlationID = id
		}
	}
}

// WithCreatedAt pins a specific creation timestamp instead of stamping
// time.Now(). Used for the same re-wrapping case as WithCorrelationID.
func WithCreatedAt(t time.Time) Option {
	return func(e *Envelope) {
		if !t.IsZero() {
			e.createdAt = t
		}
	}
}

// New builds an envelope around payload, filling in a fresh correlation id
// and creation timestamp unless overridden by opts.
func New(payload any, opts ...Option) *Envelope {
	e := &Envelope{
		payload:       payload,
		correlationID: uuid.NewString(),
		createdAt:     time.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Payload returns the wrapped message.
func (e *Envelope) Payload() any { return e.payload }

// CorrelationID returns the envelope's stable correlation id. It is
// identical across every read and across every copy produced by
// RewriteSender.
func (e *Envelope) CorrelationID() string { return e.correlationID }

// CreatedAt returns the envelope's creation timestamp.
func (e *Envelope) CreatedAt() time.Time { return e.createdAt }

// Sender returns the envelope's sender reference, or nil if none was set.
func (e *Envelope) Sender() Ref { return e.sender }

// ReplyTo returns the envelope's reply-to reference, or nil if none was
// set.
func (e *Envelope) ReplyTo() Ref { return e.replyTo }

// Metadata returns the envelope's metadata map. Callers must not mutate
// the returned map.
func (e *Envelope) Metadata() map[string]any { return e.metadata }

// RewriteSender returns a new envelope sharing this envelope's correlation
// id, creation timestamp, metadata, and reply-to, but with the sender
// replaced by sender, without mutating the original message.
func (e *Envelope) RewriteSender(sender Ref) *Envelope {
	return &Envelope{
		payload:       e.payload,
		correlationID: e.correlationID,
		createdAt:     e.createdAt,
		metadata:      e.metadata,
		sender:        sender,
		replyTo:       e.replyTo,
	}
}

// FromPayload wraps payload into an envelope, preserving the correlation
// id, timestamp, metadata, and reply-to of src if payload is already an
// *Envelope — this is the "preserve identity across re-wrap" rule tell
// relies on when the caller hands it an envelope instead of a raw message.
func FromPayload(payload any, sender Ref) *Envelope {
	if existing, ok := payload.(*Envelope); ok {
		return &Envelope{
			payload:       existing.payload,
			correlationID: existing.correlationID,
			createdAt:     existing.createdAt,
			metadata:      existing.metadata,
			sender:        sender,
			replyTo:       existing.replyTo,
		}
	}
	return New(payload, WithSender(sender))
}
