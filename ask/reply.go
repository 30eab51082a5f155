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

package ask

import (
	"reflect"
	"sync"

	"github.com/google/uuid"

	derrors "github.com/stephanfeb/dactor/errors"
	"github.com/stephanfeb/dactor/envelope"
)

// replyRef is the single-use, reference-shaped reply address allocated for
// one ask attempt. It satisfies envelope.Ref (Tell + Name) so the target
// actor can address it exactly like any other sender, but it is not a real
// actor: it has no mailbox, runs no handler, and resolves synchronously
// inside Tell. Per spec §4.4, ask/watch on a reply handle are unsupported;
// since envelope.Ref only requires Tell and Name, there is nothing else to
// implement here to enforce that — callers simply have no other method to
// call.
type replyRef[T any] struct {
	id   string
	once sync.Once
	ch   chan outcome[T]
}

type outcome[T any] struct {
	value T
	err   error
}

func newReplyRef[T any]() *replyRef[T] {
	return &replyRef[T]{
		id: "ask-reply-" + uuid.NewString(),
		ch: make(chan outcome[T], 1),
	}
}

// Name returns the reply handle's synthetic, unique id.
func (r *replyRef[T]) Name() string { return r.id }

// Tell resolves the completion slot at most once. Like any other Ref, a
// bare payload is wrapped into a fresh envelope; an existing envelope is
// used as-is. Per spec §4.4's "reply handle contract": once unwrapped, the
// payload must be of type T — "askable response" callers are expected to
// make the envelope's payload identity-equal to the response value itself.
// Anything else resolves the slot with a typed error instead of blocking
// the asker forever.
func (r *replyRef[T]) Tell(message any, sender envelope.Ref) error {
	env := envelope.FromPayload(message, sender)
	payload := env.Payload()
	value, ok := payload.(T)
	if !ok {
		r.complete(zeroValue[T](), derrors.NewResponseTypeMismatchError(reflect.TypeOf((*T)(nil)).Elem(), reflectTypeOf(payload)))
		return nil
	}
	r.complete(value, nil)
	return nil
}

func zeroValue[T any]() T {
	var zero T
	return zero
}

func reflectTypeOf(v any) reflect.Type {
	if v == nil {
		return nil
	}
	return reflect.TypeOf(v)
}

func (r *replyRef[T]) complete(v T, err error) {
	r.once.Do(func() {
		r.ch <- outcome[T]{value: v, err: err}
	})
}

// stop completes the slot with a cancellation error if it has not already
// been completed, mirroring what happens when an actor reference is
// stopped without ever replying.
func (r *replyRef[T]) stop() {
	r.complete(zeroValue[T](), derrors.ErrCancelled)
}
