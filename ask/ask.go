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
	"context"
	"errors"
	"time"

	derrors "github.com/stephanfeb/dactor/errors"
	"github.com/stephanfeb/dactor/envelope"
	"github.com/stephanfeb/dactor/trace"
)

// Target is the narrow contract Ask needs from an actor reference: the
// envelope addressing surface plus a liveness check.
type Target interface {
	envelope.Ref
	IsAlive() bool
}

// Ask sends request to target and awaits a typed response, retrying
// timeouts according to cfg. See spec §4.4.
//
// Each attempt allocates a fresh single-use reply handle, wraps request
// into an envelope whose sender is that handle (preserving correlation id,
// metadata, reply-to, and timestamp if request is already an envelope),
// tells it to target, and awaits the reply handle's completion with a
// per-attempt timeout derived from ctx and cfg.DefaultTimeout.
func Ask[T any](ctx context.Context, target Target, request any, cfg Config, tracer trace.Sink) (T, error) {
	var zero T
	if !target.IsAlive() {
		return zero, derrors.ErrDead
	}

	attempt := 0
	for {
		attempt++

		reply := newReplyRef[T]()
		env := envelope.FromPayload(request, reply)

		recordTrace(tracer, env.CorrelationID(), trace.EventAskAttempt, target.Name(), attempt)

		if err := target.Tell(env, reply); err != nil {
			return zero, err
		}

		attemptCtx, cancel := context.WithTimeout(ctx, cfg.DefaultTimeout)
		value, err := await(attemptCtx, reply)
		cancel()

		if err == nil {
			return value, nil
		}

		finalErr, kind := classify(target.Name(), cfg.DefaultTimeout, attempt, err, reply)

		retryable := cfg.EnableRetries && cfg.retryable(kind) && attempt <= cfg.MaxRetries
		if !retryable {
			evt := trace.EventAskFailedFinal
			if kind != derrors.KindTimeout {
				evt = trace.EventAskFailedNonRetryable
			}
			recordTrace(tracer, env.CorrelationID(), evt, target.Name(), finalErr)
			return zero, finalErr
		}

		recordTrace(tracer, env.CorrelationID(), trace.EventAskRetry, target.Name(), attempt)
		time.Sleep(cfg.Backoff(attempt))
	}
}

// await blocks on the reply handle's completion channel or ctx, whichever
// comes first.
func await[T any](ctx context.Context, r *replyRef[T]) (T, error) {
	select {
	case res := <-r.ch:
		return res.value, res.err
	case <-ctx.Done():
		var zero T
		return zero, context.DeadlineExceeded
	}
}

// classify turns an await failure into the final error and the error Kind
// used to decide retryability. A context deadline means the per-attempt
// timeout elapsed: the reply handle is stopped (completing it with a
// cancellation error for any late reply) and an AskError of KindTimeout is
// raised. Anything else — a response type/shape mismatch reported by the
// reply handle itself — propagates as-is.
func classify[T any](targetID string, timeout time.Duration, attempt int, err error, reply *replyRef[T]) (error, derrors.Kind) {
	if errors.Is(err, context.DeadlineExceeded) {
		reply.stop()
		return derrors.NewTimeoutError(targetID, timeout, attempt), derrors.KindTimeout
	}
	if k, ok := derrors.KindOf(err); ok {
		return err, k
	}
	return err, derrors.KindResponseTypeMismatch
}

func recordTrace(tracer trace.Sink, correlationID, name, actorRef string, payload any) {
	if tracer == nil {
		return
	}
	tracer.Record(trace.Event{
		CorrelationID: correlationID,
		Name:          name,
		ActorRef:      actorRef,
		Payload:       payload,
		Timestamp:     time.Now(),
	})
}
