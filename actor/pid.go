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

package actor

import (
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/stephanfeb/dactor/ask"
	derrors "github.com/stephanfeb/dactor/errors"
	"github.com/stephanfeb/dactor/envelope"
	"github.com/stephanfeb/dactor/eventbus"
	"github.com/stephanfeb/dactor/log"
	"github.com/stephanfeb/dactor/mailbox"
	"github.com/stephanfeb/dactor/metric"
	"github.com/stephanfeb/dactor/supervisor"
	"github.com/stephanfeb/dactor/timer"
	"github.com/stephanfeb/dactor/trace"
)

// PID is an actor reference: a stable, lightweight handle exposing tell,
// ask, and watch, matching spec §4.1. It satisfies envelope.Ref,
// ask.Target, and dispatcher.Target, so it can be addressed, asked, and
// scheduled without any of those packages depending on actor.
type PID struct {
	id   string
	path Path

	system  *ActorSystem
	logger  log.Logger
	mailbox mailbox.Mailbox
	timers  *timer.Scheduler

	behavior Actor
	factory  Factory

	askConfig ask.Config

	// poolSize and mailboxCapacity are retained so Restart can rebuild an
	// identical instance from the same factory and spawn options.
	poolSize        int
	mailboxCapacity int

	alive    *atomic.Bool
	stopping *atomic.Bool

	// supervision of this actor's own children, set only when this PID
	// has spawned at least one child.
	supervisorMu sync.Mutex
	strategy     *supervisor.Strategy
	children     map[string]*PID
	childFactory map[string]Factory
	childOpts    map[string][]SpawnOption

	watchMu  sync.Mutex
	watchers map[string]envelope.Ref
}

var _ envelope.Ref = (*PID)(nil)

// ID returns this actor's full hierarchical id.
func (p *PID) ID() string { return p.id }

// Name satisfies envelope.Ref.
func (p *PID) Name() string { return p.id }

// ActorID satisfies dispatcher.Target.
func (p *PID) ActorID() string { return p.id }

// Mailbox satisfies dispatcher.Target.
func (p *PID) Mailbox() mailbox.Mailbox { return p.mailbox }

// Path returns this actor's parsed hierarchical path.
func (p *PID) Path() Path { return p.path }

// IsAlive reports whether this reference is registered and its mailbox has
// not been disposed. Liveness is one-way: alive to not-alive exactly once.
func (p *PID) IsAlive() bool { return p.alive.Load() }

// Tell wraps message into an envelope and enqueues it, per spec §4.1. A
// not-alive target routes the message to the dead-letter queue instead of
// failing the call — tell is fire-and-forget by contract.
func (p *PID) Tell(message any, sender envelope.Ref) error {
	env := envelope.FromPayload(message, sender)

	if !p.IsAlive() {
		p.system.routeDeadLetter(env, sender, p.id)
		return nil
	}

	p.system.emitTrace(env.CorrelationID(), trace.EventSent, p.id, env.Payload())

	if err := p.mailbox.Enqueue(env); err != nil {
		p.system.routeDeadLetter(env, sender, p.id)
		return nil
	}

	p.system.metrics.Gauge(metric.MailboxSize, float64(p.mailbox.Len()), metric.Tags{"actorId": p.id})
	p.system.dispatcher.Schedule(p.id)
	return nil
}

// Watch registers watcher to receive a Terminated notice when this actor
// stops.
func (p *PID) Watch(watcher envelope.Ref) {
	p.watchMu.Lock()
	defer p.watchMu.Unlock()
	if p.watchers == nil {
		p.watchers = make(map[string]envelope.Ref)
	}
	p.watchers[watcher.Name()] = watcher
}

// Unwatch removes watcher's registration.
func (p *PID) Unwatch(watcher envelope.Ref) {
	p.watchMu.Lock()
	defer p.watchMu.Unlock()
	delete(p.watchers, watcher.Name())
}

func (p *PID) notifyWatchers() {
	p.watchMu.Lock()
	watchers := make([]envelope.Ref, 0, len(p.watchers))
	for _, w := range p.watchers {
		watchers = append(watchers, w)
	}
	p.watchers = nil
	p.watchMu.Unlock()

	for _, w := range watchers {
		_ = w.Tell(Terminated{ID: p.id}, p)
	}
}

// Invoke satisfies dispatcher.Target: it processes exactly one envelope.
// Per spec §4.3.1, this call itself is what the dispatcher treats as
// asynchronous — it runs inside a goroutine detached from the pump, so a
// handler that issues its own ask can block here without stalling any
// other actor.
func (p *PID) Invoke(e *envelope.Envelope) {
	start := time.Now()
	p.system.emitTrace(e.CorrelationID(), trace.EventProcessed, p.id, e.Payload())

	ctx := newContext(p, e)

	var handlerErr error
	var stack []byte
	func() {
		defer func() {
			if r := recover(); r != nil {
				stack = debug.Stack()
				handlerErr = derrors.NewHandlerFailureError(p.id, stack, panicError{r})
			}
		}()
		handlerErr = p.behavior.Receive(ctx)
	}()

	p.system.metrics.Timing(metric.MessagesProcessingTime, time.Since(start), metric.Tags{"actorId": p.id})
	p.system.metrics.Increment(metric.MessagesProcessed, 1, metric.Tags{"actorId": p.id})

	if handlerErr != nil {
		if stack == nil {
			stack = debug.Stack()
		}
		p.system.metrics.Increment(metric.ActorsFailed, 1, metric.Tags{"actorId": p.id})
		p.system.handleFailure(p, handlerErr, stack)
	}
}

// panicError adapts an arbitrary recover() value into an error.
type panicError struct{ v any }

func (p panicError) Error() string {
	if err, ok := p.v.(error); ok {
		return err.Error()
	}
	return "panic"
}

// stop runs this actor's teardown in the exact order spec §4.8 prescribes:
// dispose timers, invoke PostStop, clean up event-bus subscriptions, mark
// the reference not-alive, dispose the mailbox, then notify watchers. The
// caller (ActorSystem.Stop) is responsible for registry removal. Re-entrant
// calls are guarded by stopping rather than by alive itself, since alive
// must stay true until its designated point in the sequence above. A
// non-nil PostStop error is combined with this actor's own identity into
// the returned error rather than silently discarded, so a caller stopping a
// whole subtree can report every failure it collected along the way.
func (p *PID) stop() error {
	if !p.stopping.CompareAndSwap(false, true) {
		return nil
	}

	p.timers.Dispose()

	ctx := newContext(p, nil)
	var err error
	if postStopErr := p.behavior.PostStop(ctx); postStopErr != nil {
		p.logger.Warnf("actor %q: PostStop returned an error: %v", p.id, postStopErr)
		err = multierr.Append(err, derrors.NewHandlerFailureError(p.id, nil, postStopErr))
	}

	eventbus.Cleanup(p.system.eventBus, p)
	p.alive.Store(false)
	p.mailbox.Dispose()
	p.notifyWatchers()
	return err
}
