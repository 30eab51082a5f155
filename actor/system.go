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
	"context"
	"sync"
	"time"

	"github.com/flowchartsman/retry"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/stephanfeb/dactor/ask"
	"github.com/stephanfeb/dactor/deadletter"
	"github.com/stephanfeb/dactor/dispatcher"
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

// ActorSystem is the composition root: it owns the registry of live
// actors, the dispatcher pump, the event bus, the dead-letter queue, and
// the logging/metrics/tracing ports every spawned actor shares.
type ActorSystem struct {
	name string

	mu       sync.RWMutex
	registry map[string]*PID

	dispatcher  *dispatcher.Dispatcher
	eventBus    *eventbus.Bus
	deadLetters *deadletter.Queue

	logger  log.Logger
	metrics metric.Sink
	tracer  trace.Sink

	askConfig ask.Config

	deadLetterCapacity int
	initMaxRetries     int
	initBaseDelay      time.Duration
	initMaxDelay       time.Duration

	shutdown atomic.Bool
}

// NewActorSystem creates and starts an ActorSystem. The dispatcher pump is
// running by the time this call returns; Spawn may be called immediately.
func NewActorSystem(name string, opts ...Option) *ActorSystem {
	s := &ActorSystem{
		name:               name,
		registry:           make(map[string]*PID),
		logger:             log.DiscardLogger,
		metrics:            noopMetricSink{},
		askConfig:          ask.DefaultConfig(),
		deadLetterCapacity: defaultDeadLetterCapacity,
		initMaxRetries:     defaultInitMaxRetries,
		initBaseDelay:      defaultInitBaseDelay,
		initMaxDelay:       defaultInitMaxDelay,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.dispatcher = dispatcher.New(s.logger)
	s.eventBus = eventbus.New(defaultEventBusMonitoringCap)
	s.deadLetters = deadletter.New(s.deadLetterCapacity, s.metrics)
	s.dispatcher.Run()

	return s
}

// Name returns the system's name, used only for logging and diagnostics.
func (s *ActorSystem) Name() string { return s.name }

// Spawn creates a new top-level actor under id. Spawning with an id that is
// already registered returns an IDCollisionError.
func (s *ActorSystem) Spawn(id string, factory Factory, opts ...SpawnOption) (*PID, error) {
	return s.spawn(id, factory, opts...)
}

// spawnChild creates a new actor under parent.ID()+"/"+id and registers it
// in parent's own supervision bookkeeping, so a later failure can look up
// parent's Strategy and a Restart/escalation can rebuild it from the
// retained factory and options.
func (s *ActorSystem) spawnChild(parent *PID, id string, factory Factory, opts ...SpawnOption) (*PID, error) {
	fullID := parent.id + "/" + id
	child, err := s.spawn(fullID, factory, opts...)
	if err != nil {
		return nil, err
	}

	parent.supervisorMu.Lock()
	if parent.children == nil {
		parent.children = make(map[string]*PID)
		parent.childFactory = make(map[string]Factory)
		parent.childOpts = make(map[string][]SpawnOption)
	}
	parent.children[fullID] = child
	parent.childFactory[fullID] = factory
	parent.childOpts[fullID] = opts
	parent.supervisorMu.Unlock()

	return child, nil
}

func (s *ActorSystem) spawn(id string, factory Factory, opts ...SpawnOption) (*PID, error) {
	if s.shutdown.Load() {
		return nil, derrors.ErrSystemShutDown
	}

	var cfg spawnConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.poolSize > 0 && cfg.strategy == nil {
		cfg.strategy = supervisor.NewOneForOne(supervisor.AlwaysRestart)
	}

	s.mu.RLock()
	_, exists := s.registry[id]
	s.mu.RUnlock()
	if exists {
		return nil, derrors.NewIDCollisionError(id)
	}

	askCfg := s.askConfig
	if cfg.askConfig != nil {
		askCfg = *cfg.askConfig
	}

	pid := &PID{
		id:              id,
		path:            ParsePath(id),
		system:          s,
		logger:          s.logger.With(id),
		factory:         factory,
		askConfig:       askCfg,
		poolSize:        cfg.poolSize,
		mailboxCapacity: cfg.mailboxCapacity,
		strategy:        cfg.strategy,
		alive:           atomic.NewBool(false),
		stopping:        atomic.NewBool(false),
	}
	pid.mailbox = buildMailbox(cfg.mailboxCapacity)
	pid.timers = timer.New(pid, pid.logger)
	pid.behavior = buildBehavior(factory, cfg.poolSize)

	if err := s.startPID(pid); err != nil {
		pid.timers.Dispose()
		pid.mailbox.Dispose()
		return nil, err
	}

	s.mu.Lock()
	if _, raced := s.registry[id]; raced {
		s.mu.Unlock()
		_ = pid.stop()
		return nil, derrors.NewIDCollisionError(id)
	}
	s.registry[id] = pid
	active := len(s.registry)
	s.mu.Unlock()

	s.dispatcher.Register(pid)
	s.metrics.Increment(metric.ActorsSpawned, 1, metric.Tags{"actorId": id})
	s.metrics.Gauge(metric.ActorsActive, float64(active), nil)

	return pid, nil
}

// startPID runs PreStart under the system's init retry budget, matching
// the teacher's PID.init retry pattern, and marks the actor alive once it
// succeeds.
func (s *ActorSystem) startPID(pid *PID) error {
	retrier := retry.NewRetrier(s.initMaxRetries, s.initBaseDelay, s.initMaxDelay)
	err := retrier.RunContext(context.Background(), func(context.Context) error {
		return pid.behavior.PreStart(newContext(pid, nil))
	})
	if err != nil {
		return err
	}
	pid.alive.Store(true)
	return nil
}

func buildMailbox(capacity int) mailbox.Mailbox {
	if capacity > 0 {
		return mailbox.NewBounded(capacity)
	}
	return mailbox.NewDefault()
}

func buildBehavior(factory Factory, poolSize int) Actor {
	if poolSize > 0 {
		return newRouter(poolSize, factory)
	}
	return factory()
}

// Stop stops the actor registered under id, and every descendant it has
// spawned, bottom-up. Returns ErrActorNotFound if id is not registered.
func (s *ActorSystem) Stop(id string) error {
	s.mu.RLock()
	pid, ok := s.registry[id]
	s.mu.RUnlock()
	if !ok {
		return derrors.ErrActorNotFound
	}
	return s.stopPID(pid)
}

func (s *ActorSystem) stopPID(pid *PID) error {
	err := s.stopChildren(pid)
	err = multierr.Append(err, pid.stop())
	s.dispatcher.Unregister(pid.id)

	s.mu.Lock()
	delete(s.registry, pid.id)
	active := len(s.registry)
	s.mu.Unlock()

	s.detachFromParent(pid)

	if err != nil {
		s.metrics.Increment(metric.ActorsStopFailed, 1, metric.Tags{"actorId": pid.id})
	}
	s.metrics.Increment(metric.ActorsStopped, 1, metric.Tags{"actorId": pid.id})
	s.metrics.Gauge(metric.ActorsActive, float64(active), nil)
	return err
}

// stopChildren recursively stops every descendant of pid, without touching
// pid itself — used both by stopPID (which then stops pid too) and
// restartPID (which must clear a router's old routees before respawning).
// Children are fanned out concurrently with errgroup, mirroring the
// teacher's handleStopDirective; every descendant's teardown still runs
// regardless of a sibling's failure, with errors folded together under a
// mutex via multierr rather than the first one short-circuiting the rest
// of the subtree.
func (s *ActorSystem) stopChildren(pid *PID) error {
	pid.supervisorMu.Lock()
	children := make([]*PID, 0, len(pid.children))
	for _, c := range pid.children {
		children = append(children, c)
	}
	pid.supervisorMu.Unlock()

	var mu sync.Mutex
	var err error
	eg, _ := errgroup.WithContext(context.Background())
	for _, c := range children {
		c := c
		eg.Go(func() error {
			stopErr := s.stopPID(c)
			mu.Lock()
			err = multierr.Append(err, stopErr)
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()
	return err
}

func (s *ActorSystem) detachFromParent(pid *PID) {
	parentID, ok := pid.path.Parent()
	if !ok {
		return
	}
	s.mu.RLock()
	parent, ok := s.registry[parentID]
	s.mu.RUnlock()
	if !ok {
		return
	}
	parent.supervisorMu.Lock()
	delete(parent.children, pid.id)
	delete(parent.childFactory, pid.id)
	delete(parent.childOpts, pid.id)
	parent.supervisorMu.Unlock()
}

// Restart stops the actor registered under id and respawns it under the
// same id, from the same factory, pool size, mailbox kind, and ask
// configuration it was originally spawned with. If id was tracked as a
// child, the parent's bookkeeping is updated to point at the new instance.
func (s *ActorSystem) Restart(id string) error {
	s.mu.RLock()
	pid, ok := s.registry[id]
	s.mu.RUnlock()
	if !ok {
		return derrors.ErrActorNotFound
	}
	return s.restartPID(pid)
}

func (s *ActorSystem) restartPID(pid *PID) error {
	if err := multierr.Append(s.stopChildren(pid), pid.stop()); err != nil {
		s.logger.Warnf("actor %q: teardown before restart reported: %v", pid.id, err)
	}
	s.dispatcher.Unregister(pid.id)

	fresh := &PID{
		id:              pid.id,
		path:            pid.path,
		system:          s,
		logger:          s.logger.With(pid.id),
		factory:         pid.factory,
		askConfig:       pid.askConfig,
		poolSize:        pid.poolSize,
		mailboxCapacity: pid.mailboxCapacity,
		strategy:        pid.strategy,
		alive:           atomic.NewBool(false),
		stopping:        atomic.NewBool(false),
	}
	fresh.mailbox = buildMailbox(fresh.mailboxCapacity)
	fresh.timers = timer.New(fresh, fresh.logger)
	fresh.behavior = buildBehavior(fresh.factory, fresh.poolSize)

	if err := s.startPID(fresh); err != nil {
		fresh.timers.Dispose()
		fresh.mailbox.Dispose()
		return err
	}

	s.mu.Lock()
	delete(s.registry, pid.id)
	s.registry[fresh.id] = fresh
	s.mu.Unlock()
	s.dispatcher.Register(fresh)

	s.reparent(pid, fresh)

	s.metrics.Increment(metric.ActorsRestarted, 1, metric.Tags{"actorId": fresh.id})
	return nil
}

func (s *ActorSystem) reparent(old, fresh *PID) {
	parentID, ok := old.path.Parent()
	if !ok {
		return
	}
	s.mu.RLock()
	parent, ok := s.registry[parentID]
	s.mu.RUnlock()
	if !ok {
		return
	}
	parent.supervisorMu.Lock()
	if _, tracked := parent.children[old.id]; tracked {
		parent.children[old.id] = fresh
	}
	parent.supervisorMu.Unlock()
}

// Get looks up the actor registered under id.
func (s *ActorSystem) Get(id string) (*PID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pid, ok := s.registry[id]
	return pid, ok
}

// Shutdown stops every top-level actor (which recursively stops their
// descendants) and then stops the dispatcher pump. Idempotent.
func (s *ActorSystem) Shutdown() {
	if s.shutdown.Swap(true) {
		return
	}

	s.mu.RLock()
	roots := make([]string, 0, len(s.registry))
	for id, pid := range s.registry {
		if _, hasParent := pid.path.Parent(); !hasParent {
			roots = append(roots, id)
		}
	}
	s.mu.RUnlock()

	var err error
	for _, id := range roots {
		err = multierr.Append(err, s.Stop(id))
	}
	if err != nil {
		s.logger.Warnf("shutdown: %v", err)
	}

	s.dispatcher.Stop()
	s.metrics.Increment(metric.SystemShutdown, 1, nil)
}

// routeDeadLetter pushes an undeliverable envelope into the dead-letter
// queue. sender may be nil.
func (s *ActorSystem) routeDeadLetter(env *envelope.Envelope, sender envelope.Ref, recipient string) {
	s.deadLetters.Push(deadletter.Entry{Envelope: env, Sender: sender, Recipient: recipient})
}

// DeadLetters exposes the system's dead-letter queue for inspection.
func (s *ActorSystem) DeadLetters() *deadletter.Queue { return s.deadLetters }

// EventBus exposes the system's event bus, for Subscribe/Unsubscribe/
// Publish and diagnostics.
func (s *ActorSystem) EventBus() *eventbus.Bus { return s.eventBus }

func (s *ActorSystem) emitTrace(correlationID, name, actorRef string, payload any) {
	if s.tracer == nil {
		return
	}
	s.tracer.Record(trace.Event{
		CorrelationID: correlationID,
		Name:          name,
		ActorRef:      actorRef,
		Payload:       payload,
		Timestamp:     time.Now(),
	})
}

// handleFailure consults the failing actor's parent supervisor, if any,
// and acts on its Decision: Resume is a no-op (the dispatcher itself
// reschedules a non-empty mailbox once Invoke returns), Restart
// stop-and-respawns the failed child (or every sibling, under an
// all-for-one Strategy), Stop removes it permanently, and Escalate
// re-consults the grandparent's Strategy about the parent itself —
// degrading to Stop when no further supervisor exists in the chain.
func (s *ActorSystem) handleFailure(child *PID, err error, stack []byte) {
	s.consultSupervisor(child, err, stack)
}

func (s *ActorSystem) consultSupervisor(failed *PID, err error, stack []byte) {
	parentID, hasParent := failed.path.Parent()
	if !hasParent {
		s.logger.Warnf("actor %q failed with no supervisor: %v", failed.id, err)
		_ = s.stopPID(failed)
		return
	}

	s.mu.RLock()
	parent, ok := s.registry[parentID]
	s.mu.RUnlock()
	if !ok || parent.strategy == nil {
		_ = s.stopPID(failed)
		return
	}

	switch parent.strategy.Handle(failed.id, err, stack) {
	case supervisor.Resume:
		// Nothing to do: failed's mailbox, if non-empty, is rescheduled by
		// the dispatcher once this Invoke call returns.
	case supervisor.Restart:
		if parent.strategy.RestartAll() {
			parent.supervisorMu.Lock()
			siblings := make([]*PID, 0, len(parent.children))
			for _, c := range parent.children {
				siblings = append(siblings, c)
			}
			parent.supervisorMu.Unlock()

			eg, _ := errgroup.WithContext(context.Background())
			for _, sib := range siblings {
				sib := sib
				eg.Go(func() error {
					_ = s.restartPID(sib)
					return nil
				})
			}
			_ = eg.Wait()
		} else {
			_ = s.restartPID(failed)
		}
	case supervisor.Stop:
		_ = s.stopPID(failed)
	case supervisor.Escalate:
		s.consultSupervisor(parent, err, stack)
	}
}

// noopMetricSink is the default metrics sink when none is supplied: every
// call is discarded.
type noopMetricSink struct{}

func (noopMetricSink) Increment(string, int64, metric.Tags)      {}
func (noopMetricSink) Decrement(string, int64, metric.Tags)      {}
func (noopMetricSink) Gauge(string, float64, metric.Tags)        {}
func (noopMetricSink) Timing(string, time.Duration, metric.Tags) {}

var _ metric.Sink = noopMetricSink{}
