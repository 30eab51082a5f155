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

// Package eventbus is the system-wide type-routed publish/subscribe
// broker. Subscriptions are keyed by exact payload type (no supertype
// traversal); publishing snapshots the subscriber set and tells each one
// a freshly wrapped envelope.
package eventbus

import (
	"reflect"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/stephanfeb/dactor/envelope"
)

// MonitoringEvent names the diagnostic events the bus itself emits.
const (
	MonitoringSubscribed   = "subscribed"
	MonitoringUnsubscribed = "unsubscribed"
	MonitoringPublished    = "published"
	MonitoringCleanup      = "cleanup"
)

// Monitoring is a single diagnostic record describing a bus-internal
// bookkeeping event. Exposed as a lazy sequence for diagnostics; nothing
// in the runtime is required to consume it.
type Monitoring struct {
	Event      string
	Type       reflect.Type
	Subscriber string
	Count      int
}

// Bus is the type-routed publish/subscribe broker.
//
// State is two inverse indexes: type -> set of subscriber ids, and
// subscriber id -> set of subscribed types. Both are maintained together
// so Cleanup can tear down a departing actor's subscriptions without
// having to know in advance which types it held.
type Bus struct {
	mu sync.Mutex

	typeToSubscribers map[reflect.Type]mapset.Set[string]
	subscriberToTypes map[string]mapset.Set[reflect.Type]
	refsByID          map[string]envelope.Ref

	monitoring    []Monitoring
	monitoringCap int
}

// New creates an empty Bus. monitoringCap bounds how many Monitoring
// records are retained for diagnostics; a non-positive value disables
// retention (the bus still functions, it simply reports nothing).
func New(monitoringCap int) *Bus {
	return &Bus{
		typeToSubscribers: make(map[reflect.Type]mapset.Set[string]),
		subscriberToTypes: make(map[string]mapset.Set[reflect.Type]),
		refsByID:          make(map[string]envelope.Ref),
		monitoringCap:     monitoringCap,
	}
}

func (b *Bus) record(m Monitoring) {
	if b.monitoringCap <= 0 {
		return
	}
	b.monitoring = append(b.monitoring, m)
	if len(b.monitoring) > b.monitoringCap {
		b.monitoring = b.monitoring[len(b.monitoring)-b.monitoringCap:]
	}
}

// Monitoring returns a snapshot of the retained diagnostic events.
func (b *Bus) Monitoring() []Monitoring {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Monitoring, len(b.monitoring))
	copy(out, b.monitoring)
	return out
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// SubscriberCount returns how many subscribers are registered for the
// exact type T.
func SubscriberCount[T any](b *Bus) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	set, ok := b.typeToSubscribers[typeOf[T]()]
	if !ok {
		return 0
	}
	return set.Cardinality()
}

// Subscribe registers ref to receive every event of exact type T.
// Idempotent: subscribing the same ref to the same type twice emits no
// second "subscribed" monitoring event.
func Subscribe[T any](b *Bus, ref envelope.Ref) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := typeOf[T]()
	id := ref.Name()

	subs, ok := b.typeToSubscribers[t]
	if !ok {
		subs = mapset.NewThreadUnsafeSet[string]()
		b.typeToSubscribers[t] = subs
	}
	if subs.Contains(id) {
		return
	}
	subs.Add(id)
	b.refsByID[id] = ref

	types, ok := b.subscriberToTypes[id]
	if !ok {
		types = mapset.NewThreadUnsafeSet[reflect.Type]()
		b.subscriberToTypes[id] = types
	}
	types.Add(t)

	b.record(Monitoring{Event: MonitoringSubscribed, Type: t, Subscriber: id})
}

// Unsubscribe removes ref's subscription to exact type T. Idempotent:
// unsubscribing something not currently subscribed emits no
// "unsubscribed" monitoring event. Empty index buckets are collapsed.
func Unsubscribe[T any](b *Bus, ref envelope.Ref) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := typeOf[T]()
	id := ref.Name()
	b.unsubscribe(id, t)
}

func (b *Bus) unsubscribe(id string, t reflect.Type) {
	subs, ok := b.typeToSubscribers[t]
	if !ok || !subs.Contains(id) {
		return
	}
	subs.Remove(id)
	if subs.Cardinality() == 0 {
		delete(b.typeToSubscribers, t)
	}

	if types, ok := b.subscriberToTypes[id]; ok {
		types.Remove(t)
		if types.Cardinality() == 0 {
			delete(b.subscriberToTypes, id)
			delete(b.refsByID, id)
		}
	}

	b.record(Monitoring{Event: MonitoringUnsubscribed, Type: t, Subscriber: id})
}

// Publish snapshots the current subscribers of exact type T and tells
// each of them a freshly wrapped envelope carrying event as its payload.
// No supertype traversal is performed: a subscriber registered for an
// interface or base type will not receive a T event unless it also
// subscribed to T directly.
func Publish[T any](b *Bus, event T) {
	b.mu.Lock()
	t := typeOf[T]()
	subs, ok := b.typeToSubscribers[t]
	var targets []envelope.Ref
	if ok {
		for _, id := range subs.ToSlice() {
			if ref, ok := b.refsByID[id]; ok {
				targets = append(targets, ref)
			}
		}
	}
	b.mu.Unlock()

	for _, ref := range targets {
		_ = ref.Tell(event, nil)
	}

	b.mu.Lock()
	b.record(Monitoring{Event: MonitoringPublished, Type: t, Count: len(targets)})
	b.mu.Unlock()
}

// Cleanup removes ref from every type it is subscribed to, then from the
// reverse index. Called as part of stopping any actor, before mailbox
// disposal, so an in-flight publish cannot target a stopped actor
// through this index.
func Cleanup(b *Bus, ref envelope.Ref) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := ref.Name()
	b.record(Monitoring{Event: MonitoringCleanup, Subscriber: id})

	types, ok := b.subscriberToTypes[id]
	if !ok {
		return
	}
	for _, t := range types.ToSlice() {
		b.unsubscribe(id, t)
	}
}
