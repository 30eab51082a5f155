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

package actor_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stephanfeb/dactor/actor"
	"github.com/stephanfeb/dactor/eventbus"
)

type widgetCreated struct {
	Name string
}

// widgetSubscriber subscribes itself to widgetCreated on start and records
// every one it receives.
type widgetSubscriber struct {
	mu   sync.Mutex
	seen []widgetCreated
}

func (w *widgetSubscriber) PreStart(ctx *actor.Context) error {
	actor.Subscribe[widgetCreated](ctx.System(), ctx.Self())
	return nil
}

func (w *widgetSubscriber) Receive(ctx *actor.Context) error {
	if msg, ok := ctx.Message().(widgetCreated); ok {
		w.mu.Lock()
		w.seen = append(w.seen, msg)
		w.mu.Unlock()
	}
	return nil
}

func (w *widgetSubscriber) PostStop(*actor.Context) error { return nil }

func (w *widgetSubscriber) snapshot() []widgetCreated {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]widgetCreated, len(w.seen))
	copy(out, w.seen)
	return out
}

// S7: subscribing and publishing deliver the event, and stopping the
// subscriber tears down its subscription so the bus no longer tracks it.
func TestEventBusSubscriptionLifecycle(t *testing.T) {
	sys := newTestSystem()
	defer sys.Shutdown()

	sub := &widgetSubscriber{}
	_, err := sys.Spawn("subscriber", func() actor.Actor { return sub })
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return eventbus.SubscriberCount[widgetCreated](sys.EventBus()) == 1
	}, time.Second, 5*time.Millisecond)

	actor.Publish(sys, widgetCreated{Name: "gadget"})

	assert.Eventually(t, func() bool {
		seen := sub.snapshot()
		return len(seen) == 1 && seen[0].Name == "gadget"
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, sys.Stop("subscriber"))

	assert.Eventually(t, func() bool {
		return eventbus.SubscriberCount[widgetCreated](sys.EventBus()) == 0
	}, time.Second, 5*time.Millisecond)
}
