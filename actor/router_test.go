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
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stephanfeb/dactor/actor"
)

// S5: a round-robin pool of two routees delivers every message to some
// routee, and every routee forwards what it receives to a shared probe.
//
// Delivery to each routee runs on its own detached dispatch goroutine, so
// global arrival order across routees is not guaranteed by this runtime
// (only per-actor ordering is, per the single in-flight-per-mailbox
// invariant). The assertion below checks the set of delivered messages
// rather than their interleaving.
func TestRouterDistributesAcrossPool(t *testing.T) {
	sys := newTestSystem()
	defer sys.Shutdown()

	p := &probe{}
	factory := func() actor.Actor { return &forwarderActor{target: p} }

	pool, err := sys.Spawn("pool", factory, actor.WithPool(2))
	require.NoError(t, err)

	require.NoError(t, pool.Tell("m1", nil))
	require.NoError(t, pool.Tell("m2", nil))
	require.NoError(t, pool.Tell("m3", nil))
	require.NoError(t, pool.Tell("m4", nil))

	assert.Eventually(t, func() bool {
		return len(p.snapshot()) == 4
	}, time.Second, 5*time.Millisecond)

	got := p.snapshot()
	want := map[string]bool{"m1": true, "m2": true, "m3": true, "m4": true}
	for _, m := range got {
		s, ok := m.(string)
		require.True(t, ok)
		assert.True(t, want[s], "unexpected message %q", s)
		delete(want, s)
	}
	assert.Empty(t, want, "not every message was delivered")

	_, ok := sys.Get("pool/routee-0")
	assert.True(t, ok)
	_, ok = sys.Get("pool/routee-1")
	assert.True(t, ok)
}

// §4.9: a pool spawned with no explicit WithSupervisorStrategy still
// restarts a failed routee, defaulting to one-for-one-always-restart.
func TestRouterDefaultsToOneForOneAlwaysRestart(t *testing.T) {
	sys := newTestSystem()
	defer sys.Shutdown()

	_, err := sys.Spawn("pool", func() actor.Actor { return &counterActor{} }, actor.WithPool(2))
	require.NoError(t, err)

	routee0, ok := sys.Get("pool/routee-0")
	require.True(t, ok)
	require.NoError(t, routee0.Tell("increment", nil))

	assert.Eventually(t, func() bool {
		n, err := actor.Ask[int](context.Background(), routee0, "get")
		return err == nil && n == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, routee0.Tell("fail", nil))

	assert.Eventually(t, func() bool {
		fresh, ok := sys.Get("pool/routee-0")
		if !ok || !fresh.IsAlive() {
			return false
		}
		n, err := actor.Ask[int](context.Background(), fresh, "get")
		return err == nil && n == 0
	}, time.Second, 5*time.Millisecond)
}
