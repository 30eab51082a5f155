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
	"github.com/stephanfeb/dactor/supervisor"
)

// supervisorActor spawns two counterActor children as soon as it starts,
// so the system registers them under "sup/c1" and "sup/c2" by the time
// Spawn("sup", ...) returns.
type supervisorActor struct{}

func (supervisorActor) PreStart(ctx *actor.Context) error {
	if _, err := ctx.Spawn("c1", func() actor.Actor { return &counterActor{} }); err != nil {
		return err
	}
	if _, err := ctx.Spawn("c2", func() actor.Actor { return &counterActor{} }); err != nil {
		return err
	}
	return nil
}

func (supervisorActor) Receive(*actor.Context) error  { return nil }
func (supervisorActor) PostStop(*actor.Context) error { return nil }

// S6: one-for-one-always-restart; c1 fails, c2's state is untouched.
func TestOneForOneRestartLeavesSiblingUnaffected(t *testing.T) {
	sys := newTestSystem()
	defer sys.Shutdown()

	strategy := supervisor.NewOneForOne(supervisor.AlwaysRestart)
	_, err := sys.Spawn("sup", func() actor.Actor { return &supervisorActor{} },
		actor.WithSupervisorStrategy(strategy))
	require.NoError(t, err)

	c1, ok := sys.Get("sup/c1")
	require.True(t, ok)
	c2, ok := sys.Get("sup/c2")
	require.True(t, ok)

	require.NoError(t, c2.Tell("increment", nil))
	require.NoError(t, c1.Tell("fail", nil))

	assert.Eventually(t, func() bool {
		n, err := actor.Ask[int](context.Background(), c2, "get")
		return err == nil && n == 1
	}, time.Second, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		fresh, ok := sys.Get("sup/c1")
		if !ok || !fresh.IsAlive() {
			return false
		}
		n, err := actor.Ask[int](context.Background(), fresh, "get")
		return err == nil && n == 0
	}, time.Second, 5*time.Millisecond)
}

// All-for-one restarts every tracked child, including the one that did not
// fail.
func TestAllForOneRestartsEverySibling(t *testing.T) {
	sys := newTestSystem()
	defer sys.Shutdown()

	strategy := supervisor.NewAllForOne(supervisor.AlwaysRestart)
	_, err := sys.Spawn("sup", func() actor.Actor { return &supervisorActor{} },
		actor.WithSupervisorStrategy(strategy))
	require.NoError(t, err)

	c2Before, ok := sys.Get("sup/c2")
	require.True(t, ok)
	require.NoError(t, c2Before.Tell("increment", nil))

	assert.Eventually(t, func() bool {
		n, err := actor.Ask[int](context.Background(), c2Before, "get")
		return err == nil && n == 1
	}, time.Second, 5*time.Millisecond)

	c1, ok := sys.Get("sup/c1")
	require.True(t, ok)
	require.NoError(t, c1.Tell("fail", nil))

	assert.Eventually(t, func() bool {
		fresh, ok := sys.Get("sup/c2")
		if !ok || !fresh.IsAlive() {
			return false
		}
		n, err := actor.Ask[int](context.Background(), fresh, "get")
		return err == nil && n == 0
	}, time.Second, 5*time.Millisecond)
}
