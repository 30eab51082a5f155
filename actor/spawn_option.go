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
	"github.com/stephanfeb/dactor/ask"
	"github.com/stephanfeb/dactor/supervisor"
)

// spawnConfig collects the options applied to a single Spawn call.
type spawnConfig struct {
	mailboxCapacity int // 0 means unbounded (mailbox.Default)
	strategy        *supervisor.Strategy
	askConfig       *ask.Config // nil means inherit the system default
	poolSize        int         // >0 means this spawn builds a router pool instead of a plain actor
}

// SpawnOption configures a single Spawn or Context.Spawn call.
type SpawnOption func(*spawnConfig)

// WithBoundedMailbox gives the spawned actor a bounded mailbox of the given
// capacity instead of the default unbounded one. Enqueue on a full mailbox
// is routed to the dead-letter queue rather than blocking the caller.
func WithBoundedMailbox(capacity int) SpawnOption {
	return func(c *spawnConfig) { c.mailboxCapacity = capacity }
}

// WithSupervisorStrategy attaches strategy to the spawned actor, so any
// child it later spawns is supervised by it on failure.
func WithSupervisorStrategy(strategy *supervisor.Strategy) SpawnOption {
	return func(c *spawnConfig) { c.strategy = strategy }
}

// WithSpawnAskConfig overrides the ask configuration used when this actor is
// the target of actor.Ask, in place of the system default.
func WithSpawnAskConfig(cfg ask.Config) SpawnOption {
	return func(c *spawnConfig) { c.askConfig = &cfg }
}

// WithPool spawns a round-robin router in place of a single actor: the
// supplied factory is used to build n routee children, and the returned PID
// is the router itself. See spec §4.9.
func WithPool(n int) SpawnOption {
	return func(c *spawnConfig) { c.poolSize = n }
}
