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
	stdcontext "context"

	"github.com/stephanfeb/dactor/envelope"
	"github.com/stephanfeb/dactor/log"
	"github.com/stephanfeb/dactor/timer"
)

// Context is the per-invocation environment handed to an actor's PreStart
// and Receive. Message() and Sender() are only valid for the duration of
// the call they were handed to: the dispatcher installs a fresh Context for
// every envelope and discards it once the handler returns.
type Context struct {
	self *PID
	env  *envelope.Envelope
	ctx  stdcontext.Context
}

func newContext(self *PID, env *envelope.Envelope) *Context {
	return &Context{self: self, env: env, ctx: stdcontext.Background()}
}

// Self returns the actor's own reference.
func (c *Context) Self() *PID { return c.self }

// System returns the actor system this actor is running under.
func (c *Context) System() *ActorSystem { return c.self.system }

// Sender returns the sender of the current message, or nil if it was sent
// without one (e.g. a timer delivery or a publish).
func (c *Context) Sender() envelope.Ref {
	if c.env == nil {
		return nil
	}
	return c.env.Sender()
}

// Message returns the current message's payload. During PreStart, which
// has no associated envelope, Message returns nil.
func (c *Context) Message() any {
	if c.env == nil {
		return nil
	}
	return c.env.Payload()
}

// Envelope returns the raw envelope carrying the current message, preserving
// its correlation id — used by routers that must forward a message without
// losing identity.
func (c *Context) Envelope() *envelope.Envelope { return c.env }

// Timers returns the actor's private timer scheduler.
func (c *Context) Timers() *timer.Scheduler { return c.self.timers }

// Context returns a background context suitable for bounding Ask calls
// issued from within a handler.
func (c *Context) Context() stdcontext.Context { return c.ctx }

// Logger returns a logger tagged with this actor's id.
func (c *Context) Logger() log.Logger { return c.self.logger }

// Tell sends message to to, with this actor as the sender.
func (c *Context) Tell(to envelope.Ref, message any) error {
	return to.Tell(message, c.self)
}

// Spawn creates a child actor supervised under this actor's path
// (self.ID()+"/"+id).
func (c *Context) Spawn(id string, factory Factory, opts ...SpawnOption) (*PID, error) {
	return c.self.system.spawnChild(c.self, id, factory, opts...)
}

// Stop stops ref via the owning system.
func (c *Context) Stop(ref *PID) error {
	return c.self.system.Stop(ref.ID())
}
