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
	"fmt"
	"sync/atomic"
)

// router is an actor that spawns a fixed pool of routees from a single
// factory and forwards every message it receives to the next routee in
// round-robin order, preserving the original envelope so a reply bypasses
// the router entirely and goes straight back to the original sender.
type router struct {
	poolSize   int
	factory    Factory
	routeeOpts []SpawnOption

	routees []*PID
	next    uint32
}

var _ Actor = (*router)(nil)

// newRouter builds the router behavior. poolSize must be positive; the
// caller (buildBehavior) only builds a router when poolSize > 0.
func newRouter(poolSize int, factory Factory, routeeOpts ...SpawnOption) *router {
	return &router{
		poolSize:   poolSize,
		factory:    factory,
		routeeOpts: routeeOpts,
	}
}

// PreStart spawns the routee pool as children of the router.
func (r *router) PreStart(ctx *Context) error {
	r.routees = make([]*PID, 0, r.poolSize)
	for i := 0; i < r.poolSize; i++ {
		id := fmt.Sprintf("routee-%d", i)
		routee, err := ctx.Spawn(id, r.factory, r.routeeOpts...)
		if err != nil {
			return err
		}
		r.routees = append(r.routees, routee)
	}
	return nil
}

// Receive forwards the current message to the next routee in round-robin
// order. The current envelope is handed to Tell, which copies its
// correlation id, metadata, and reply-to onto the routee's envelope, and the
// original sender is passed along with it. A routee restarted by
// supervision is looked up again by id, so the fresh instance is used.
func (r *router) Receive(ctx *Context) error {
	if len(r.routees) == 0 {
		return nil
	}
	idx := atomic.AddUint32(&r.next, 1) - 1
	routee := r.routees[int(idx)%len(r.routees)]
	if current, ok := ctx.System().Get(routee.ID()); ok {
		routee = current
	}
	return routee.Tell(ctx.Envelope(), ctx.Sender())
}

// PostStop is a no-op: the router's routees are children in the registry
// and are stopped independently when the router itself is stopped.
func (r *router) PostStop(ctx *Context) error { return nil }
