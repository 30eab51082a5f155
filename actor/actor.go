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

// Package actor is the composition root: the Actor behavior contract, the
// per-message Context, the actor reference (PID), and the ActorSystem that
// wires the dispatcher, timers, supervision, event bus, and dead-letter
// queue into a single running kernel.
package actor

// Actor defines the core interface for an actor in the system's concurrency
// model. Actors are lightweight, isolated units of computation that
// communicate exclusively via message passing. Each actor has its own
// mailbox and processes messages sequentially, so implementations need no
// internal synchronization.
//
// The lifecycle of an actor follows three phases:
//  1. PreStart — one-time setup before any message is handled.
//  2. Receive — the message handling loop, invoked once per envelope.
//  3. PostStop — cleanup after the actor has processed its last message.
//
// An error returned from Receive is not reported back to the sender; it is
// routed to the actor's parent supervisor (or, absent one, stops the actor),
// exactly as an uncaught exception would propagate in a language with
// exceptions.
type Actor interface {
	// PreStart is invoked once before the actor begins processing any
	// messages. An error here prevents the actor from starting.
	PreStart(ctx *Context) error

	// Receive handles one message. It is invoked sequentially: the next
	// envelope is not dispatched until this call returns.
	Receive(ctx *Context) error

	// PostStop is invoked after the actor has processed its final message
	// and is about to terminate. A PreStart failure never starts the actor,
	// so PostStop is not invoked for it; the failed PreStart's own caller is
	// responsible for releasing anything it had already acquired.
	PostStop(ctx *Context) error
}

// Factory constructs a fresh Actor instance. Stored alongside a spawned
// actor's id so supervision can build a clean instance on restart.
type Factory func() Actor
