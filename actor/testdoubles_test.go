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
	"errors"
	"sync"

	"github.com/stephanfeb/dactor/actor"
	"github.com/stephanfeb/dactor/envelope"
)

// counterActor holds a single int counter: "increment" adds one, "get"
// replies to the sender with the current value, "fail" returns an error so
// tests can exercise supervision.
type counterActor struct {
	mu    sync.Mutex
	count int
}

func (c *counterActor) PreStart(*actor.Context) error { return nil }

func (c *counterActor) Receive(ctx *actor.Context) error {
	switch msg := ctx.Message().(type) {
	case string:
		switch msg {
		case "increment":
			c.mu.Lock()
			c.count++
			c.mu.Unlock()
		case "get":
			c.mu.Lock()
			n := c.count
			c.mu.Unlock()
			if sender := ctx.Sender(); sender != nil {
				return sender.Tell(n, ctx.Self())
			}
		case "fail":
			return errors.New("boom")
		}
	}
	return nil
}

func (c *counterActor) PostStop(*actor.Context) error { return nil }

// probe is a bare envelope.Ref double that records every message it is
// told, in arrival order, without going through a mailbox of its own.
type probe struct {
	mu   sync.Mutex
	seen []any
}

func (p *probe) Name() string { return "probe" }

func (p *probe) Tell(message any, _ envelope.Ref) error {
	p.mu.Lock()
	p.seen = append(p.seen, message)
	p.mu.Unlock()
	return nil
}

func (p *probe) snapshot() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]any, len(p.seen))
	copy(out, p.seen)
	return out
}

// forwarderActor forwards the payload of every message it receives to a
// fixed probe, so router tests can check delivery.
type forwarderActor struct {
	target *probe
}

func (f *forwarderActor) PreStart(*actor.Context) error { return nil }

func (f *forwarderActor) Receive(ctx *actor.Context) error {
	return ctx.Tell(f.target, ctx.Message())
}

func (f *forwarderActor) PostStop(*actor.Context) error { return nil }

// noopActor does nothing; useful as a minimal spawn target or supervisor
// root in tests that only care about lifecycle and supervision wiring.
type noopActor struct{}

func (noopActor) PreStart(*actor.Context) error { return nil }
func (noopActor) Receive(*actor.Context) error  { return nil }
func (noopActor) PostStop(*actor.Context) error { return nil }

// failingPostStopActor returns an error from PostStop, exercising the path
// where a stop's teardown failure must surface to the caller instead of
// being silently discarded.
type failingPostStopActor struct{}

func (failingPostStopActor) PreStart(*actor.Context) error { return nil }
func (failingPostStopActor) Receive(*actor.Context) error  { return nil }
func (failingPostStopActor) PostStop(*actor.Context) error { return errors.New("teardown boom") }
