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

	"github.com/stephanfeb/dactor/ask"
	"github.com/stephanfeb/dactor/envelope"
	"github.com/stephanfeb/dactor/eventbus"
)

// Ask sends request to to and awaits a typed response, using to's own ask
// configuration (the system default unless overridden by WithSpawnAskConfig
// at spawn time). Go does not allow generic methods, so Ask is a package-level
// function parameterized by the expected response type, mirroring how
// Subscribe/Publish are free functions on eventbus.Bus.
func Ask[T any](ctx stdcontext.Context, to *PID, request any) (T, error) {
	return ask.Ask[T](ctx, to, request, to.askConfig, to.system.tracer)
}

// AskWithConfig is Ask, overriding the ask configuration for this call only.
func AskWithConfig[T any](ctx stdcontext.Context, to *PID, request any, cfg ask.Config) (T, error) {
	return ask.Ask[T](ctx, to, request, cfg, to.system.tracer)
}

// Subscribe registers ref to receive every event bus message of exact type
// T, via the system's event bus.
func Subscribe[T any](system *ActorSystem, ref envelope.Ref) {
	eventbus.Subscribe[T](system.eventBus, ref)
}

// Unsubscribe removes ref's subscription to exact type T.
func Unsubscribe[T any](system *ActorSystem, ref envelope.Ref) {
	eventbus.Unsubscribe[T](system.eventBus, ref)
}

// Publish broadcasts event to every subscriber of its exact type.
func Publish[T any](system *ActorSystem, event T) {
	eventbus.Publish(system.eventBus, event)
}
