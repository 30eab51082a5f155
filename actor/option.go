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
	"time"

	"github.com/stephanfeb/dactor/ask"
	"github.com/stephanfeb/dactor/log"
	"github.com/stephanfeb/dactor/metric"
	"github.com/stephanfeb/dactor/trace"
)

// Option configures an ActorSystem at construction time.
type Option func(*ActorSystem)

// WithLogger sets the system's logger. Defaults to log.DiscardLogger.
func WithLogger(logger log.Logger) Option {
	return func(s *ActorSystem) { s.logger = logger }
}

// WithMetricsSink sets the system's metrics sink. Defaults to a no-op sink.
func WithMetricsSink(sink metric.Sink) Option {
	return func(s *ActorSystem) { s.metrics = sink }
}

// WithTraceSink sets the system's trace sink. Defaults to nil, which
// disables trace recording entirely.
func WithTraceSink(sink trace.Sink) Option {
	return func(s *ActorSystem) { s.tracer = sink }
}

// WithAskConfig sets the default ask.Config every spawned actor uses unless
// overridden per-spawn with WithSpawnAskConfig. Defaults to
// ask.DefaultConfig().
func WithAskConfig(cfg ask.Config) Option {
	return func(s *ActorSystem) { s.askConfig = cfg }
}

// WithDeadLetterCapacity sets the dead-letter queue's capacity. Defaults to
// deadletter.DefaultCapacity.
func WithDeadLetterCapacity(capacity int) Option {
	return func(s *ActorSystem) { s.deadLetterCapacity = capacity }
}

// WithInitRetry configures the retry budget PreStart is run under: up to
// maxRetries attempts, starting at baseDelay and backing off up to
// maxDelay, matching the teacher's PID.init retry pattern.
func WithInitRetry(maxRetries int, baseDelay, maxDelay time.Duration) Option {
	return func(s *ActorSystem) {
		s.initMaxRetries = maxRetries
		s.initBaseDelay = baseDelay
		s.initMaxDelay = maxDelay
	}
}
