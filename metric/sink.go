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

// Package metric defines the metrics sink the runtime kernel emits to, and
// ships an in-memory and an OpenTelemetry-backed implementation.
package metric

import "time"

// Names of the metrics the kernel is required to emit. See spec §6.
const (
	ActorsSpawned    = "actors.spawned"
	ActorsStopped    = "actors.stopped"
	ActorsFailed     = "actors.failed"
	ActorsRestarted  = "actors.restarted"
	ActorsStopFailed = "actors.stop_failed"
	ActorsActive     = "actors.active"

	MessagesProcessed      = "messages.processed"
	MessagesProcessingTime = "messages.processing_time"

	DeadLetters        = "dead_letters"
	DeadLettersEvicted = "dead_letters.evicted"
	MailboxSize        = "mailbox.size"
	SystemShutdown     = "system.shutdown"
)

// Tags is a small typed alias for metric tag sets, keeping call sites free
// of repeating map[string]string.
type Tags map[string]string

// Sink is the narrow metrics contract the kernel consumes.
type Sink interface {
	Increment(name string, count int64, tags Tags)
	Decrement(name string, count int64, tags Tags)
	Gauge(name string, value float64, tags Tags)
	Timing(name string, d time.Duration, tags Tags)
}
