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

// Package trace defines the message-tracing sink shared by actor references
// and the ask protocol, plus an in-memory and a logger-backed
// implementation.
package trace

import "time"

// Event names the kernel is required to emit. See spec §6.
const (
	EventSent                  = "sent"
	EventProcessed             = "processed"
	EventAskAttempt            = "ask_attempt"
	EventAskRetry              = "ask_retry"
	EventAskFailedNonRetryable = "ask_failed_non_retryable"
	EventAskFailedFinal        = "ask_failed_final"
)

// Event is a single trace record.
type Event struct {
	CorrelationID string
	Name          string
	ActorRef      string
	Payload       any
	Timestamp     time.Time
}

// Sink is the narrow tracing contract the kernel consumes.
type Sink interface {
	Record(Event)
}
