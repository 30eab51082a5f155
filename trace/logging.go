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

package trace

import "github.com/stephanfeb/dactor/log"

// Logging is a Sink that writes each event through a log.Logger at debug
// level, useful when a developer wants trace activity to show up in the
// same stream as everything else rather than in a separate buffer.
type Logging struct {
	logger log.Logger
}

var _ Sink = (*Logging)(nil)

// NewLogging builds a Logging sink writing through logger.
func NewLogging(logger log.Logger) *Logging {
	return &Logging{logger: logger}
}

func (l *Logging) Record(e Event) {
	l.logger.Debugf("trace: %s correlation=%s actor=%s payload=%v", e.Name, e.CorrelationID, e.ActorRef, e.Payload)
}
