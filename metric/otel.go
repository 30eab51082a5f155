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

package metric

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

func attributesFrom(tags Tags) []attribute.KeyValue {
	if len(tags) == 0 {
		return nil
	}
	out := make([]attribute.KeyValue, 0, len(tags))
	for k, v := range tags {
		out = append(out, attribute.String(k, v))
	}
	return out
}

// OTel is a Sink backed by an OpenTelemetry Meter. Instruments are created
// lazily on first use and cached by metric name, since this package's
// metric names are open-ended caller-supplied strings rather than a fixed
// schema known up front.
type OTel struct {
	meter otelmetric.Meter

	mu         sync.Mutex
	counters   map[string]otelmetric.Float64Counter
	gauges     map[string]otelmetric.Float64Gauge
	histograms map[string]otelmetric.Float64Histogram
}

var _ Sink = (*OTel)(nil)

// NewOTel builds an OTel sink against the given meter.
func NewOTel(meter otelmetric.Meter) *OTel {
	return &OTel{
		meter:      meter,
		counters:   make(map[string]otelmetric.Float64Counter),
		gauges:     make(map[string]otelmetric.Float64Gauge),
		histograms: make(map[string]otelmetric.Float64Histogram),
	}
}

func (o *OTel) counter(name string) otelmetric.Float64Counter {
	o.mu.Lock()
	defer o.mu.Unlock()
	if c, ok := o.counters[name]; ok {
		return c
	}
	c, err := o.meter.Float64Counter(name)
	if err != nil {
		return nil
	}
	o.counters[name] = c
	return c
}

func (o *OTel) gauge(name string) otelmetric.Float64Gauge {
	o.mu.Lock()
	defer o.mu.Unlock()
	if g, ok := o.gauges[name]; ok {
		return g
	}
	g, err := o.meter.Float64Gauge(name)
	if err != nil {
		return nil
	}
	o.gauges[name] = g
	return g
}

func (o *OTel) histogram(name string) otelmetric.Float64Histogram {
	o.mu.Lock()
	defer o.mu.Unlock()
	if h, ok := o.histograms[name]; ok {
		return h
	}
	h, err := o.meter.Float64Histogram(name, otelmetric.WithUnit("ms"))
	if err != nil {
		return nil
	}
	o.histograms[name] = h
	return h
}

func toAttributes(tags Tags) otelmetric.AddOption {
	if len(tags) == 0 {
		return otelmetric.WithAttributes()
	}
	return otelmetric.WithAttributes(attributesFrom(tags)...)
}

func (o *OTel) Increment(name string, count int64, tags Tags) {
	if count == 0 {
		count = 1
	}
	if c := o.counter(name); c != nil {
		c.Add(context.Background(), float64(count), toAttributes(tags))
	}
}

func (o *OTel) Decrement(name string, count int64, tags Tags) {
	if count == 0 {
		count = 1
	}
	if c := o.counter(name); c != nil {
		c.Add(context.Background(), -float64(count), toAttributes(tags))
	}
}

func (o *OTel) Gauge(name string, value float64, tags Tags) {
	if g := o.gauge(name); g != nil {
		g.Record(context.Background(), value, otelmetric.WithAttributes(attributesFrom(tags)...))
	}
}

func (o *OTel) Timing(name string, d time.Duration, tags Tags) {
	if h := o.histogram(name); h != nil {
		h.Record(context.Background(), float64(d.Milliseconds()), otelmetric.WithAttributes(attributesFrom(tags)...))
	}
}
