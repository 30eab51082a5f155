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

// Package ask implements the request/response protocol: a single-use reply
// handle, a per-attempt timeout, and an exponential-backoff retry loop
// bounded by a configurable retryable-error set.
package ask

import (
	"math"
	"time"

	derrors "github.com/stephanfeb/dactor/errors"
)

// Config governs one Ask call's timeout and retry behavior. See spec §4.4.
type Config struct {
	DefaultTimeout         time.Duration
	MaxRetries             int
	RetryBackoffBase       time.Duration
	RetryBackoffMultiplier float64
	MaxBackoffDuration     time.Duration
	EnableRetries          bool
	RetryableKinds         map[derrors.Kind]bool
}

// DefaultConfig returns the spec §4.4 default: 5s timeout, 3 retries, 100ms
// base backoff doubling up to a 10s cap, retrying only timeouts.
func DefaultConfig() Config {
	return Config{
		DefaultTimeout:         5 * time.Second,
		MaxRetries:             3,
		RetryBackoffBase:       100 * time.Millisecond,
		RetryBackoffMultiplier: 2.0,
		MaxBackoffDuration:     10 * time.Second,
		EnableRetries:          true,
		RetryableKinds:         map[derrors.Kind]bool{derrors.KindTimeout: true},
	}
}

// DevelopmentConfig is the "development" preset: a longer timeout and more
// retries, for actors under a debugger or being exercised interactively.
func DevelopmentConfig() Config {
	c := DefaultConfig()
	c.DefaultTimeout = 30 * time.Second
	c.MaxRetries = 5
	c.RetryBackoffBase = 200 * time.Millisecond
	return c
}

// ProductionConfig is the "production" preset: a tighter timeout and fewer
// retries, favoring fast failure over patience.
func ProductionConfig() Config {
	c := DefaultConfig()
	c.DefaultTimeout = 3 * time.Second
	c.MaxRetries = 2
	c.RetryBackoffBase = 50 * time.Millisecond
	return c
}

func (c Config) retryable(k derrors.Kind) bool {
	return c.RetryableKinds[k]
}

// Backoff returns this Config's backoff delay before retry attempt k+1,
// i.e. CalculateBackoff applied to this Config's base/multiplier/cap.
func (c Config) Backoff(k int) time.Duration {
	return CalculateBackoff(c.RetryBackoffBase, c.RetryBackoffMultiplier, c.MaxBackoffDuration, k)
}

// CalculateBackoff implements spec §8 property 9:
// min(base*multiplier^(k-1), cap) for k>=1, and 0 for k<=0.
func CalculateBackoff(base time.Duration, multiplier float64, cap time.Duration, k int) time.Duration {
	if k <= 0 {
		return 0
	}
	d := float64(base) * math.Pow(multiplier, float64(k-1))
	if cap > 0 && d > float64(cap) {
		return cap
	}
	return time.Duration(d)
}
