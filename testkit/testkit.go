// MIT License
//
// Copyright (c) 2023-2026 Starling Authors
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

// Package testkit collects the helpers Starling's own test suite uses and
// exports them for callers embedding actors in their own tests: a
// synchronous scheduler, a recording probe actor, and a goroutine-leak
// assertion wrapping goleak.
package testkit

import (
	"testing"

	"go.uber.org/goleak"

	"github.com/starling-run/starling/actor"
)

// NewInlineScheduler returns a Scheduler that dispatches synchronously on
// the calling goroutine, for tests that want deterministic ordering
// without a real event loop.
func NewInlineScheduler() actor.Scheduler {
	return actor.InlineScheduler{}
}

// AssertNoGoroutineLeak fails t if any goroutine started during the test
// (an ActorThread's worker, a PoolScheduler worker) is still running when
// called. Call it as the first deferred statement in a test that spawns an
// ActorThread or PoolScheduler.
func AssertNoGoroutineLeak(t *testing.T, opts ...goleak.Option) {
	t.Helper()
	goleak.VerifyNone(t, opts...)
}
