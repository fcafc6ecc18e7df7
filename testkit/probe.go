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

package testkit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/starling-run/starling/actor"
	"github.com/starling-run/starling/log"
)

// Recorder is a plain, mutex-guarded log of values, meant to be used as an
// actor's target object O so a test can assert on what was delivered to it
// and in what order without racing the actor's own goroutine.
type Recorder[T any] struct {
	mu  sync.Mutex
	log []T
}

// Record appends v. Meant to be called only through an ActorRef's Invoke,
// never directly by test code.
func (r *Recorder[T]) Record(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = append(r.log, v)
}

// Snapshot returns a copy of everything recorded so far.
func (r *Recorder[T]) Snapshot() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.log))
	copy(out, r.log)
	return out
}

// Probe hosts a T (a Recorder[V] when built by NewRecorderProbe) behind an
// ordinary ActorRef, giving tests a send-and-assert actor: production code under test can Invoke or Ask
// against Ref() exactly like any other actor, and the test asserts on
// delivery order and count with Expect*.
type Probe[T any] struct {
	t   *testing.T
	pid *actor.PID[T]
}

// NewProbe spawns a zero-valued T on an inline scheduler so every Invoke
// takes effect before the call returns, and wraps it for assertions.
func NewProbe[T any](t *testing.T) *Probe[T] {
	t.Helper()
	pid := actor.Spawn[T](actor.InlineScheduler{}, log.DiscardLogger, func() T {
		var zero T
		return zero
	})
	return &Probe[T]{t: t, pid: pid}
}

// NewRecorderProbe is NewProbe specialized for the common case of probing
// a Recorder[V] directly: Ref() addresses the recorder, and Expect*
// assertions read back what was recorded.
func NewRecorderProbe[V any](t *testing.T) *Probe[Recorder[V]] {
	return NewProbe[Recorder[V]](t)
}

// Ref returns an ActorRef addressing the probe's hosted object.
func (p *Probe[T]) Ref() actor.ActorRef[T] {
	return p.pid.Self()
}

// Invoke is a thin pass-through to Ref().Invoke, so tests reading top to
// bottom see Invoke/Close on the same receiver instead of an extra
// Ref() indirection.
func (p *Probe[T]) Invoke(fn func(*T)) {
	p.pid.Self().Invoke(fn)
}

// Close tears down the probe's actor.
func (p *Probe[T]) Close() {
	p.pid.Close()
}

// ExpectRecorded polls a Recorder[V]-hosted probe until it has recorded at
// least len(want) values within the timeout, then asserts the leading
// len(want) values equal want, in order.
func ExpectRecorded[V any](p *Probe[Recorder[V]], within time.Duration, want ...V) {
	p.t.Helper()
	deadline := time.Now().Add(within)
	for {
		got := snapshot(p)
		if len(got) >= len(want) {
			require.Equal(p.t, want, got[:len(want)])
			return
		}
		if time.Now().After(deadline) {
			require.FailNowf(p.t, "timed out waiting for recorded values", "want=%v got=%v", want, got)
			return
		}
		time.Sleep(time.Millisecond)
	}
}

// ExpectNoneRecorded asserts nothing further is recorded within the given
// window.
func ExpectNoneRecorded[V any](p *Probe[Recorder[V]], within time.Duration) {
	p.t.Helper()
	before := snapshot(p)
	time.Sleep(within)
	after := snapshot(p)
	require.Equal(p.t, before, after)
}

func snapshot[V any](p *Probe[Recorder[V]]) []V {
	fut := actor.Ask(p.Ref(), func(r *Recorder[V]) ([]V, error) {
		return r.Snapshot(), nil
	})
	val, err := fut.Await(context.Background())
	require.NoError(p.t, err)
	return val
}
