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

// Package future provides a generic one-shot completion token used to
// deliver the result of an Ask to its sender.
package future

import (
	"context"
	"sync"
)

// Future represents a value of type R that will become available exactly
// once, either because the task that produces it succeeded or because it
// failed. It backs actor.Ask; callers obtain one from Ask and never
// construct one directly.
type Future[R any] struct {
	once sync.Once
	done chan struct{}
	val  R
	err  error
}

// New returns an incomplete Future. Complete must be called exactly once;
// subsequent calls are no-ops, matching the "first writer wins" semantics a
// promise needs when both a handler result and a mailbox close race to
// complete the same token.
func New[R any]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

// Complete resolves the future with val or err. Only the first call has any
// effect.
func (f *Future[R]) Complete(val R, err error) {
	f.once.Do(func() {
		f.val = val
		f.err = err
		close(f.done)
	})
}

// Await blocks until the future is completed or ctx is done, whichever
// happens first.
func (f *Future[R]) Await(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed once the future is completed. It is
// useful for select statements that also watch other events.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}
