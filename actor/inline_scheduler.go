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

package actor

// InlineScheduler dispatches synchronously, on the goroutine that calls
// Schedule: a push against a mailbox open on an InlineScheduler runs the
// handler before the push call returns. It is what a two-phase actor's
// mailbox is opened against when there is no real event loop, only test
// code or a caller happy to pay dispatch cost inline.
//
// Because dispatch happens synchronously inside push, InlineScheduler is
// the one Scheduler where a handler that sends a message back to its own
// actor re-enters Mailbox.receive on the same goroutine; Mailbox handles
// that by deferring the extra dispatch rather than recursing.
type InlineScheduler struct{}

// Schedule implements Scheduler by upgrading weak and, if still live,
// running receive immediately.
func (InlineScheduler) Schedule(weak WeakMailbox) {
	if r, ok := weak.upgrade(); ok {
		r.receive()
	}
}
