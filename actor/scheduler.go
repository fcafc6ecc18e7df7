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

// Scheduler is a pluggable dispatcher: it takes a weak handle to a mailbox
// and arranges for exactly one receive to eventually run against it, on
// whatever execution context the implementation owns. A Scheduler never
// holds a strong reference to the mailbox or its actor; if the weak handle
// no longer upgrades, the schedule request is simply dropped.
//
// Implementations must, for a single mailbox, deliver receive calls in the
// order Schedule was called for that mailbox (per-mailbox FIFO). No
// ordering is implied across different mailboxes.
type Scheduler interface {
	Schedule(weak WeakMailbox)
}

// WeakMailbox is a non-owning handle to a mailbox: holding one never
// prolongs the lifetime of the mailbox's actor. Scheduler implementations
// only ever see mailboxes through this interface.
type WeakMailbox interface {
	// upgrade returns a live receiver for exactly one dispatch, or false if
	// the mailbox has already been closed.
	upgrade() (receiver, bool)
	// identity returns a value stable for the lifetime of the mailbox,
	// used by worker-pinning schedulers to always route the same mailbox
	// to the same worker without ever dereferencing it.
	identity() uintptr
}

// receiver is the narrow surface a Scheduler needs to actually run a
// dispatch; kept separate from WeakMailbox so upgrading is a distinct,
// explicit step from dispatching.
type receiver interface {
	receive()
}

// NoopScheduler drops every schedule request. A Mailbox starts wired to a
// NoopScheduler; this is what makes the "holding" state require no branch
// in push — enqueuing while holding always calls Schedule, it just lands on
// a Scheduler that does nothing.
type NoopScheduler struct{}

// Schedule implements Scheduler by doing nothing.
func (NoopScheduler) Schedule(WeakMailbox) {}
