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

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/starling-run/starling/errors"
	"github.com/starling-run/starling/log"
)

// mailboxState is the three-state lifecycle a mailbox moves through over
// its life: holding, open, closed.
type mailboxState int32

const (
	// mailboxHolding accepts pushes but never dispatches. It is the state a
	// two-phase actor's mailbox starts in, before its target thread exists.
	mailboxHolding mailboxState = iota
	// mailboxOpen dispatches: each push also requests one receive.
	mailboxOpen
	// mailboxClosed is terminal: pushes are accepted and immediately
	// abandoned; nothing is ever queued again.
	mailboxClosed
)

// Mailbox is a thread-safe FIFO queue of Message[O] with an open/closed
// lifecycle and a bound Scheduler. It is the piece of Actor[O]/PID[O] that
// callers reach through an ActorRef: pushing is safe from any goroutine,
// receiving happens only on whatever execution context the bound Scheduler
// runs it on.
//
// Concurrency contract:
//   - push is callable from any goroutine, guarded by pushMu.
//   - receive is callable only by the bound Scheduler's execution context.
//     Go has no recursive sync.Mutex, so re-entrant self-sends (a handler
//     synchronously re-triggering its own mailbox through a same-goroutine
//     Scheduler such as InlineScheduler) are handled by detecting a failed
//     TryLock as "a receive is already in flight" and deferring the extra
//     dispatch to be drained by whichever call currently holds the lock,
//     rather than recursing into it. A handler can always self-push without
//     deadlocking; the extra dispatch just runs one tick later than a
//     recursive call would have.
type Mailbox[O any] struct {
	queue *msgQueue[O]

	pushMu sync.Mutex
	state  mailboxState
	target *O
	sched  Scheduler

	recvMu    sync.Mutex
	deferred  atomic.Int64
	logger    log.Logger
	onDequeue func()
	onFault   func()
}

// NewMailbox creates a Mailbox in the holding state: pushes are accepted
// and queued, but nothing is dispatched until Open is called.
func NewMailbox[O any]() *Mailbox[O] {
	return &Mailbox[O]{
		queue:  newMsgQueue[O](),
		state:  mailboxHolding,
		sched:  NoopScheduler{},
		logger: log.DiscardLogger,
	}
}

// SetLogger installs a logger used to report handler faults. Must be called
// before the mailbox is opened; PID does this during construction.
func (m *Mailbox[O]) SetLogger(logger log.Logger) {
	if logger == nil {
		logger = log.DiscardLogger
	}
	m.logger = logger
}

// setInstrumentation installs callbacks invoked once per successful pop and
// once per recovered handler panic, used by the metric package to observe
// dispatch and fault counts without the core mailbox importing
// OpenTelemetry directly. Either argument may be nil.
func (m *Mailbox[O]) setInstrumentation(onDequeue, onFault func()) {
	m.onDequeue = onDequeue
	m.onFault = onFault
}

// Len reports a best-effort snapshot of the number of queued messages.
// Diagnostic only: it returns a count, never the messages themselves, since
// nothing outside a mailbox's own goroutine may inspect or iterate what is
// pending.
func (m *Mailbox[O]) Len() int64 {
	return m.queue.approxLen()
}

// push enqueues msg. If the mailbox is closed, msg is abandoned immediately
// instead of being queued (queued-then-drained is only what happens to
// messages that were already present when Close ran).
func (m *Mailbox[O]) push(msg Message[O]) {
	m.pushMu.Lock()
	if m.state == mailboxClosed {
		m.pushMu.Unlock()
		msg.abandon(errors.ErrDead)
		return
	}
	m.queue.push(msg)
	sched := m.sched
	m.pushMu.Unlock()

	sched.Schedule(m.weak())
}

// Open attaches scheduler and target, transitioning holding -> open. It is
// legal to call Open again later to replace an already-open mailbox's
// Scheduler; PID and ActorThread never do this themselves, each calls Open
// exactly once, but nothing here enforces that on their behalf.
//
// Messages already queued while holding are not automatically scheduled by
// some future push, since there may never be one; Open re-requests one
// receive per message already present, preserving push order.
func (m *Mailbox[O]) Open(scheduler Scheduler, target *O) {
	if scheduler == nil {
		scheduler = NoopScheduler{}
	}
	m.pushMu.Lock()
	if m.state == mailboxClosed {
		m.pushMu.Unlock()
		return
	}
	m.target = target
	m.sched = scheduler
	m.state = mailboxOpen
	pending := m.queue.approxLen()
	m.pushMu.Unlock()

	for i := int64(0); i < pending; i++ {
		scheduler.Schedule(m.weak())
	}
}

// Close transitions the mailbox to closed, draining and abandoning any
// queued messages, and waits for any in-flight receive to finish first.
// Close is idempotent: a second call is a no-op.
func (m *Mailbox[O]) Close() {
	m.recvMu.Lock()
	defer m.recvMu.Unlock()
	m.closeLocked()
}

// closeLocked performs the state transition and drain; the caller must
// already hold recvMu. Used by the public Close and by receiveOnce's fatal
// invoke-panic path, which already holds recvMu via its caller receive.
func (m *Mailbox[O]) closeLocked() {
	m.pushMu.Lock()
	if m.state == mailboxClosed {
		m.pushMu.Unlock()
		return
	}
	m.state = mailboxClosed
	m.pushMu.Unlock()

	for _, msg := range m.queue.drainAll() {
		msg.abandon(errors.ErrCancelled)
	}
}

// receive implements the receiver interface Scheduler dispatches against.
// It pops and executes exactly one message, unless a same-goroutine
// re-entrant call is detected, in which case it defers the extra dispatch
// to the in-flight call instead of recursing (see the type doc comment).
func (m *Mailbox[O]) receive() {
	if !m.recvMu.TryLock() {
		m.deferred.Add(1)
		return
	}
	defer m.recvMu.Unlock()

	m.receiveOnce()
	for m.deferred.Load() > 0 {
		m.deferred.Add(-1)
		m.receiveOnce()
	}
}

func (m *Mailbox[O]) receiveOnce() {
	m.pushMu.Lock()
	closed := m.state == mailboxClosed
	target := m.target
	m.pushMu.Unlock()
	if closed || target == nil {
		return
	}

	msg, ok := m.queue.pop()
	if !ok {
		return
	}
	if m.onDequeue != nil {
		m.onDequeue()
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				fatal := msg.onPanic(r)
				m.logger.Errorf("actor: recovered handler panic: %v", r)
				if m.onFault != nil {
					m.onFault()
				}
				if fatal {
					m.closeLocked()
				}
			}
		}()
		msg.run(target)
	}()
}

// weak returns a WeakMailbox handle that never prolongs this mailbox's
// lifetime; it is what push/Open pass to a Scheduler.
func (m *Mailbox[O]) weak() WeakMailbox {
	return weakMailbox[O]{m: m}
}

type weakMailbox[O any] struct {
	m *Mailbox[O]
}

func (w weakMailbox[O]) upgrade() (receiver, bool) {
	w.m.pushMu.Lock()
	closed := w.m.state == mailboxClosed
	w.m.pushMu.Unlock()
	if closed {
		return nil, false
	}
	return w.m, true
}

func (w weakMailbox[O]) identity() uintptr {
	return uintptr(unsafe.Pointer(w.m))
}
