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

import "sync/atomic"

// msgNode is a node in the lock-free MPSC queue backing every Mailbox:
// multiple producers may swap the tail concurrently, while pop is only ever
// called by the goroutine holding the mailbox's receive lock.
type msgNode[O any] struct {
	next atomic.Pointer[msgNode[O]]
	msg  Message[O]
}

// msgQueue is an unbounded, multi-producer single-consumer FIFO queue of
// messages. It never blocks: push always succeeds, pop returns false when
// empty. It carries no notion of open/closed; that lifecycle lives in
// Mailbox.
type msgQueue[O any] struct {
	head atomic.Pointer[msgNode[O]] // consumer-owned
	tail atomic.Pointer[msgNode[O]] // producer-owned
	size atomic.Int64
}

func newMsgQueue[O any]() *msgQueue[O] {
	dummy := &msgNode[O]{}
	q := &msgQueue[O]{}
	q.head.Store(dummy)
	q.tail.Store(dummy)
	return q
}

// push appends msg to the tail. Safe for concurrent callers.
func (q *msgQueue[O]) push(msg Message[O]) {
	n := &msgNode[O]{msg: msg}
	prev := q.tail.Swap(n)
	prev.next.Store(n)
	q.size.Add(1)
}

// pop removes and returns the message at the head, or false if empty. Must
// only be called by the single goroutine currently holding the receive
// lock for this queue's mailbox.
func (q *msgQueue[O]) pop() (Message[O], bool) {
	head := q.head.Load()
	next := head.next.Load()
	if next == nil {
		return nil, false
	}
	q.head.Store(next)
	msg := next.msg
	next.msg = nil
	q.size.Add(-1)
	return msg, true
}

// drainAll pops every currently visible message, in FIFO order. Used by
// Mailbox.Close.
func (q *msgQueue[O]) drainAll() []Message[O] {
	var drained []Message[O]
	for {
		msg, ok := q.pop()
		if !ok {
			return drained
		}
		drained = append(drained, msg)
	}
}

// approxLen returns a best-effort count of queued messages, exact only when
// there is no concurrent pop in flight (true while the mailbox is holding,
// which is the only place Mailbox relies on this being exact).
func (q *msgQueue[O]) approxLen() int64 {
	return q.size.Load()
}
