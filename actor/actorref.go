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
	"github.com/starling-run/starling/errors"
	"github.com/starling-run/starling/future"
)

// ActorRef is a weak, copyable, concurrency-safe handle for sending
// messages to an actor of object type O. It never extends the lifetime of
// the actor it addresses: once the actor is destroyed, every operation on
// a copy of its ActorRef becomes a no-op (Invoke) or completes with
// errors.ErrDead (Ask), no matter how many copies are outstanding or how
// long they are held.
//
// ActorRef exposes no identity or equality; two refs to the same actor are
// not required to compare equal.
type ActorRef[O any] struct {
	mailbox *Mailbox[O]
}

// newActorRef wraps mailbox. Unexported: the only way to obtain an
// ActorRef is from a PID via Self, or from inside O's own constructor when
// spawned with SpawnWithSelf/ActivateWithSelf.
func newActorRef[O any](mailbox *Mailbox[O]) ActorRef[O] {
	return ActorRef[O]{mailbox: mailbox}
}

// IsZero reports whether r was never assigned a target (the zero value of
// ActorRef[O]). A zero ActorRef behaves exactly like a ref to a dead actor.
func (r ActorRef[O]) IsZero() bool {
	return r.mailbox == nil
}

// Invoke packages fn as a fire-and-forget message and pushes it onto the
// target's mailbox. If the actor is already dead, this is a silent no-op.
func (r ActorRef[O]) Invoke(fn func(*O)) {
	if r.mailbox == nil {
		return
	}
	r.mailbox.push(&invokeMessage[O]{fn: fn})
}

// Ask packages fn as a request/response message and returns a Future that
// completes with fn's return value once it has run, or with an error if
// the actor was already dead, the mailbox closed before fn ran, or fn's
// handler panicked.
//
// Ask cannot be a method on ActorRef[O]: Go does not allow a method to
// introduce type parameters beyond its receiver's, and the response type R
// is independent of O. It is a package-level generic function instead.
func Ask[O, R any](r ActorRef[O], fn func(*O) (R, error)) *future.Future[R] {
	fut := future.New[R]()
	if r.mailbox == nil {
		var zero R
		fut.Complete(zero, errors.ErrDead)
		return fut
	}
	r.mailbox.push(&askMessage[O, R]{fn: fn, fut: fut})
	return fut
}
