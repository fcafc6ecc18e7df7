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

// Message is an opaque, one-shot invocation of a method against a target
// object of type O. It is created by Invoke or Ask and consumed exactly
// once by Mailbox.receive.
//
// A closure owning its captured arguments stands in for the
// method-pointer-plus-arguments shape a non-generic language would use
// here, taking the target by pointer only at execution time.
type Message[O any] interface {
	// run invokes the message against target. Called at most once, only
	// while target is guaranteed live by the owning Mailbox.
	run(target *O)
	// abandon completes any waiting response with err instead of running.
	// Called when a message is dropped without having run: drained by
	// Mailbox.Close, or pushed after the mailbox has closed.
	abandon(err error)
	// onPanic is called by Mailbox.receive after run, when the handler
	// panicked instead of returning normally and the panic was recovered. It
	// reports whether the panic should be treated as fatal to the owning
	// actor (true for invoke; ask delivers the failure to its caller
	// instead and the actor survives).
	onPanic(recovered any) (fatal bool)
}

// invokeMessage is the fire-and-forget shape. A panicking invoke handler
// has no caller to report the failure to, so Mailbox.receive treats it as
// fatal to the actor: the panic is logged and the actor's mailbox is
// closed, rather than crashing the process.
type invokeMessage[O any] struct {
	fn func(*O)
}

func (m *invokeMessage[O]) run(target *O) {
	m.fn(target)
}

func (m *invokeMessage[O]) abandon(error) {}

func (m *invokeMessage[O]) onPanic(any) bool {
	return true
}

// askMessage is the request/response shape: its return value or failure is
// delivered through fut instead of being observable by the mailbox.
type askMessage[O, R any] struct {
	fn  func(*O) (R, error)
	fut *future.Future[R]
}

func (m *askMessage[O, R]) run(target *O) {
	val, err := m.fn(target)
	m.fut.Complete(val, err)
}

func (m *askMessage[O, R]) abandon(err error) {
	var zero R
	m.fut.Complete(zero, err)
}

func (m *askMessage[O, R]) onPanic(recovered any) bool {
	var zero R
	m.fut.Complete(zero, panicError(recovered))
	return false
}

// panicError turns a recovered value into an error, wrapping it so callers
// can match it with errors.As against *errors.HandlerPanicError.
func panicError(recovered any) error {
	return errors.NewHandlerPanicError(recovered)
}
