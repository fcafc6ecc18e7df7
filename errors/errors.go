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

// Package errors collects the sentinel errors observable by callers of the
// actor runtime. All values here are matched with the standard library's
// errors.Is; the sentinels carry no payload beyond their message, and
// HandlerPanicError additionally carries the recovered panic value.
package errors

import "errors"

var (
	// ErrDead is returned by Ask, and is the reason silently applied to
	// Invoke, when a message is pushed against a mailbox that has already
	// finished closing. A zero ActorRef behaves the same way.
	ErrDead = errors.New("actor: dead actor")

	// ErrCancelled is the reason a message already queued at the moment
	// Mailbox.Close runs is abandoned with, as opposed to ErrDead for a
	// message pushed after close has already completed. Ask callers that
	// don't care about the distinction can match either with errors.Is
	// against the two sentinels directly; nothing wraps one in the other.
	ErrCancelled = errors.New("actor: message cancelled by mailbox close")

	// ErrAlreadyActivated is returned by PID.Activate when called more than
	// once on a two-phase actor.
	ErrAlreadyActivated = errors.New("actor: already activated")

	// ErrAlreadyPaused is returned by ActorThread.Pause when the thread is
	// already paused.
	ErrAlreadyPaused = errors.New("actor: thread already paused")

	// ErrNotPaused is returned by ActorThread.Resume when the thread was
	// not paused.
	ErrNotPaused = errors.New("actor: thread not paused")

	// ErrNotOwnerGoroutine is returned by ActorThread.Pause and .Resume
	// when called from a goroutine other than the one that called
	// NewThread.
	ErrNotOwnerGoroutine = errors.New("actor: pause/resume called from a non-owner goroutine")

	// ErrHandlerPanic wraps a recovered panic from a message handler. It is
	// the error an Ask completion token carries when the handler it invoked
	// panicked instead of returning; errors.Is(err, ErrHandlerPanic) reports
	// true for such errors because *HandlerPanicError unwraps to it, and
	// errors.As with *HandlerPanicError recovers the panic value.
	ErrHandlerPanic = errors.New("actor: handler panic")
)

// HandlerPanicError wraps a value recovered from a panicking message
// handler, preserving it for logging without exposing the raw recover()
// value type to callers.
type HandlerPanicError struct {
	Recovered any
}

func (e *HandlerPanicError) Error() string {
	return ErrHandlerPanic.Error()
}

func (e *HandlerPanicError) Unwrap() error {
	return ErrHandlerPanic
}

// NewHandlerPanicError wraps a recovered panic value.
func NewHandlerPanicError(recovered any) *HandlerPanicError {
	return &HandlerPanicError{Recovered: recovered}
}
