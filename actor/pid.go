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
	"go.uber.org/atomic"

	"github.com/google/uuid"

	"github.com/starling-run/starling/errors"
	"github.com/starling-run/starling/log"
	"github.com/starling-run/starling/metric"
)

// PID is an owning handle to an asynchronous object of type O: an actor.
// The name PID, matching the vocabulary the wider actor-framework ecosystem
// uses for an actor's address, avoids colliding with an Actor interface
// name a domain type might want to implement.
//
// PID owns: stable storage for O, the mailbox's strong handle, and an
// initialized flag. O exists if and only if initialized is true. The
// mailbox is always closed before O is torn down, and Close never returns
// while a handler is still running for this actor (both guaranteed by
// Mailbox.Close synchronizing with Mailbox.receive).
type PID[O any] struct {
	id          uuid.UUID
	mailbox     *Mailbox[O]
	obj         *O
	initialized atomic.Bool
	logger      log.Logger
}

func newPID[O any](logger log.Logger) *PID[O] {
	if logger == nil {
		logger = log.DiscardLogger
	}
	mailbox := NewMailbox[O]()
	mailbox.SetLogger(logger)
	return &PID[O]{
		id:      uuid.New(),
		mailbox: mailbox,
		obj:     new(O),
		logger:  logger,
	}
}

// Spawn constructs a single-phase actor: O is built synchronously by ctor
// and the mailbox is opened against scheduler before Spawn returns. Any
// messages ctor causes O to send to itself (via SpawnWithSelf) are queued
// during construction and dispatched only after ctor returns, once the
// mailbox is opened.
func Spawn[O any](scheduler Scheduler, logger log.Logger, ctor func() O) *PID[O] {
	p := newPID[O](logger)
	*p.obj = ctor()
	p.initialized.Store(true)
	p.mailbox.Open(scheduler, p.obj)
	return p
}

// SpawnWithSelf is Spawn for object types whose constructor wants its own
// ActorRef, e.g. to hand copies of itself to other actors or to self-send.
// The self ref is valid for the whole of ctor: the mailbox is still holding
// while ctor runs, so any messages sent to it are simply queued.
func SpawnWithSelf[O any](scheduler Scheduler, logger log.Logger, ctor func(ActorRef[O]) O) *PID[O] {
	p := newPID[O](logger)
	self := newActorRef(p.mailbox)
	*p.obj = ctor(self)
	p.initialized.Store(true)
	p.mailbox.Open(scheduler, p.obj)
	return p
}

// New constructs a two-phase PID: only the mailbox exists (holding), O is
// not built yet. Refs handed out via Self before Activate runs are valid;
// messages sent through them accumulate in the holding mailbox and are
// processed, in push order, only after Activate.
func New[O any](logger log.Logger) *PID[O] {
	return newPID[O](logger)
}

// Activate builds O by calling ctor and opens the mailbox against
// scheduler. It is expected to run on whatever goroutine will own the
// actor's execution context and may be called at most once; a second call
// returns ErrAlreadyActivated.
func (p *PID[O]) Activate(scheduler Scheduler, ctor func() O) error {
	if !p.initialized.CAS(false, true) {
		return errors.ErrAlreadyActivated
	}
	*p.obj = ctor()
	p.mailbox.Open(scheduler, p.obj)
	return nil
}

// ActivateWithSelf is Activate for a constructor that wants its own
// ActorRef, obtainable safely because the mailbox already exists.
func (p *PID[O]) ActivateWithSelf(scheduler Scheduler, ctor func(ActorRef[O]) O) error {
	if !p.initialized.CAS(false, true) {
		return errors.ErrAlreadyActivated
	}
	*p.obj = ctor(p.Self())
	p.mailbox.Open(scheduler, p.obj)
	return nil
}

// Self returns an ActorRef addressing this actor. Safe to call before
// Activate; safe to copy and send to other actors; never extends this
// PID's lifetime.
func (p *PID[O]) Self() ActorRef[O] {
	return newActorRef(p.mailbox)
}

// ID returns the actor's identity, used only for logging and metrics
// labels — never for addressing, which stays entirely through ActorRef.
func (p *PID[O]) ID() string {
	return p.id.String()
}

// Invoke pushes fn as a fire-and-forget message directly against this
// actor's own mailbox, equivalent to p.Self().Invoke(fn) but without the
// dead-actor check, matching the source's Actor<O>::invoke which assumes
// the caller holding a live *PID by definition addresses a live actor.
func (p *PID[O]) Invoke(fn func(*O)) {
	p.mailbox.push(&invokeMessage[O]{fn: fn})
}

// Close tears the actor down: it closes the mailbox (which blocks until any
// in-flight receive finishes and drains/abandons whatever was still
// queued), then releases O if it was ever constructed. Close is idempotent.
func (p *PID[O]) Close() {
	p.mailbox.Close()
	if p.initialized.Load() {
		var zero O
		*p.obj = zero
	}
}

// Mailbox exposes the underlying mailbox for callers that need to observe
// its depth (e.g. the metric package) without being able to push or close
// it directly.
func (p *PID[O]) Mailbox() *Mailbox[O] {
	return p.mailbox
}

// Instrument registers this actor's dispatch count, panic count, and
// mailbox depth against metrics under name, with the over-hint gauge
// derived from hint (0 disables it). Safe to call at most once per PID; a
// second call replaces the mailbox's hooks with a new registration rather
// than combining the two.
func (p *PID[O]) Instrument(metrics *metric.Metrics, name string, hint int64) error {
	inst, err := metrics.NewInstrumentation(name, p.mailbox.Len, hint)
	if err != nil {
		return err
	}
	p.mailbox.setInstrumentation(inst.OnDispatch, inst.OnFault)
	return nil
}
