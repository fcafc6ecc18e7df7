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
	"bytes"
	"runtime"
	"strconv"
	"sync"

	"go.uber.org/multierr"

	"github.com/starling-run/starling/config"
	"github.com/starling-run/starling/errors"
	"github.com/starling-run/starling/metric"
)

// ActorThread hosts a single actor of object type O on a dedicated
// goroutine, by default pinned to its own OS thread (via
// runtime.LockOSThread, giving it the thread-affinity guarantee the source
// gets from a real OS thread; see config.WithLowPriority), running its own
// RunLoop. Building an actor with an ActorThread instead of
// Spawn/New is how a caller opts an actor into having a real execution
// context of its own rather than sharing a pool worker.
type ActorThread[O any] struct {
	name string
	pid  *PID[O]
	loop *RunLoop
	cfg  *config.ThreadConfig

	running chan struct{}
	goDone  chan struct{}

	ownerGID int64

	mu       sync.Mutex
	paused   bool
	resumeCh chan struct{}
}

// NewThread launches the goroutine, builds O on it via ctor, and blocks
// until construction completes; NewThread only returns once it is safe to
// call Actor() and start sending messages. The goroutine that calls
// NewThread becomes the thread's owner for the purposes of Pause and
// Resume.
func NewThread[O any](name string, ctor func(ActorRef[O]) O, opts ...config.ThreadOption) *ActorThread[O] {
	cfg := config.NewThreadConfig(opts...)
	t := &ActorThread[O]{
		name:     name,
		pid:      New[O](cfg.Logger),
		loop:     newRunLoop(),
		cfg:      cfg,
		running:  make(chan struct{}),
		goDone:   make(chan struct{}),
		ownerGID: goroutineID(),
	}
	go t.run(ctor)
	<-t.running
	return t
}

func (t *ActorThread[O]) run(ctor func(ActorRef[O]) O) {
	defer close(t.goDone)
	if t.cfg.LowPriority {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}

	_ = t.pid.ActivateWithSelf(t.loop, ctor)
	t.cfg.Logger.Infof("actor: thread %q started", t.name)
	close(t.running)
	t.loop.run()
}

// Name returns the name this thread was created with, used only for
// logging and metrics labels.
func (t *ActorThread[O]) Name() string {
	return t.name
}

// Actor returns a ref to the hosted actor. Safe to call from any goroutine,
// safe to copy, and safe to keep using after Close.
func (t *ActorThread[O]) Actor() ActorRef[O] {
	return t.pid.Self()
}

// Instrument registers this thread's hosted actor against metrics under
// name, using the thread's configured MailboxHint (see config.WithMailboxHint)
// as the over-hint gauge's threshold; see PID.Instrument.
func (t *ActorThread[O]) Instrument(metrics *metric.Metrics, name string) error {
	return t.pid.Instrument(metrics, name, int64(t.cfg.MailboxHint))
}

// Pause prevents the hosted actor from processing any further messages
// until Resume is called. Messages sent while paused are queued, not
// dropped. Must be called from the same goroutine that called NewThread;
// any other caller gets ErrNotOwnerGoroutine.
func (t *ActorThread[O]) Pause() error {
	if goroutineID() != t.ownerGID {
		t.cfg.Logger.Warnf("actor: Pause called on thread %q from a non-owner goroutine", t.name)
		return errors.ErrNotOwnerGoroutine
	}
	t.mu.Lock()
	if t.paused {
		t.mu.Unlock()
		return errors.ErrAlreadyPaused
	}
	resumeCh := make(chan struct{})
	t.paused = true
	t.resumeCh = resumeCh
	t.mu.Unlock()

	<-t.running
	pausedCh := make(chan struct{})
	t.loop.invoke(priorityHigh, func() {
		close(pausedCh)
		<-resumeCh
	})
	<-pausedCh
	return nil
}

// Resume undoes a prior Pause, letting the loop drain whatever queued up in
// the meantime. Must be called from the same goroutine that called
// NewThread; any other caller gets ErrNotOwnerGoroutine.
func (t *ActorThread[O]) Resume() error {
	if goroutineID() != t.ownerGID {
		t.cfg.Logger.Warnf("actor: Resume called on thread %q from a non-owner goroutine", t.name)
		return errors.ErrNotOwnerGoroutine
	}
	t.mu.Lock()
	if !t.paused {
		t.mu.Unlock()
		return errors.ErrNotPaused
	}
	resumeCh := t.resumeCh
	t.paused = false
	t.resumeCh = nil
	t.mu.Unlock()

	close(resumeCh)
	return nil
}

// Close resumes the thread if it was paused, waits for the hosted actor's
// object to be torn down on its own loop (so Close never races a handler
// still running there), stops the loop, and waits for its goroutine to
// exit. Close blocks until the goroutine has fully exited. Any error
// flushing the thread's logger is combined with a teardown panic, if one
// occurred, instead of either silently replacing the other.
func (t *ActorThread[O]) Close() error {
	t.mu.Lock()
	if t.paused {
		resumeCh := t.resumeCh
		t.paused = false
		t.resumeCh = nil
		t.mu.Unlock()
		close(resumeCh)
	} else {
		t.mu.Unlock()
	}

	<-t.running

	var teardownErr error
	joinable := make(chan struct{})
	t.loop.invoke(priorityNormal, func() {
		defer func() {
			if r := recover(); r != nil {
				teardownErr = errors.NewHandlerPanicError(r)
			}
			close(joinable)
		}()
		t.pid.Close()
	})
	<-joinable

	t.loop.stopLoop()
	<-t.goDone
	t.cfg.Logger.Infof("actor: thread %q stopped", t.name)

	return multierr.Combine(teardownErr, t.cfg.Logger.Flush())
}

// goroutineID extracts the calling goroutine's numeric ID from its stack
// trace header. There is no supported API for this; it exists solely to
// give Pause/Resume the same single-owner-thread misuse check the source
// gets for free from std::thread::id, and is never used for anything that
// affects correctness of message delivery itself.
func goroutineID() int64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = bytes.TrimPrefix(buf[:n], []byte("goroutine "))
	if idx := bytes.IndexByte(buf, ' '); idx > 0 {
		if id, err := strconv.ParseInt(string(buf[:idx]), 10, 64); err == nil {
			return id
		}
	}
	return -1
}
