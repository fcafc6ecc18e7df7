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

// runLoopPriority mirrors util::RunLoop::Priority from the source: two
// levels, high always drained ahead of normal. The only user of the high
// level is ActorThread's pause/resume synchronization; ordinary message
// dispatch is always normal priority.
type runLoopPriority int

const (
	priorityNormal runLoopPriority = iota
	priorityHigh
)

type runLoopTask func()

// RunLoop is a single-goroutine event loop: every task it ever runs,
// dispatch included, executes on the goroutine that calls run. It
// implements Scheduler so a Mailbox can be opened directly against it.
type RunLoop struct {
	normal chan runLoopTask
	high   chan runLoopTask
	stop   chan struct{}
}

func newRunLoop() *RunLoop {
	return &RunLoop{
		normal: make(chan runLoopTask, 256),
		high:   make(chan runLoopTask, 16),
		stop:   make(chan struct{}),
	}
}

// Schedule implements Scheduler: it enqueues a normal-priority task that
// upgrades weak and, if the mailbox is still live, runs one receive.
func (l *RunLoop) Schedule(weak WeakMailbox) {
	l.enqueue(priorityNormal, func() {
		if r, ok := weak.upgrade(); ok {
			r.receive()
		}
	})
}

// invoke queues an arbitrary task at the given priority, used internally by
// ActorThread to synchronize pause/resume and to sequence teardown against
// in-flight dispatch.
func (l *RunLoop) invoke(p runLoopPriority, task runLoopTask) {
	l.enqueue(p, task)
}

func (l *RunLoop) enqueue(p runLoopPriority, task runLoopTask) {
	ch := l.normal
	if p == priorityHigh {
		ch = l.high
	}
	select {
	case ch <- task:
	case <-l.stop:
	}
}

// run drains high-priority tasks ahead of normal ones until stopLoop is
// called. It returns once stopped; nothing queued after that point runs.
func (l *RunLoop) run() {
	for {
		select {
		case t := <-l.high:
			t()
			continue
		default:
		}

		select {
		case t := <-l.high:
			t()
		case t := <-l.normal:
			t()
		case <-l.stop:
			return
		}
	}
}

// stopLoop signals run to return once it next reaches its select. Callers
// must ensure no further Schedule/invoke calls are relied upon after this;
// enqueue silently drops tasks submitted after stopLoop.
func (l *RunLoop) stopLoop() {
	close(l.stop)
}
