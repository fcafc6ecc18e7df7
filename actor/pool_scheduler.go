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
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/starling-run/starling/config"
)

// PoolScheduler is a fixed-size worker pool Scheduler: every mailbox is
// pinned, for its whole lifetime, to exactly one worker goroutine chosen by
// hashing its identity. Pinning rather than work-stealing keeps per-mailbox
// FIFO ordering trivially true (a single worker's channel is itself FIFO)
// without needing a lock per mailbox, at the cost of the usual head-of-line
// risk if one actor's handler runs long.
//
// Unlike ActorThread, workers here are anonymous: no actor gets a thread of
// its own, an OS-level identity, or the ability to be Paused.
type PoolScheduler struct {
	workers []*poolWorker
}

type poolWorker struct {
	tasks chan WeakMailbox
}

// NewPoolScheduler starts the configured number of worker goroutines,
// defaulting to one.
func NewPoolScheduler(opts ...config.PoolOption) *PoolScheduler {
	cfg := config.NewPoolConfig(opts...)
	p := &PoolScheduler{workers: make([]*poolWorker, cfg.Workers)}
	for i := range p.workers {
		w := &poolWorker{tasks: make(chan WeakMailbox, 1024)}
		p.workers[i] = w
		go w.run()
	}
	return p
}

func (w *poolWorker) run() {
	for weak := range w.tasks {
		if r, ok := weak.upgrade(); ok {
			r.receive()
		}
	}
}

// Schedule implements Scheduler, routing weak to the worker its identity
// hashes to.
func (p *PoolScheduler) Schedule(weak WeakMailbox) {
	p.workers[p.workerIndex(weak)].tasks <- weak
}

func (p *PoolScheduler) workerIndex(weak WeakMailbox) int {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(weak.identity()))
	h := xxhash.Sum64(buf[:])
	return int(h % uint64(len(p.workers)))
}

// Close stops every worker goroutine. It does not wait for them: each
// worker still dispatches the tasks already queued on its channel, then
// exits. A Schedule call after Close panics (send on a closed channel), so
// Close is for orderly shutdown after callers have stopped scheduling new
// work, not a way to cancel in-flight dispatch.
func (p *PoolScheduler) Close() {
	for _, w := range p.workers {
		close(w.tasks)
	}
}
