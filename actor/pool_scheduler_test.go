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

package actor_test

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/starling-run/starling/actor"
	"github.com/starling-run/starling/config"
)

// currentGoroutineID identifies the calling goroutine, used only to verify
// that a pinned actor's dispatches always land on the same pool worker.
func currentGoroutineID() int64 {
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

// pinnedCounter records which goroutine (by goroutine ID, in a set)
// serviced each increment, letting the test verify a single actor is always
// serviced by the same pool worker.
type pinnedCounter struct {
	mu   sync.Mutex
	n    int
	gids map[int64]struct{}
}

func (p *pinnedCounter) incr(gid int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.n++
	if p.gids == nil {
		p.gids = map[int64]struct{}{}
	}
	p.gids[gid] = struct{}{}
}

func TestPoolSchedulerPinsActorToSingleWorker(t *testing.T) {
	pool := actor.NewPoolScheduler(config.WithWorkers(4))
	defer pool.Close()

	pid := actor.Spawn[pinnedCounter](pool, nil, func() pinnedCounter { return pinnedCounter{} })
	defer pid.Close()

	ref := pid.Self()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref.Invoke(func(c *pinnedCounter) { c.incr(currentGoroutineID()) })
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		got, err := actor.Ask(ref, func(c *pinnedCounter) (int, error) {
			c.mu.Lock()
			defer c.mu.Unlock()
			return c.n, nil
		}).Await(context.Background())
		return err == nil && got == 100
	}, time.Second, 5*time.Millisecond)

	got, err := actor.Ask(ref, func(c *pinnedCounter) (int, error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		return len(c.gids), nil
	}).Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, got, "all dispatches for one actor must land on the same pool worker goroutine")
}

func TestPoolSchedulerServesMultipleActorsConcurrently(t *testing.T) {
	pool := actor.NewPoolScheduler(config.WithWorkers(4))
	defer pool.Close()

	const n = 8
	pids := make([]*actor.PID[counter], n)
	for i := range pids {
		pids[i] = actor.Spawn[counter](pool, nil, func() counter { return counter{} })
	}
	defer func() {
		for _, p := range pids {
			p.Close()
		}
	}()

	for _, p := range pids {
		ref := p.Self()
		for i := 0; i < 10; i++ {
			ref.Invoke(func(c *counter) { c.incr() })
		}
	}

	for _, p := range pids {
		ref := p.Self()
		require.Eventually(t, func() bool {
			got, err := actor.Ask(ref, func(c *counter) (int, error) { return c.get() }).Await(context.Background())
			return err == nil && got == 10
		}, time.Second, 5*time.Millisecond)
	}
}
