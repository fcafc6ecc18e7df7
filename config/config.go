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

// Package config provides functional-option configuration for ActorThread
// and PoolScheduler, following the Apply(config) pattern used throughout
// the wider actor-framework ecosystem's option types.
package config

import "github.com/starling-run/starling/log"

// ThreadConfig holds the configurable knobs for an ActorThread.
type ThreadConfig struct {
	Logger      log.Logger
	LowPriority bool
	MailboxHint int
}

// NewThreadConfig applies opts over sensible defaults: a discarding logger
// and low-priority OS thread pinning enabled.
func NewThreadConfig(opts ...ThreadOption) *ThreadConfig {
	cfg := &ThreadConfig{
		Logger:      log.DiscardLogger,
		LowPriority: true,
	}
	for _, opt := range opts {
		opt.Apply(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.DiscardLogger
	}
	return cfg
}

// ThreadOption configures a ThreadConfig.
type ThreadOption interface {
	Apply(cfg *ThreadConfig)
}

type threadOptionFunc func(cfg *ThreadConfig)

func (f threadOptionFunc) Apply(cfg *ThreadConfig) { f(cfg) }

// WithThreadLogger sets the logger an ActorThread reports handler panics
// and pause/resume misuse through.
func WithThreadLogger(logger log.Logger) ThreadOption {
	return threadOptionFunc(func(cfg *ThreadConfig) { cfg.Logger = logger })
}

// WithLowPriority controls whether the actor's goroutine is pinned to its
// own OS thread via runtime.LockOSThread. Defaults to true, matching a
// dedicated, low-priority worker thread. Set false to let an actor that
// does no blocking I/O share the Go scheduler's normal thread pool.
func WithLowPriority(low bool) ThreadOption {
	return threadOptionFunc(func(cfg *ThreadConfig) { cfg.LowPriority = low })
}

// WithMailboxHint records an expected steady-state mailbox depth. It is
// informational only: mailboxes are always unbounded, this is consumed
// only by metric instrumentation deciding when depth looks anomalous.
func WithMailboxHint(depth int) ThreadOption {
	return threadOptionFunc(func(cfg *ThreadConfig) { cfg.MailboxHint = depth })
}

// PoolConfig holds the configurable knobs for a PoolScheduler.
type PoolConfig struct {
	Workers int
}

// NewPoolConfig applies opts over a single-worker default.
func NewPoolConfig(opts ...PoolOption) *PoolConfig {
	cfg := &PoolConfig{Workers: 1}
	for _, opt := range opts {
		opt.Apply(cfg)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg
}

// PoolOption configures a PoolConfig.
type PoolOption interface {
	Apply(cfg *PoolConfig)
}

type poolOptionFunc func(cfg *PoolConfig)

func (f poolOptionFunc) Apply(cfg *PoolConfig) { f(cfg) }

// WithWorkers sets the number of worker goroutines a PoolScheduler starts.
func WithWorkers(n int) PoolOption {
	return poolOptionFunc(func(cfg *PoolConfig) { cfg.Workers = n })
}
