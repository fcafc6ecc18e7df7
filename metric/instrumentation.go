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

// Package metric wires optional OpenTelemetry instrumentation into the
// actor runtime: mailbox depth, dispatch counts, and recovered handler
// panics, one set of counters per instrumented actor. Nothing in actor
// imports this package's OTel dependency directly; a Mailbox only ever
// sees a pair of plain func() hooks.
package metric

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"
)

// Metrics owns the OTel instruments shared by every actor instrumented
// through it. Construct one per meter, typically once per process.
type Metrics struct {
	meter           metric.Meter
	dispatchCounter metric.Int64ObservableCounter
	panicCounter    metric.Int64ObservableCounter
	mailboxGauge    metric.Int64ObservableGauge
	overHintGauge   metric.Int64ObservableGauge
}

// NewMetrics creates the instrument set against meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{meter: meter}
	var err error

	if m.dispatchCounter, err = meter.Int64ObservableCounter(
		"starling.actor.dispatched",
		metric.WithDescription("messages dispatched to an actor's handler"),
	); err != nil {
		return nil, err
	}

	if m.panicCounter, err = meter.Int64ObservableCounter(
		"starling.actor.panics",
		metric.WithDescription("handler panics recovered by an actor's mailbox"),
	); err != nil {
		return nil, err
	}

	if m.mailboxGauge, err = meter.Int64ObservableGauge(
		"starling.actor.mailbox_depth",
		metric.WithDescription("messages currently queued in an actor's mailbox"),
	); err != nil {
		return nil, err
	}

	if m.overHintGauge, err = meter.Int64ObservableGauge(
		"starling.actor.mailbox_over_hint",
		metric.WithDescription("1 when mailbox depth exceeds the actor's configured hint, 0 otherwise"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// Instrumentation is the per-actor hook set a PID feeds live values
// through. The zero value is not usable; obtain one from
// Metrics.NewInstrumentation. All methods are nil-receiver safe so a PID
// that was never instrumented can call them unconditionally.
type Instrumentation struct {
	dispatchCount *atomic.Uint64
	panicCount    *atomic.Uint64
	depthFn       func() int64
	hint          int64
	labels        []attribute.KeyValue
}

// NewInstrumentation registers a callback that reports name's counters and
// current mailbox depth (read lazily through depthFn on every collection)
// and returns the hooks to wire into that actor's mailbox. hint is the
// steady-state depth configured via config.WithMailboxHint, or 0 if none was
// set; when hint is 0 the over-hint gauge always reports 0.
func (m *Metrics) NewInstrumentation(name string, depthFn func() int64, hint int64) (*Instrumentation, error) {
	inst := &Instrumentation{
		dispatchCount: atomic.NewUint64(0),
		panicCount:    atomic.NewUint64(0),
		depthFn:       depthFn,
		hint:          hint,
		labels:        []attribute.KeyValue{attribute.String("actor.name", name)},
	}

	_, err := m.meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		depth := inst.depthFn()
		o.ObserveInt64(m.dispatchCounter, int64(inst.dispatchCount.Load()), metric.WithAttributes(inst.labels...))
		o.ObserveInt64(m.panicCounter, int64(inst.panicCount.Load()), metric.WithAttributes(inst.labels...))
		o.ObserveInt64(m.mailboxGauge, depth, metric.WithAttributes(inst.labels...))
		var overHint int64
		if inst.hint > 0 && depth > inst.hint {
			overHint = 1
		}
		o.ObserveInt64(m.overHintGauge, overHint, metric.WithAttributes(inst.labels...))
		return nil
	}, m.dispatchCounter, m.panicCounter, m.mailboxGauge, m.overHintGauge)
	if err != nil {
		return nil, err
	}

	return inst, nil
}

// OnDispatch records that one message was popped for dispatch against this
// actor, whether its handler then returns or panics. Messages abandoned
// without running are not counted.
func (i *Instrumentation) OnDispatch() {
	if i == nil {
		return
	}
	i.dispatchCount.Inc()
}

// OnFault records a recovered handler panic against this actor.
func (i *Instrumentation) OnFault() {
	if i == nil {
		return
	}
	i.panicCount.Inc()
}
