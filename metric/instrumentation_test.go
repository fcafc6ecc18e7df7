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

package metric_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/starling-run/starling/metric"
)

// collect runs reader's Collect and returns, for each instrument name, its
// last observed int64 data point value.
func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	values := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					values[m.Name] = dp.Value
				}
			case metricdata.Gauge[int64]:
				for _, dp := range data.DataPoints {
					values[m.Name] = dp.Value
				}
			}
		}
	}
	return values
}

func TestInstrumentationReportsDispatchAndFaultCounts(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := metric.NewMetrics(provider.Meter("starling-test"))
	require.NoError(t, err)

	depth := int64(0)
	inst, err := metrics.NewInstrumentation("worker-1", func() int64 { return depth }, 10)
	require.NoError(t, err)

	inst.OnDispatch()
	inst.OnDispatch()
	inst.OnFault()
	depth = 3

	values := collect(t, reader)
	require.EqualValues(t, 2, values["starling.actor.dispatched"])
	require.EqualValues(t, 1, values["starling.actor.panics"])
	require.EqualValues(t, 3, values["starling.actor.mailbox_depth"])
	require.EqualValues(t, 0, values["starling.actor.mailbox_over_hint"])
}

func TestInstrumentationOverHintGauge(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := metric.NewMetrics(provider.Meter("starling-test"))
	require.NoError(t, err)

	depth := int64(50)
	_, err = metrics.NewInstrumentation("worker-2", func() int64 { return depth }, 10)
	require.NoError(t, err)

	values := collect(t, reader)
	require.EqualValues(t, 50, values["starling.actor.mailbox_depth"])
	require.EqualValues(t, 1, values["starling.actor.mailbox_over_hint"])
}

func TestInstrumentationNilSafe(t *testing.T) {
	var inst *metric.Instrumentation
	require.NotPanics(t, func() {
		inst.OnDispatch()
		inst.OnFault()
	})
}
