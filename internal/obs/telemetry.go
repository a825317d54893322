/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package obs

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ScopeName is the instrumentation scope of every span and instrument.
const ScopeName = "dirpx.dev/hat"

// Tracer returns the tracer of the current global provider.
func Tracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer(ScopeName)
}

var (
	wornTotal        metric.Int64Counter
	emittedTotal     metric.Int64Counter
	invocationsTotal metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics creates the instruments once. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		meter := otel.Meter(ScopeName)
		var err error

		wornTotal, err = meter.Int64Counter(
			"hat.worn",
			metric.WithDescription("Hats attached to nodes"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		emittedTotal, err = meter.Int64Counter(
			"hat.signal.emitted",
			metric.WithDescription("Signals emitted"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		invocationsTotal, err = meter.Int64Counter(
			"hat.signal.invocations",
			metric.WithDescription("Signal handlers invoked"),
		)
		if err != nil {
			metricsErr = err
		}
	})
	return metricsErr
}

// RecordWorn counts one hat attached under label.
func RecordWorn(ctx context.Context, label string) {
	if err := initMetrics(); err != nil {
		return
	}
	wornTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("hat.label", label)))
}

// RecordEmit counts one emission of signal and the handlers it reached.
func RecordEmit(ctx context.Context, signal string, invocations int) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("hat.signal", signal))
	emittedTotal.Add(ctx, 1, attrs)
	invocationsTotal.Add(ctx, int64(invocations), attrs)
}
