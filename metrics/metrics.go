/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package metrics exposes optional otel instrumentation for a mailbox:
// queue depth as an observable gauge, and throughput/latency as
// counters and a histogram recorded from Process. Nothing in this
// module requires metrics to be wired up; a mailbox with no Recorder
// attached records nothing.
package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	mailboxDepthGaugeName       = "mailbox.depth"
	deliveredCounterName        = "mailbox.delivered"
	processingDurationHistogram = "mailbox.processing.duration"
)

// DepthFunc reports the current number of envelopes a mailbox has queued.
// Recorder polls it from an otel observable callback rather than holding
// a reference to the mailbox itself, keeping this package decoupled from
// package mailbox.
type DepthFunc func() int

// Recorder holds the instruments for one mailbox's metrics. Construct it
// with New and keep it alive for the mailbox's lifetime; RegisterCallback
// wires the gauge to depth.
type Recorder struct {
	meter     metric.Meter
	depth     metric.Int64ObservableGauge
	delivered metric.Int64Counter
	latency   metric.Float64Histogram
	attrs     metric.MeasurementOption
}

// New creates the instruments for one mailbox, tagged by threadID for
// correlation across a process with many threads.
func New(meter metric.Meter, threadID string) (*Recorder, error) {
	depth, err := meter.Int64ObservableGauge(
		mailboxDepthGaugeName,
		metric.WithDescription("Number of envelopes currently queued in a mailbox"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mailbox depth instrument: %w", err)
	}

	delivered, err := meter.Int64Counter(
		deliveredCounterName,
		metric.WithDescription("Total number of envelopes delivered to a mailbox's handler"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create delivered count instrument: %w", err)
	}

	latency, err := meter.Float64Histogram(
		processingDurationHistogram,
		metric.WithDescription("Time spent inside a handler invocation"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create processing latency instrument: %w", err)
	}

	return &Recorder{
		meter:     meter,
		depth:     depth,
		delivered: delivered,
		latency:   latency,
		attrs:     metric.WithAttributes(attribute.String("mailbox.thread_id", threadID)),
	}, nil
}

// RegisterCallback wires depth so the meter polls it on its own schedule,
// using the meter this Recorder was constructed with.
func (r *Recorder) RegisterCallback(depth DepthFunc) error {
	_, err := r.meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		observer.ObserveInt64(r.depth, int64(depth()), r.attrs)
		return nil
	}, r.depth)
	return err
}

// RecordDelivery increments the delivered counter and records how long
// the handler invocation took.
func (r *Recorder) RecordDelivery(ctx context.Context, took time.Duration) {
	r.delivered.Add(ctx, 1, r.attrs)
	r.latency.Record(ctx, float64(took.Microseconds())/1000.0, r.attrs)
}
