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

// Package main implements mailboxctl, a small CLI that demonstrates the
// spawn/register/query/shutdown lifecycle of this module end to end.
// Mailboxes and the named registry have no persisted state (spec §6), so
// every invocation builds its own ephemeral world, runs its scenario, and
// tears it down before exiting.
package main

import (
	"context"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"

	"github.com/vireline/mailbox/mailbox"
	"github.com/vireline/mailbox/message"
	"github.com/vireline/mailbox/metrics"
	"github.com/vireline/mailbox/registry"
	"github.com/vireline/mailbox/rpc"
	"github.com/vireline/mailbox/thread"
)

// meter is this process's otel meter, sourced from the global
// MeterProvider per the teacher's telemetry.go pattern. With no SDK
// configured, otel defaults to a no-op provider, so every instrument
// built from it is a no-op too: metrics are additive, never required.
var meter = otel.GetMeterProvider().Meter("github.com/vireline/mailbox")

// world is the ephemeral process-wide state one mailboxctl invocation
// builds: the directory and named registry, plus the worker threads it
// spawned, so the CLI can cleanly shut all of them down before exiting.
type world struct {
	dir     *thread.Directory
	reg     *registry.Registry
	root    *thread.ThreadContext
	workers []*thread.ThreadContext
}

func newWorld() *world {
	dir := thread.NewDirectory()
	reg := registry.New()
	return &world{dir: dir, reg: reg, root: thread.New(dir, reg)}
}

// spawnWorker starts a worker thread implementing the S1 "pow" handler
// from spec §8 (Request{method:"pow", args:"N"} -> Response{Success,
// pow(N)}), registers it under name, and returns its context.
func (w *world) spawnWorker(name string) (*thread.ThreadContext, error) {
	var opts []thread.Option
	if recorder, err := metrics.New(meter, name); err == nil {
		opts = append(opts, thread.WithRecorder(recorder))
	}

	worker := w.root.Spawn(func(child *thread.ThreadContext) {
		runWorkerLoop(child)
	}, opts...)

	if !w.reg.Register(name, worker.Tid(), worker.Mailbox()) {
		return nil, errAlreadyRegistered(name)
	}
	w.workers = append(w.workers, worker)
	return worker, nil
}

// ask locates name in the registry and issues a query, per spec §4.5.
func (w *world) ask(ctx context.Context, name, method, args string) (*message.Response, error) {
	tid, ok := w.reg.Locate(name)
	if !ok {
		return nil, errNotRegistered(name)
	}
	box, ok := w.dir.Lookup(tid)
	if !ok {
		return nil, errNotRegistered(name)
	}
	resp := rpc.Query(ctx, box, &message.Request{Method: method, Args: args})
	return resp, nil
}

// shutdownAll asks every spawned worker to stop and waits for its
// acknowledgement, then runs cleanup so names are removed from the
// registry, mirroring how a real process would tear threads down.
func (w *world) shutdownAll(ctx context.Context) {
	for _, worker := range w.workers {
		_ = rpc.Shutdown(ctx, worker.Mailbox(), worker.Tid())
		_ = worker.Cleanup(ctx)
	}
	_ = w.root.Cleanup(ctx)
}

// runWorkerLoop is the S1 handler: it answers "pow" requests and stops
// once it observes a ShutdownSignal.
func runWorkerLoop(c *thread.ThreadContext) {
	for {
		<-c.Mailbox().Notify()
		stop := false
		c.Process(func(ctx *mailbox.Context) {
			switch msg := ctx.Message().(type) {
			case *message.Request:
				ctx.Respond(handlePow(msg))
			case *mailbox.ShutdownSignal:
				ctx.Respond(message.Ok(""))
				stop = true
			case *mailbox.OwnerTerminated, *mailbox.LinkTerminated:
				ctx.Unhandled()
			}
		})
		if stop || c.Mailbox().IsClosed() {
			return
		}
	}
}

func handlePow(req *message.Request) *message.Response {
	if req.Method != "pow" {
		return message.Failure("unknown method: " + req.Method)
	}
	n, err := strconv.Atoi(strings.TrimSpace(req.Args))
	if err != nil {
		return message.Failure("pow: invalid argument " + req.Args)
	}
	return message.Ok(strconv.Itoa(n * n))
}
