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

// Package rpc implements the Request/Response protocol that sits on top
// of a mailbox: Query stamps and submits a Request and unwraps the
// Response; Shutdown is the synchronous control-message shorthand and Send
// the fire-and-forget value shorthand described in spec §4.5 and §6.
package rpc

import (
	"context"
	"time"

	"github.com/vireline/mailbox/identity"
	"github.com/vireline/mailbox/log"
	"github.com/vireline/mailbox/mailbox"
	"github.com/vireline/mailbox/message"
)

// Clock abstracts the source of "now" used to stamp a Request's
// request_time, so tests can inject a fixed time instead of depending on
// the wall clock.
type Clock func() time.Time

// defaultClock is time.Now, used whenever a caller does not supply one.
func defaultClock() time.Time { return time.Now() }

// Target is anything a Request can be submitted to: in practice a
// *mailbox.Mailbox, narrowed to the one method rpc needs.
type Target interface {
	Submit(ctx context.Context, msg *message.Message, expectReply bool) (*message.Message, error)
}

// config holds this package's construction-time options, applied by
// Query, Shutdown, and Send. Unset fields fall back to a no-op logger
// and the wall clock, so calling any of these functions with no options
// at all is the common case.
type config struct {
	clock Clock
	log   log.Logger
}

func newConfig() *config {
	return &config{clock: defaultClock, log: log.DiscardLogger}
}

// Option is the interface that applies a configuration option, mirroring
// the teacher's actor/option.go idiom.
type Option interface {
	Apply(cfg *config)
}

// OptionFunc implements the Option interface.
type OptionFunc func(*config)

func (f OptionFunc) Apply(cfg *config) { f(cfg) }

// WithClock overrides the source of "now" used to stamp a Request's
// request_time. Tests use this to inject a fixed time.
func WithClock(clock Clock) Option {
	return OptionFunc(func(cfg *config) { cfg.clock = clock })
}

// WithLogger attaches a logger used to report failed submissions. The
// default is a no-op logger.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(cfg *config) {
		if logger == nil {
			logger = log.DiscardLogger
		}
		cfg.log = logger
	})
}

func applyOptions(opts []Option) *config {
	cfg := newConfig()
	for _, opt := range opts {
		opt.Apply(cfg)
	}
	return cfg
}

// Query stamps req.RequestTime with the configured clock (time.Now by
// default), submits it to target, and unwraps the Response. Any failure
// to submit or to extract a Response from the reply (closed mailbox,
// malformed reply) collapses to Response{Failed, ""} per spec §4.5, and
// is logged at Warn.
func Query(ctx context.Context, target Target, req *message.Request, opts ...Option) *message.Response {
	cfg := applyOptions(opts)
	req.RequestTime = cfg.clock()

	reply, err := target.Submit(ctx, message.NewStandard(req), true)
	if err != nil {
		cfg.log.Warnf("query %q from %s failed: %v", req.Method, req.Sender, err)
		return message.Failure("")
	}
	resp, ok := reply.AsResponse()
	if !ok {
		cfg.log.Warnf("query %q from %s: reply carried no Response", req.Method, req.Sender)
		return message.Failure("")
	}
	return resp
}

// Shutdown submits a Shutdown control message naming target and waits
// for the processor's acknowledgement. Per spec §4.5 the handler is
// responsible for stopping its own processing loop after observing the
// signal; Shutdown itself only delivers the notice and returns once
// acknowledged. A failed submission is logged at Warn.
func Shutdown(ctx context.Context, target Target, id identity.ThreadId, opts ...Option) error {
	cfg := applyOptions(opts)
	_, err := target.Submit(ctx, message.NewShutdown(id), true)
	if err != nil {
		cfg.log.Warnf("shutdown of %s failed: %v", id, err)
	}
	return err
}

// Send is the fire-and-forget shorthand of spec §6: submit an arbitrary
// Standard value without waiting for a reply.
func Send(ctx context.Context, target Target, value any, opts ...Option) error {
	cfg := applyOptions(opts)
	_, err := target.Submit(ctx, message.NewStandard(value), false)
	if err != nil {
		cfg.log.Warnf("send failed: %v", err)
	}
	return err
}

// Process drives target's mailbox through exactly one drain pass with
// handle, per spec §4.5's "processor loop calls process(handler)". It is
// a thin pass-through kept in this package so callers that only import
// rpc (and not mailbox directly) still have the full protocol surface of
// spec §6 available.
func Process(links mailbox.Links, box *mailbox.Mailbox, handle mailbox.Handler) int {
	return box.Process(links, handle)
}
