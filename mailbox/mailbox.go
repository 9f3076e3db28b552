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

// Package mailbox implements the FIFO message queue that backs every
// thread: a bounded-concurrency inbox that a single processor goroutine
// drains with Process, and that any number of senders push into with
// Submit.
package mailbox

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/vireline/mailbox/identity"
	"github.com/vireline/mailbox/log"
	"github.com/vireline/mailbox/message"
	"github.com/vireline/mailbox/metrics"
)

// PendingSend is a sender's seat in the queue: the envelope it submitted,
// and the one-slot channel its reply (if any) arrives on. It is exported
// only so Context can hold a reference; callers never construct one
// directly.
type PendingSend struct {
	msg  *message.Message
	done chan *message.Message
}

// Mailbox is the FIFO inbox owned by exactly one thread. All exported
// methods are safe for concurrent use: any number of goroutines may call
// Submit while at most one goroutine drives Process.
type Mailbox struct {
	id identity.ThreadId

	mu     sync.Mutex
	queue  []*PendingSend
	closed bool
	signal chan struct{}

	delivered atomic.Int64
	recorder  *metrics.Recorder

	log log.Logger
}

// New creates an empty mailbox bound to id. id is normally the owning
// thread's own ThreadId so log lines can be correlated back to it.
func New(id identity.ThreadId) *Mailbox {
	return &Mailbox{id: id, log: log.DiscardLogger, signal: make(chan struct{}, 1)}
}

// Delivered returns the total number of envelopes Process has delivered
// over this mailbox's lifetime, read without touching the queue mutex.
// It exists for observability (package metrics keeps its own delivered
// counter and does not read this one) and is not part of the mailbox's
// correctness contract.
func (m *Mailbox) Delivered() int64 {
	return m.delivered.Load()
}

// Depth returns the number of envelopes currently queued. It exists for
// package metrics' depth gauge, which polls it via a DepthFunc closure
// rather than holding a reference to the queue itself.
func (m *Mailbox) Depth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Notify returns the channel a processing loop should wait on between
// calls to Process: Submit performs a non-blocking send on it every time
// an envelope is queued, and Close performs one final send so a waiting
// loop unblocks and observes IsClosed. A receive from Notify says only
// that the queue was non-empty at some point since the last receive;
// Process itself is what establishes FIFO order and must still be called
// in a loop ("for { <-box.Notify(); box.Process(...) }") rather than
// assumed to deliver exactly one envelope per signal.
func (m *Mailbox) Notify() <-chan struct{} {
	return m.signal
}

func (m *Mailbox) wake() {
	select {
	case m.signal <- struct{}{}:
	default:
	}
}

// SetLogger attaches a logger used for diagnostic messages about queue
// state transitions. The default is a no-op logger.
func (m *Mailbox) SetLogger(logger log.Logger) {
	if logger == nil {
		logger = log.DiscardLogger
	}
	m.log = logger
}

// SetRecorder attaches an optional metrics.Recorder and registers its
// depth gauge against this mailbox's own queue length. Per SPEC_FULL.md
// §6.1, a nil recorder (the default) makes recording a no-op.
func (m *Mailbox) SetRecorder(recorder *metrics.Recorder) {
	m.recorder = recorder
	if recorder == nil {
		return
	}
	if err := recorder.RegisterCallback(m.Depth); err != nil {
		m.log.Warnf("failed to register metrics callback for mailbox %s: %v", m.id, err)
	}
}

// ID returns the ThreadId this mailbox is bound to.
func (m *Mailbox) ID() identity.ThreadId {
	return m.id
}

// IsClosed reports whether Close has already run.
func (m *Mailbox) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Submit enqueues msg and, unless msg is fire-and-forget, suspends the
// caller until a reply arrives, ctx is done, or the mailbox closes.
// A nil *message.Message return paired with a nil error means the send
// expects no reply and has already been queued; Submit returns as soon
// as the envelope lands rather than waiting for one.
//
// Per spec §4.1, a Submit against a closed mailbox fails immediately
// without ever touching the queue.
func (m *Mailbox) Submit(ctx context.Context, msg *message.Message, expectReply bool) (*message.Message, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosedMailbox
	}

	pending := &PendingSend{msg: msg}
	if expectReply {
		pending.done = make(chan *message.Message, 1)
	}
	m.queue = append(m.queue, pending)
	m.mu.Unlock()
	m.wake()

	if !expectReply {
		return nil, nil
	}

	scheduler := SchedulerFromContext(ctx)

	var (
		reply *message.Message
		err   error
	)
	scheduler.Suspend(func() {
		select {
		case reply = <-pending.done:
		case <-ctx.Done():
			err = ctx.Err()
		}
	})
	return reply, err
}

// next pops the oldest pending send, if any.
func (m *Mailbox) next() (*PendingSend, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return nil, false
	}
	pending := m.queue[0]
	m.queue = m.queue[1:]
	return pending, true
}

// Process drains every envelope currently queued, in FIFO order, handing
// each to handle. Standard envelopes go to handle verbatim. Control
// envelopes (LinkDead, Shutdown) are first interpreted against links:
//
//   - LinkDead for the current owner is rewritten into an *OwnerTerminated
//     and the owner is cleared; for any other linked peer it is rewritten
//     into a *LinkTerminated and the peer is dropped from the link set.
//     If the handler calls ctx.Unhandled() on either, Process panics a
//     *TerminationError once delivery finishes.
//   - Shutdown is rewritten into a *ShutdownSignal and delivered
//     unconditionally; Process never interprets it as a reason to stop
//     draining, since stopping the processing loop is the caller's
//     decision to make once it observes the signal.
//
// Process returns the number of envelopes delivered.
func (m *Mailbox) Process(links Links, handle Handler) int {
	delivered := 0
	for {
		pending, ok := m.next()
		if !ok {
			return delivered
		}
		delivered++
		m.delivered.Inc()
		start := time.Now()
		m.deliver(links, pending, handle)
		if m.recorder != nil {
			m.recorder.RecordDelivery(context.Background(), time.Since(start))
		}
	}
}

func (m *Mailbox) deliver(links Links, pending *PendingSend, handle Handler) {
	msg := pending.msg

	switch msg.Type {
	case message.LinkDead:
		peer, _ := msg.AsThreadId()
		m.deliverLinkDead(links, peer, pending, handle)
	case message.Shutdown:
		target, _ := msg.AsThreadId()
		ctx := newContext(message.NewStandard(&ShutdownSignal{Target: target}), pending)
		handle(ctx)
		m.defaultAck(ctx, pending, message.Ok(""))
	default:
		ctx := newContext(msg, pending)
		handle(ctx)
		m.defaultAck(ctx, pending, message.Failure("unhandled"))
	}
}

func (m *Mailbox) deliverLinkDead(links Links, peer identity.ThreadId, pending *PendingSend, handle Handler) {
	owner, hasOwner := links.Owner()
	wasOwner := hasOwner && owner == peer

	var ctx *Context
	if wasOwner {
		links.ClearOwner()
		ctx = newContext(message.NewStandard(&OwnerTerminated{Owner: peer}), pending)
	} else if links.HasLink(peer) {
		links.RemoveLink(peer)
		ctx = newContext(message.NewStandard(&LinkTerminated{Peer: peer}), pending)
	} else {
		// Not a peer we track; nothing to deliver.
		return
	}

	handle(ctx)
	m.defaultAck(ctx, pending, message.Ok(""))

	if ctx.unhandled {
		panic(&TerminationError{Peer: peer, WasOwner: wasOwner})
	}
}

func (m *Mailbox) defaultAck(ctx *Context, pending *PendingSend, fallback *message.Response) {
	if ctx.responded || pending.done == nil {
		return
	}
	pending.done <- message.NewStandard(fallback)
}

// Close marks the mailbox closed and fails every envelope still queued,
// in FIFO order, so no waiting sender blocks forever. Close is
// idempotent; calling it more than once is a no-op after the first call.
//
// Per spec §4.1, a LinkDead found among the drained envelopes still
// updates links/owner (passed in via links) before the envelope is
// failed, so link/owner bookkeeping stays correct even when the notice
// arrives at the same moment this mailbox is closing. links may be nil
// when a caller has no link bookkeeping to maintain.
func (m *Mailbox) Close(links Links) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	pending := m.queue
	m.queue = nil
	m.mu.Unlock()
	m.wake()

	m.log.Debugf("closing mailbox %s, draining %d pending sends", m.id, len(pending))
	for _, p := range pending {
		if links != nil && p.msg.Type == message.LinkDead {
			if peer, ok := p.msg.AsThreadId(); ok {
				if owner, hasOwner := links.Owner(); hasOwner && owner == peer {
					links.ClearOwner()
				} else if links.HasLink(peer) {
					links.RemoveLink(peer)
				}
			}
		}
		if p.done != nil {
			p.done <- message.NewStandard(message.Failure(ErrClosedMailbox.Error()))
		}
	}
}
