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

// Package thread implements the per-thread identity, ownership, and link
// bookkeeping that sits above a mailbox: ThreadContext, Spawn, and the
// cleanup step that turns a terminating thread's state into LinkDead
// notices for its peers.
package thread

import (
	"context"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/flowchartsman/retry"
	"go.uber.org/multierr"

	"github.com/vireline/mailbox/identity"
	"github.com/vireline/mailbox/log"
	"github.com/vireline/mailbox/mailbox"
	"github.com/vireline/mailbox/message"
	"github.com/vireline/mailbox/registry"
)

// ThreadContext is the per-thread singleton described in spec §4.2: its
// own identity, its owner (if any), and the set of peers it is linked to.
// It is created lazily, on Spawn or on the first call to New for a root
// thread, never implicitly.
type ThreadContext struct {
	id  identity.ThreadId
	box *mailbox.Mailbox
	dir *Directory
	reg *registry.Registry
	log log.Logger

	mu       sync.Mutex
	owner    identity.ThreadId
	hasOwner bool
	links    mapset.Set[identity.ThreadId]
}

var _ mailbox.Links = (*ThreadContext)(nil)

// New creates a root ThreadContext with no owner: the entry point for a
// logical thread that was not produced by Spawn. dir and reg are the
// process-wide directory and named registry this thread participates in.
// opts follows the teacher's functional-options idiom; see WithLogger and
// WithRecorder.
func New(dir *Directory, reg *registry.Registry, opts ...Option) *ThreadContext {
	cfg := applyOptions(opts)
	id := identity.New()
	c := &ThreadContext{
		id:    id,
		box:   mailbox.New(id),
		dir:   dir,
		reg:   reg,
		log:   cfg.log,
		links: mapset.NewSet[identity.ThreadId](),
	}
	c.box.SetLogger(cfg.log)
	if cfg.recorder != nil {
		c.box.SetRecorder(cfg.recorder)
	}
	dir.set(id, c.box)
	return c
}

// Tid returns this thread's own identity. Per spec §4.2 this is
// equivalent to this_tid(): the id is allocated eagerly at construction,
// so there is no unset state to lazily materialize.
func (c *ThreadContext) Tid() identity.ThreadId {
	return c.id
}

// Mailbox returns the mailbox owned by this thread.
func (c *ThreadContext) Mailbox() *mailbox.Mailbox {
	return c.box
}

// OwnerTid returns the owning thread's id, or ErrTidMissing if this thread
// has no owner (a root thread created with New rather than Spawn).
func (c *ThreadContext) OwnerTid() (identity.ThreadId, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasOwner {
		return identity.Zero, ErrTidMissing
	}
	return c.owner, nil
}

// Spawn allocates a child ThreadContext, records the link in both
// directions (the child's owner is this thread; this thread links the
// child), then runs fn on a new goroutine with the child context. Spawn
// returns once the child's identity exists and the link is recorded; it
// does not wait for fn to start running. opts configures the child the
// same way New does; it does not inherit this thread's options.
func (c *ThreadContext) Spawn(fn func(child *ThreadContext), opts ...Option) *ThreadContext {
	child := New(c.dir, c.reg, opts...)
	child.owner = c.id
	child.hasOwner = true

	c.mu.Lock()
	c.links.Add(child.id)
	c.mu.Unlock()

	c.log.Debugf("spawned thread %s from %s", child.id, c.id)
	go fn(child)
	return child
}

// HasLink implements mailbox.Links.
func (c *ThreadContext) HasLink(peer identity.ThreadId) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.links.Contains(peer)
}

// RemoveLink implements mailbox.Links.
func (c *ThreadContext) RemoveLink(peer identity.ThreadId) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.links.Remove(peer)
}

// Owner implements mailbox.Links.
func (c *ThreadContext) Owner() (identity.ThreadId, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.owner, c.hasOwner
}

// ClearOwner implements mailbox.Links.
func (c *ThreadContext) ClearOwner() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasOwner = false
}

// Process drains this thread's mailbox once, using c itself as the link
// bookkeeping Process needs to interpret LinkDead control messages.
func (c *ThreadContext) Process(handle mailbox.Handler) int {
	return c.box.Process(c, handle)
}

// Cleanup runs the termination sequence of spec §4.2: close the mailbox,
// best-effort deliver LinkDead(self) to every linked peer and to the
// owner if set, then unregister every name pointing at this thread.
// Cleanup is idempotent: calling it again after the mailbox is already
// closed only re-runs the (harmless) notify and unregister steps.
func (c *ThreadContext) Cleanup(ctx context.Context) error {
	c.box.Close(c)

	c.mu.Lock()
	peers := c.links.ToSlice()
	owner, hasOwner := c.owner, c.hasOwner
	c.mu.Unlock()

	if hasOwner {
		peers = append(peers, owner)
	}

	var errs error
	for _, peer := range peers {
		if err := c.notifyLinkDead(ctx, peer); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	c.reg.UnregisterAll(c.id)
	c.dir.delete(c.id)
	return errs
}

// notifyLinkDead delivers LinkDead(self) to peer's mailbox through a
// bounded retrier that retries any submit error other than a closed
// mailbox. A peer whose mailbox is already closed (including one that
// closes concurrently with the submit), or whose directory entry was
// already removed by its own cleanup, is not an error and is not retried:
// per spec §4.2 the notice is best-effort and silently absorbed.
func (c *ThreadContext) notifyLinkDead(ctx context.Context, peer identity.ThreadId) error {
	box, ok := c.dir.Lookup(peer)
	if !ok {
		return nil
	}

	retrier := retry.NewRetrier(3, time.Millisecond, 10*time.Millisecond)
	err := retrier.RunContext(ctx, func(ctx context.Context) error {
		_, err := box.Submit(ctx, message.NewLinkDead(c.id), false)
		if err == mailbox.ErrClosedMailbox {
			return nil
		}
		return err
	})
	if err != nil {
		c.log.Warnf("failed to deliver LinkDead(%s) to %s: %v", c.id, peer, err)
	}
	return err
}
