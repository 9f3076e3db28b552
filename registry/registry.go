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

// Package registry implements the process-wide name -> ThreadId directory,
// shared across threads alongside each thread's own mailbox and the
// ThreadId -> mailbox map in package thread's Directory.
package registry

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/vireline/mailbox/identity"
	"github.com/vireline/mailbox/log"
)

// config holds Registry's construction-time options, applied by New.
type config struct {
	log log.Logger
}

func newConfig() *config {
	return &config{log: log.DiscardLogger}
}

// Option is the interface that applies a configuration option, mirroring
// the teacher's actor/option.go idiom.
type Option interface {
	Apply(cfg *config)
}

// OptionFunc implements the Option interface.
type OptionFunc func(*config)

func (f OptionFunc) Apply(cfg *config) { f(cfg) }

// WithLogger attaches a logger used to report Register/Unregister traffic.
// The default is a no-op logger.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(cfg *config) {
		if logger == nil {
			logger = log.DiscardLogger
		}
		cfg.log = logger
	})
}

// ClosedChecker is the one thing Registry needs to know about a mailbox: a
// closed mailbox can never be registered against a new name. Package
// mailbox's *Mailbox satisfies this by its IsClosed method; Registry takes
// the narrow interface instead of importing package mailbox's concrete
// type so the two packages stay decoupled.
type ClosedChecker interface {
	IsClosed() bool
}

// Registry is the process-wide name -> ThreadId directory described in
// spec §4.4: by_name maps a name to the thread that owns it; by_tid is
// the inverse, used to unregister every name a terminating thread held.
type Registry struct {
	mu     sync.Mutex
	byName map[string]identity.ThreadId
	byTid  map[identity.ThreadId]mapset.Set[string]
	log    log.Logger
}

// New creates an empty Registry. With no options, Register/Unregister
// traffic is not logged.
func New(opts ...Option) *Registry {
	cfg := newConfig()
	for _, opt := range opts {
		opt.Apply(cfg)
	}
	return &Registry{
		byName: make(map[string]identity.ThreadId),
		byTid:  make(map[identity.ThreadId]mapset.Set[string]),
		log:    cfg.log,
	}
}

// Register associates name with tid, failing if name is already taken or
// box reports the mailbox as closed. A successful Register happens-before
// any subsequent Locate(name) observing it, since both run under mu.
func (r *Registry) Register(name string, tid identity.ThreadId, box ClosedChecker) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[name]; taken {
		r.log.Debugf("register %q for %s failed: name already taken", name, tid)
		return false
	}
	if box != nil && box.IsClosed() {
		r.log.Debugf("register %q for %s failed: mailbox closed", name, tid)
		return false
	}

	r.byName[name] = tid
	names, ok := r.byTid[tid]
	if !ok {
		names = mapset.NewSet[string]()
		r.byTid[tid] = names
	}
	names.Add(name)
	r.log.Debugf("registered %q for %s", name, tid)
	return true
}

// Unregister removes name, reporting whether it was present.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.unregisterLocked(name)
}

func (r *Registry) unregisterLocked(name string) bool {
	tid, ok := r.byName[name]
	if !ok {
		return false
	}
	delete(r.byName, name)
	if names, ok := r.byTid[tid]; ok {
		names.Remove(name)
		if names.Cardinality() == 0 {
			delete(r.byTid, tid)
		}
	}
	r.log.Debugf("unregistered %q from %s", name, tid)
	return true
}

// Locate returns the ThreadId registered under name, if any.
func (r *Registry) Locate(name string) (identity.ThreadId, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tid, ok := r.byName[name]
	return tid, ok
}

// UnregisterAll removes every name currently pointing at tid. It is called
// from ThreadContext's cleanup step so a terminated thread leaves no
// dangling names behind.
func (r *Registry) UnregisterAll(tid identity.ThreadId) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names, ok := r.byTid[tid]
	if !ok {
		return
	}
	for _, name := range names.ToSlice() {
		delete(r.byName, name)
	}
	delete(r.byTid, tid)
	r.log.Debugf("unregistered all names for %s", tid)
}
