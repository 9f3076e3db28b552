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

package thread

import (
	"sync"

	"github.com/vireline/mailbox/identity"
	"github.com/vireline/mailbox/mailbox"
)

// Directory resolves a ThreadId to the live *mailbox.Mailbox it names, so
// that cleanup can reach a peer's mailbox to deliver LinkDead without
// going through the named registry (which maps strings, not ids). Every
// ThreadContext registers itself here on construction and removes itself
// during cleanup. The map is guarded directly by a mutex rather than
// through a generic wrapper type, since Directory is the only place in
// this module that needs a ThreadId-keyed map.
type Directory struct {
	mu        sync.RWMutex
	mailboxes map[identity.ThreadId]*mailbox.Mailbox
}

// NewDirectory creates an empty Directory.
func NewDirectory() *Directory {
	return &Directory{mailboxes: make(map[identity.ThreadId]*mailbox.Mailbox)}
}

func (d *Directory) set(id identity.ThreadId, box *mailbox.Mailbox) {
	d.mu.Lock()
	d.mailboxes[id] = box
	d.mu.Unlock()
}

func (d *Directory) delete(id identity.ThreadId) {
	d.mu.Lock()
	delete(d.mailboxes, id)
	d.mu.Unlock()
}

// Lookup resolves id to its mailbox. It is exported for callers such as
// cmd/mailboxctl that hold only a ThreadId (for example one returned by
// registry.Locate) and need the mailbox to submit to.
func (d *Directory) Lookup(id identity.ThreadId) (*mailbox.Mailbox, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	box, ok := d.mailboxes[id]
	return box, ok
}
