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

package mailbox

import "github.com/vireline/mailbox/identity"

// OwnerTerminated is delivered to a Handler, wrapped as a Standard message,
// when a LinkDead control envelope names this thread's current owner.
type OwnerTerminated struct {
	Owner identity.ThreadId
}

// LinkTerminated is delivered to a Handler, wrapped as a Standard message,
// when a LinkDead control envelope names a linked peer that is not this
// thread's owner.
type LinkTerminated struct {
	Peer identity.ThreadId
}

// ShutdownSignal is delivered to a Handler when a Shutdown control envelope
// targets this thread. The handler is expected to stop its processing
// loop after observing it.
type ShutdownSignal struct {
	Target identity.ThreadId
}

// Links is the slice of ThreadContext bookkeeping that Mailbox.Process and
// Mailbox.Close need in order to apply the control-message rules of spec
// §4.1: removing a dead peer from the link set, and clearing the owner
// when the dead peer was the owner. It is implemented by package thread's
// ThreadContext; Mailbox never imports package thread to avoid a cycle.
type Links interface {
	// HasLink reports whether peer is currently a linked peer.
	HasLink(peer identity.ThreadId) bool
	// RemoveLink removes peer from the link set.
	RemoveLink(peer identity.ThreadId)
	// Owner returns the current owner and whether one is set.
	Owner() (identity.ThreadId, bool)
	// ClearOwner unsets the owner.
	ClearOwner()
}
