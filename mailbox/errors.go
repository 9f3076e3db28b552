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

import (
	"errors"
	"fmt"

	"github.com/vireline/mailbox/identity"
)

// ErrClosedMailbox is returned in-band (never panicked) whenever a
// submission reaches, or is drained by, a closed mailbox.
var ErrClosedMailbox = errors.New("mailbox is closed")

// TerminationError is panicked out of Process when a handler receives an
// OwnerTerminated or LinkTerminated notification and calls ctx.Unhandled()
// instead of acknowledging it. Per spec §7, this is the one case where
// Process is allowed to throw: the failure is surfaced in the context that
// observed it only after the handler had a chance to intercept.
type TerminationError struct {
	// Peer is the thread whose mailbox closed.
	Peer identity.ThreadId
	// WasOwner is true when Peer was this thread's owner.
	WasOwner bool
}

func (e *TerminationError) Error() string {
	if e.WasOwner {
		return fmt.Sprintf("owner %s terminated and was not handled", e.Peer)
	}
	return fmt.Sprintf("linked peer %s terminated and was not handled", e.Peer)
}
