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

// Package message defines the envelope that travels through a Mailbox and
// the Request/Response payload carried by Standard envelopes.
package message

import (
	"github.com/vireline/mailbox/identity"
)

// Type tags the kind of envelope traveling through a mailbox. Control
// envelopes (anything other than Standard) are interpreted by the owning
// thread's processor before any application handler runs.
type Type int

const (
	// Standard carries a Request, a Response, a user error, or an
	// arbitrary user value.
	Standard Type = iota
	// LinkDead carries the ThreadId of a peer whose mailbox has closed.
	LinkDead
	// Shutdown carries the ThreadId of the mailbox the shutdown targets.
	Shutdown
)

// String renders the Type for logging.
func (t Type) String() string {
	switch t {
	case LinkDead:
		return "LinkDead"
	case Shutdown:
		return "Shutdown"
	default:
		return "Standard"
	}
}

// Message is the tagged union carried by a mailbox. Payload holds one of:
//   - *Request or *Response, for Standard application traffic
//   - error, for a Standard user-signaled failure
//   - any, for an arbitrary Standard user value (the send shorthand)
//   - identity.ThreadId, for LinkDead and Shutdown
type Message struct {
	Type    Type
	Payload any
}

// NewStandard wraps an arbitrary payload as a Standard message.
func NewStandard(payload any) *Message {
	return &Message{Type: Standard, Payload: payload}
}

// NewLinkDead wraps the id of the thread that just terminated.
func NewLinkDead(dead identity.ThreadId) *Message {
	return &Message{Type: LinkDead, Payload: dead}
}

// NewShutdown wraps the id of the mailbox a shutdown request targets.
func NewShutdown(target identity.ThreadId) *Message {
	return &Message{Type: Shutdown, Payload: target}
}

// AsRequest returns the Request carried by m, if any.
func (m *Message) AsRequest() (*Request, bool) {
	if m == nil || m.Type != Standard {
		return nil, false
	}
	req, ok := m.Payload.(*Request)
	return req, ok
}

// AsResponse returns the Response carried by m, if any.
func (m *Message) AsResponse() (*Response, bool) {
	if m == nil || m.Type != Standard {
		return nil, false
	}
	resp, ok := m.Payload.(*Response)
	return resp, ok
}

// AsThreadId returns the ThreadId carried by a LinkDead or Shutdown message.
func (m *Message) AsThreadId() (identity.ThreadId, bool) {
	if m == nil || (m.Type != LinkDead && m.Type != Shutdown) {
		return identity.Zero, false
	}
	id, ok := m.Payload.(identity.ThreadId)
	return id, ok
}
