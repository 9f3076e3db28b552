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

import "github.com/vireline/mailbox/message"

// Handler processes one delivered message. It is supplied by the thread
// that owns the mailbox; see package thread.
type Handler func(ctx *Context)

// Context wraps a single message delivery, mirroring how a received
// message is presented to actor-style handlers: the payload is read with
// Message, a reply (if any) is sent with Respond, and a handler that does
// not know what to do with the payload calls Unhandled.
type Context struct {
	msg       *message.Message
	pending   *PendingSend
	responded bool
	unhandled bool
}

func newContext(msg *message.Message, pending *PendingSend) *Context {
	return &Context{msg: msg, pending: pending}
}

// Message returns the payload carried by this delivery. For a Standard
// message sent through Submit it is whatever the sender passed in; for a
// control message it is an *OwnerTerminated, *LinkTerminated, or
// *ShutdownSignal synthesized by Process.
func (c *Context) Message() any {
	return c.msg.Payload
}

// Respond sends resp back to the sender of this message, if the delivery
// came in through Submit (i.e. a reply channel exists). Respond is a
// no-op when the message was a fire-and-forget send. Calling Respond more
// than once keeps only the first reply.
func (c *Context) Respond(resp *message.Response) {
	if c.responded || c.pending == nil {
		c.responded = true
		return
	}
	c.responded = true
	c.pending.done <- message.NewStandard(resp)
}

// Unhandled marks this delivery as something the handler did not know how
// to process. For an OwnerTerminated or LinkTerminated payload this
// upgrades the notification into a panicked TerminationError once Process
// returns control; for any other payload it is currently equivalent to
// doing nothing, and exists so handler code reads the same way regardless
// of payload kind.
func (c *Context) Unhandled() {
	c.unhandled = true
}
