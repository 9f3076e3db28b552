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

package message

import (
	"time"

	"github.com/vireline/mailbox/identity"
)

// Request is the user-level call submitted to a mailbox. Args and the
// matching Response's Data are opaque to this module; the caller and the
// callee's handler must agree on the encoding out of band (the
// dispatch/serialization layer is out of scope for this module).
type Request struct {
	Sender      identity.ThreadId
	Method      string
	Args        string
	RequestTime time.Time
	Delay       time.Duration
	Timeout     time.Duration
}

// Expired reports whether now is past RequestTime+Timeout. A zero Timeout
// means the request never expires. Neither the mailbox nor package rpc
// calls this; it is for a processor's handler to consult, per spec §5.
func (r *Request) Expired(now time.Time) bool {
	if r.Timeout <= 0 {
		return false
	}
	return now.After(r.RequestTime.Add(r.Timeout))
}
