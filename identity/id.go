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

// Package identity defines the opaque handle that names a mailbox.
package identity

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"
)

// ThreadId is an opaque handle identifying a mailbox, and hence a logical
// thread. Two ThreadIds are equal only if they were produced by the same
// call to New. A terminated thread's textual form may later collide with a
// new thread's textual form; the spec explicitly accepts this.
type ThreadId struct {
	raw  uuid.UUID
	text string
}

// Zero is the unset ThreadId, returned by lookups that find nothing.
var Zero ThreadId

// New allocates a fresh ThreadId with a stable textual form derived from a
// random UUID. The textual form is computed once at construction, not on
// every String call, since it never changes for the lifetime of the id.
func New() ThreadId {
	raw := uuid.New()
	sum := xxh3.Hash(raw[:])
	return ThreadId{
		raw:  raw,
		text: "tid-" + strconv.FormatUint(sum, 16),
	}
}

// IsZero reports whether id is the unset ThreadId.
func (id ThreadId) IsZero() bool {
	return id == Zero
}

// String returns the stable textual form of id.
func (id ThreadId) String() string {
	if id.IsZero() {
		return "tid-none"
	}
	return id.text
}
