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

import "context"

// Scheduler lets a caller that runs inside a cooperative fiber/task runtime
// (out of scope for this module — see spec §1) control how Submit suspends
// while it waits for a response, instead of parking the calling goroutine.
//
// Suspend is handed a wait function that blocks until the response arrives
// or the context is done. A fiber-aware Scheduler can run wait on a carrier
// goroutine and yield the calling fiber to its own scheduler in the
// meantime; the default Scheduler simply calls wait directly, which blocks
// the calling goroutine — the idiomatic Go replacement for the spec's
// 1ms busy-poll fallback (see spec §9, "Cross-thread wakeup without
// fibers").
type Scheduler interface {
	Suspend(wait func())
}

type directScheduler struct{}

func (directScheduler) Suspend(wait func()) { wait() }

// DirectScheduler is the Scheduler used when none is attached to the
// context: it blocks the calling goroutine on wait.
var DirectScheduler Scheduler = directScheduler{}

type schedulerKey struct{}

// WithScheduler attaches a Scheduler to ctx so that any Mailbox.Submit call
// made with this context suspends through it instead of blocking directly.
func WithScheduler(ctx context.Context, scheduler Scheduler) context.Context {
	return context.WithValue(ctx, schedulerKey{}, scheduler)
}

// SchedulerFromContext returns the Scheduler attached to ctx, or
// DirectScheduler if none was attached.
func SchedulerFromContext(ctx context.Context) Scheduler {
	if s, ok := ctx.Value(schedulerKey{}).(Scheduler); ok && s != nil {
		return s
	}
	return DirectScheduler
}
