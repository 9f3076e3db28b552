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
	"github.com/vireline/mailbox/log"
	"github.com/vireline/mailbox/metrics"
)

// config holds ThreadContext's construction-time options, applied by New.
// Spawn builds its child only from the options passed to that Spawn call;
// nothing is inherited from the spawning thread.
type config struct {
	log      log.Logger
	recorder *metrics.Recorder
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

// WithLogger attaches a logger used for diagnostic lines about spawn and
// cleanup. It is also wired into the thread's own mailbox.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(cfg *config) {
		if logger == nil {
			logger = log.DiscardLogger
		}
		cfg.log = logger
	})
}

// WithRecorder attaches a metrics.Recorder to the thread's mailbox. A nil
// recorder is the default and leaves recording a no-op.
func WithRecorder(recorder *metrics.Recorder) Option {
	return OptionFunc(func(cfg *config) { cfg.recorder = recorder })
}

func applyOptions(opts []Option) *config {
	cfg := newConfig()
	for _, opt := range opts {
		opt.Apply(cfg)
	}
	return cfg
}
