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

package log

import (
	"io"
	golog "log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// DefaultLogger is a global logger configured to output messages at
	// InfoLevel and above to os.Stderr.
	DefaultLogger = NewZap(InfoLevel, os.Stderr)
	// DebugLogger is a global logger configured to output messages at
	// DebugLevel and above to os.Stderr, useful while developing against
	// this module.
	DebugLogger = NewZap(DebugLevel, os.Stderr)
)

// Zap implements Logger with go.uber.org/zap as the backing library.
type Zap struct {
	logger  *zap.Logger
	sugar   *zap.SugaredLogger
	level   Level
	outputs []io.Writer
}

var _ Logger = (*Zap)(nil)

// NewZap creates a Logger that writes to writers at the given level.
func NewZap(level Level, writers ...io.Writer) *Zap {
	if len(writers) == 0 {
		writers = []io.Writer{os.Stderr}
	}

	syncers := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, w := range writers {
		syncers = append(syncers, zapcore.AddSync(w))
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(syncers...), toZapLevel(level))
	zapLogger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	return &Zap{
		logger:  zapLogger,
		sugar:   zapLogger.Sugar(),
		level:   level,
		outputs: writers,
	}
}

func (z *Zap) Debug(v ...any)                  { z.sugar.Debug(v...) }
func (z *Zap) Debugf(format string, v ...any)  { z.sugar.Debugf(format, v...) }
func (z *Zap) Info(v ...any)                   { z.sugar.Info(v...) }
func (z *Zap) Infof(format string, v ...any)   { z.sugar.Infof(format, v...) }
func (z *Zap) Warn(v ...any)                   { z.sugar.Warn(v...) }
func (z *Zap) Warnf(format string, v ...any)   { z.sugar.Warnf(format, v...) }
func (z *Zap) Error(v ...any)                  { z.sugar.Error(v...) }
func (z *Zap) Errorf(format string, v ...any)  { z.sugar.Errorf(format, v...) }
func (z *Zap) Fatal(v ...any)                  { z.sugar.Fatal(v...) }
func (z *Zap) Fatalf(format string, v ...any)  { z.sugar.Fatalf(format, v...) }
func (z *Zap) Panic(v ...any)                  { z.sugar.Panic(v...) }
func (z *Zap) Panicf(format string, v ...any)  { z.sugar.Panicf(format, v...) }

// LogLevel returns the level this logger was constructed with.
func (z *Zap) LogLevel() Level {
	return z.level
}

// LogOutput returns the writers this logger writes to.
func (z *Zap) LogOutput() []io.Writer {
	return z.outputs
}

// StdLogger returns a standard library *log.Logger backed by this logger.
func (z *Zap) StdLogger() *golog.Logger {
	return zap.NewStdLog(z.logger)
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case FatalLevel:
		return zapcore.FatalLevel
	case PanicLevel:
		return zapcore.PanicLevel
	default:
		return zapcore.InfoLevel
	}
}
