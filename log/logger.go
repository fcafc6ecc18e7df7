// MIT License
//
// Copyright (c) 2023-2026 Starling Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package log

import (
	"io"
	golog "log"
)

// Logger represents an active logging object that emits leveled, structured
// log lines. PID and ActorThread accept a Logger so callers can plug in
// their own backend; the zero value used everywhere in this package is
// DiscardLogger.
type Logger interface {
	Debug(...any)
	Debugf(string, ...any)
	Info(...any)
	Infof(string, ...any)
	Warn(...any)
	Warnf(string, ...any)
	Error(...any)
	Errorf(string, ...any)
	// Fatal logs at fatal level then calls os.Exit(1).
	Fatal(...any)
	Fatalf(string, ...any)
	// Panic logs at panic level then calls panic().
	Panic(...any)
	Panicf(string, ...any)
	// With returns a Logger that includes the given key-value pairs in all
	// subsequent log entries.
	With(keyValues ...any) Logger
	// Enabled reports whether the given level would actually be emitted.
	Enabled(level Level) bool
	// LogLevel returns the minimum level this logger emits.
	LogLevel() Level
	// LogOutput returns the underlying writers this logger emits to.
	LogOutput() []io.Writer
	// StdLogger returns a *log.Logger that forwards into this Logger, for
	// interop with standard-library APIs that want an *log.Logger.
	StdLogger() *golog.Logger
	// Flush drains any buffered output. Safe to call on loggers with no
	// buffering; call during graceful shutdown.
	Flush() error
}
