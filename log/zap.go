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
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogger is a global logger at InfoLevel writing JSON to stdout. PID
// and ActorThread never pick this up implicitly; a caller that wants zap
// output instead of DiscardLogger passes it in explicitly.
var DefaultLogger = NewZap(InfoLevel, os.Stdout)

// Zap implements Logger with zap as the backend. Starling's own log traffic
// is low-volume — a handler panic, a thread starting or stopping, a
// pause/resume misuse warning — so unlike a request-serving system there is
// no sampling, no buffered file syncer, and no priority-split core here:
// every write goes straight to its syncer.
type Zap struct {
	logger  *zap.Logger
	sugar   *zap.SugaredLogger
	outputs []io.Writer
}

var _ Logger = &Zap{}

// NewZap builds a Zap logging JSON-encoded entries at level and above to
// each of writers.
func NewZap(level Level, writers ...io.Writer) *Zap {
	syncers := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, w := range writers {
		syncers = append(syncers, zapcore.AddSync(w))
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zap.CombineWriteSyncers(syncers...), toZapLevel(level))
	zapLogger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))

	return &Zap{
		logger:  zapLogger,
		sugar:   zapLogger.Sugar(),
		outputs: writers,
	}
}

func (z *Zap) Debug(v ...any)                 { z.sugar.Debug(v...) }
func (z *Zap) Debugf(format string, v ...any) { z.sugar.Debugf(format, v...) }
func (z *Zap) Info(v ...any)                  { z.sugar.Info(v...) }
func (z *Zap) Infof(format string, v ...any)  { z.sugar.Infof(format, v...) }
func (z *Zap) Warn(v ...any)                  { z.sugar.Warn(v...) }
func (z *Zap) Warnf(format string, v ...any)  { z.sugar.Warnf(format, v...) }
func (z *Zap) Error(v ...any)                 { z.sugar.Error(v...) }
func (z *Zap) Errorf(format string, v ...any) { z.sugar.Errorf(format, v...) }

// Fatal logs at fatal level then calls os.Exit(1) via the underlying zap core.
func (z *Zap) Fatal(v ...any) { z.sugar.Fatal(v...) }

// Fatalf logs a formatted message at fatal level then calls os.Exit(1).
func (z *Zap) Fatalf(format string, v ...any) { z.sugar.Fatalf(format, v...) }

// Panic logs at panic level then calls panic().
func (z *Zap) Panic(v ...any) { z.sugar.Panic(v...) }

// Panicf logs a formatted message at panic level then calls panic().
func (z *Zap) Panicf(format string, v ...any) { z.sugar.Panicf(format, v...) }

// Enabled reports whether level would actually be emitted.
func (z *Zap) Enabled(level Level) bool {
	return z.logger.Core().Enabled(toZapLevel(level))
}

// With returns a Logger carrying keyValues as structured fields on every
// subsequent entry. Odd key counts and non-string keys are rare enough in
// this runtime's own call sites (actor name, thread name) that a plain
// zap.Any round trip is preferred here over field-type dispatch.
func (z *Zap) With(keyValues ...any) Logger {
	if len(keyValues) == 0 {
		return z
	}
	fields := make([]zap.Field, 0, (len(keyValues)+1)/2)
	for i := 0; i < len(keyValues); i += 2 {
		if i+1 >= len(keyValues) {
			fields = append(fields, zap.Any("_", keyValues[i]))
			break
		}
		key, ok := keyValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keyValues[i+1]))
	}
	if len(fields) == 0 {
		return z
	}

	newLogger := z.logger.With(fields...)
	return &Zap{logger: newLogger, sugar: newLogger.Sugar(), outputs: z.outputs}
}

// LogLevel returns the minimum level this logger emits.
func (z *Zap) LogLevel() Level {
	switch z.logger.Level() {
	case zapcore.FatalLevel:
		return FatalLevel
	case zapcore.PanicLevel:
		return PanicLevel
	case zapcore.ErrorLevel:
		return ErrorLevel
	case zapcore.WarnLevel:
		return WarningLevel
	case zapcore.InfoLevel:
		return InfoLevel
	case zapcore.DebugLevel:
		return DebugLevel
	default:
		return InvalidLevel
	}
}

// LogOutput returns the writers this logger was constructed with.
func (z *Zap) LogOutput() []io.Writer {
	return z.outputs
}

// Flush syncs every file output that isn't stdout/stderr (syncing a
// terminal fd routinely fails with ENOTTY and isn't meaningful anyway).
// Starling never buffers writes, so this exists only so callers with a
// generic shutdown path can call it unconditionally.
func (z *Zap) Flush() error {
	var err error
	for _, output := range z.outputs {
		file, ok := output.(*os.File)
		if !ok || isStdStream(file) {
			continue
		}
		if syncErr := file.Sync(); syncErr != nil {
			err = multierr.Append(err, syncErr)
		}
	}
	return err
}

// StdLogger returns a *log.Logger that forwards into this Zap, for interop
// with standard-library APIs that want an *log.Logger.
func (z *Zap) StdLogger() *golog.Logger {
	stdLogger, _ := zap.NewStdLogAt(z.logger, z.logger.Level())
	return stdLogger
}

func isStdStream(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return fd == os.Stdout.Fd() || fd == os.Stderr.Fd()
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarningLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case PanicLevel:
		return zapcore.PanicLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.DebugLevel
	}
}
