// MIT License
//
// Copyright (c) 2022-2026 Dactor Authors
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
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogger is a zap-backed logger writing to stderr at InfoLevel.
var DefaultLogger Logger = NewZap(InfoLevel, os.Stderr)

// Zap implements Logger on top of go.uber.org/zap.
type Zap struct {
	sugar    *zap.SugaredLogger
	actorTag string
}

var _ Logger = (*Zap)(nil)

// NewZap builds a Zap logger writing at the given level to the given
// writers. Passing no writers defaults to os.Stderr.
func NewZap(level Level, writers ...io.Writer) *Zap {
	if len(writers) == 0 {
		writers = []io.Writer{os.Stderr}
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	syncers := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, w := range writers {
		syncers = append(syncers, zapcore.AddSync(w))
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.NewMultiWriteSyncer(syncers...),
		toZapLevel(level),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return &Zap{sugar: logger.Sugar()}
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (z *Zap) withTag(args []any) []any {
	if z.actorTag == "" {
		return args
	}
	return append([]any{"actor", z.actorTag}, args...)
}

func (z *Zap) Debug(args ...any)                 { z.sugar.Debugw(join(args), z.withTag(nil)...) }
func (z *Zap) Debugf(format string, args ...any) { z.sugar.Debugf(z.tagFormat(format), args...) }
func (z *Zap) Info(args ...any)                  { z.sugar.Infow(join(args), z.withTag(nil)...) }
func (z *Zap) Infof(format string, args ...any)  { z.sugar.Infof(z.tagFormat(format), args...) }
func (z *Zap) Warn(args ...any)                  { z.sugar.Warnw(join(args), z.withTag(nil)...) }
func (z *Zap) Warnf(format string, args ...any)  { z.sugar.Warnf(z.tagFormat(format), args...) }
func (z *Zap) Error(args ...any)                 { z.sugar.Errorw(join(args), z.withTag(nil)...) }
func (z *Zap) Errorf(format string, args ...any) { z.sugar.Errorf(z.tagFormat(format), args...) }

func (z *Zap) With(actorID string) Logger {
	return &Zap{sugar: z.sugar, actorTag: actorID}
}

func (z *Zap) tagFormat(format string) string {
	if z.actorTag == "" {
		return format
	}
	return "[" + z.actorTag + "] " + format
}

func join(args []any) string {
	if len(args) == 0 {
		return ""
	}
	msg, rest := args[0], args[1:]
	if s, ok := msg.(string); ok && len(rest) == 0 {
		return s
	}
	return sprint(args)
}

func sprint(args []any) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += " "
		}
		out += toString(a)
	}
	return out
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if e, ok := v.(error); ok {
		return e.Error()
	}
	return fmt.Sprint(v)
}
