// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package logging carries a structured *logrus.Entry through
// context.Context, the idiomatic replacement for a hand-rolled per-goroutine
// correlation id map (compare ossrs-go-oryx-lib/logger's Context.Cid()).
package logging

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// New builds the root logger for the process: JSON output to w (stderr
// when w is nil) at the given level. The level is applied as given; the
// zero logrus.Level is PanicLevel.
func New(w io.Writer, level logrus.Level) *logrus.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(level)
	return l
}

// WithLogger attaches entry to ctx for retrieval by FromContext.
func WithLogger(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, ctxKey{}, entry)
}

// FromContext returns the logger attached to ctx, or a standalone entry on
// the standard logger if none was attached.
func FromContext(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok {
		return entry
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
