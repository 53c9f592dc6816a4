// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// newLogger logs to w at level. Terminals and debug runs get the console
// encoder, anything else JSON lines.
func newLogger(w io.Writer, level zapcore.Level, debug bool) *zap.Logger {
	var enc zapcore.Encoder
	if debug || isTerminal(w) {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	opts := []zap.Option{zap.ErrorOutput(zapcore.AddSync(w))}
	if debug {
		opts = append(opts, zap.AddCaller())
	}
	return zap.New(core, opts...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
