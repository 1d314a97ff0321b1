// Copyright 2024 The EMBLOCS Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package emblocs

import (
	"io"
	"sync"

	"go.uber.org/zap"
)

// defaultLogger is the process-wide fallback logger, in the spirit of
// caddy's logging.go package-level accessor. Kernels created without an
// explicit logger use it.
var (
	defaultLoggerMu sync.Mutex
	defaultLogger   *zap.Logger
)

// Log returns the current default logger, building a production zap
// logger the first time it's needed.
func Log() *zap.Logger {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	if defaultLogger == nil {
		l, err := zap.NewProduction()
		if err != nil {
			l = zap.NewNop()
		}
		defaultLogger = l
	}
	return defaultLogger
}

// SetLog replaces the default logger, e.g. with a development logger in
// tests or a nop logger in embedded use.
func SetLog(l *zap.Logger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = l
}

// showWriter is where introspection (`show`) output goes: plain tabular
// text, not structured log lines, mirroring the original's printf sink
// and caddy's StdoutWriter/DiscardWriter module pair. The kernel never
// reads from it; it is write-only.
type showWriter struct {
	w io.Writer
}

func newShowWriter(w io.Writer) *showWriter { return &showWriter{w: w} }

func (s *showWriter) Printf(format string, args ...any) {
	if s == nil || s.w == nil {
		return
	}
	_, _ = io.WriteString(s.w, sprintf(format, args...))
}
