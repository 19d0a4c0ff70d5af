/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package jsonfmt

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package logger. It is a no-op logger unless SetLogger
// was called.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger replaces the package logger. It must be called before any
// emission runs concurrently with it. A nil logger restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerOnce.Do(func() {})
	logger = l
}

// logPass records the outcome of one interpreter pass at debug level.
func logPass(format string, out outputBuffer, err error) {
	l := Logger()
	if err == nil {
		if ce := l.Check(zap.DebugLevel, "json pass complete"); ce != nil {
			ce.Write(zap.Stringer("phase", out.phase()), zap.Int("length", out.len()))
		}
		return
	}
	l.Debug("json pass failed",
		zap.String("format", format),
		zap.Stringer("phase", out.phase()),
		zap.Int("length", out.len()),
		zap.Error(err),
	)
}
