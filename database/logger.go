/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tomoncle/retaildao/utils"
)

var (
	globalLogger   Logger
	globalLoggerMu sync.RWMutex
)

// Logger is the key/value logging contract used by the provider and repositories.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// InitLogger installs the process logger once; later calls are ignored.
func InitLogger(log Logger) {
	if log == nil {
		return
	}
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	if globalLogger == nil {
		globalLogger = log
	}
}

// GetLogger returns the installed logger, creating the DATABASE logger on first use.
func GetLogger() Logger {
	globalLoggerMu.RLock()
	l := globalLogger
	globalLoggerMu.RUnlock()
	if l != nil {
		return l
	}

	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	if globalLogger == nil {
		globalLogger = NewLogrusLogger(utils.NewLogger("DATABASE"))
	}
	return globalLogger
}

// LogrusLogger adapts a logrus logger to Logger, turning key/value pairs into fields.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger wraps l.
func NewLogrusLogger(l *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

func (l *LogrusLogger) Debug(msg string, fields ...interface{}) {
	l.entry.WithFields(toFields(fields)).Debug(msg)
}

func (l *LogrusLogger) Info(msg string, fields ...interface{}) {
	l.entry.WithFields(toFields(fields)).Info(msg)
}

func (l *LogrusLogger) Warn(msg string, fields ...interface{}) {
	l.entry.WithFields(toFields(fields)).Warn(msg)
}

func (l *LogrusLogger) Error(msg string, fields ...interface{}) {
	l.entry.WithFields(toFields(fields)).Error(msg)
}

func toFields(kv []interface{}) logrus.Fields {
	fields := make(logrus.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	if len(kv)%2 == 1 {
		fields["_extra"] = kv[len(kv)-1]
	}
	return fields
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// NopLogger discards everything.
func NopLogger() Logger { return nopLogger{} }
