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

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05.000"

var (
	loggerRegistryMu sync.RWMutex
	loggerRegistry   = map[string]*logrus.Logger{}
	baseLevel        = ParseLogLevel(EnvDefaultString("LOG_LEVEL", "info"))
	consoleLogFormat = EnvDefaultString("CONSOLE_LOG_FORMAT", "text")
	logOutput        io.Writer = os.Stdout
)

// ConfigureConsoleLogFormat selects "json" or "text" for loggers created afterwards.
func ConfigureConsoleLogFormat(format string) {
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		consoleLogFormat = "json"
	} else {
		consoleLogFormat = "text"
	}
}

// ConfigureOutput redirects loggers created afterwards; nil restores stdout.
func ConfigureOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	logOutput = w
}

// ParseLogLevel maps a level name to a logrus level, defaulting to info.
func ParseLogLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

// ConfigureLogLevel sets the level of every registered logger and of future ones.
func ConfigureLogLevel(levelStr string) {
	baseLevel = ParseLogLevel(levelStr)
	loggerRegistryMu.RLock()
	defer loggerRegistryMu.RUnlock()
	for _, lg := range loggerRegistry {
		lg.SetLevel(baseLevel)
	}
}

// SetLoggerLevel changes one named logger. It reports whether the name is registered.
func SetLoggerLevel(name string, lvlStr string) bool {
	loggerRegistryMu.RLock()
	lg, ok := loggerRegistry[name]
	loggerRegistryMu.RUnlock()
	if !ok {
		return false
	}
	lg.SetLevel(ParseLogLevel(lvlStr))
	return true
}

// NewLogger returns the logger registered under name, creating it on first use.
func NewLogger(name string) *logrus.Logger {
	loggerRegistryMu.Lock()
	defer loggerRegistryMu.Unlock()
	if l, ok := loggerRegistry[name]; ok {
		return l
	}

	l := logrus.New()
	l.SetOutput(logOutput)
	l.SetLevel(baseLevel)
	l.SetReportCaller(true)
	if consoleLogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap:        logrus.FieldMap{logrus.FieldKeyMsg: "message"},
		})
	} else {
		l.SetFormatter(&ConsoleFormatter{LoggerName: name, NameWidth: 10})
	}
	loggerRegistry[name] = l
	return l
}

// ConsoleFormatter renders "ts LEVEL pid --- [name] file:line : msg k=v".
type ConsoleFormatter struct {
	LoggerName string
	NameWidth  int
}

func (f *ConsoleFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder
	b.WriteString(entry.Time.Format(timestampFormat))
	b.WriteByte(' ')
	b.WriteString(fmt.Sprintf("%5s", strings.ToUpper(entry.Level.String())))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(os.Getpid()))
	b.WriteString(" --- [")
	b.WriteString(fmt.Sprintf("%*s", f.NameWidth, f.LoggerName))
	b.WriteString("]")
	if entry.Caller != nil {
		b.WriteString(fmt.Sprintf(" %s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line))
	}
	b.WriteString(" : ")
	b.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf(" %s=%v", k, entry.Data[k]))
		}
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// EnvDefaultString returns the environment value for key or def when unset.
func EnvDefaultString(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvDefaultBool parses the environment value for key, or returns def when unset.
func EnvDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return def
		}
		return b
	}
	return def
}

// EnvDefaultDuration parses a Go duration from the environment, or returns def.
func EnvDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
