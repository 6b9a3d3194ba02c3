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
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"time"

	"github.com/fatih/color"
	"github.com/uptrace/bun"
)

var (
	selectColor = color.New(color.FgGreen)
	insertColor = color.New(color.FgBlue)
	updateColor = color.New(color.FgYellow)
	deleteColor = color.New(color.FgMagenta)
	otherColor  = color.New(color.FgRed)
	tagColor    = color.New(color.FgCyan)
	errorColor  = color.New(color.BgRed)
)

// QueryHook echoes every formatted statement with its duration, colored by verb.
// BUNDEBUG=0 in the environment silences it.
type QueryHook struct {
	writer io.Writer
}

var _ bun.QueryHook = (*QueryHook)(nil)

// NewQueryHook writes to w, or stdout when w is nil.
func NewQueryHook(w io.Writer) *QueryHook {
	if w == nil {
		w = os.Stdout
	}
	return &QueryHook{writer: w}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *QueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	if env, ok := os.LookupEnv("BUNDEBUG"); ok && (env == "" || env == "0") {
		return
	}

	now := time.Now()
	args := []interface{}{
		now.Format("2006-01-02 15:04:05.000"),
		tagColor.Sprintf("%8s", "[BUN]"),
		fmt.Sprintf("%12s", now.Sub(event.StartTime).Round(time.Microsecond)),
		" ", verbColor(event.Operation()).Sprint(event.Query),
	}
	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		typ := reflect.TypeOf(event.Err).String()
		args = append(args, "\t", errorColor.Sprintf(" %s: %s ", typ, event.Err.Error()))
	}
	_, _ = fmt.Fprintln(h.writer, args...)
}

func verbColor(operation string) *color.Color {
	switch operation {
	case "SELECT":
		return selectColor
	case "INSERT":
		return insertColor
	case "UPDATE":
		return updateColor
	case "DELETE":
		return deleteColor
	default:
		return otherColor
	}
}

// slowQueryHook warns about successful statements slower than slowTime.
type slowQueryHook struct {
	slowTime time.Duration
	logger   Logger
}

func (h *slowQueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *slowQueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	if event.Err != nil || h.logger == nil {
		return
	}
	duration := time.Since(event.StartTime)
	if duration > h.slowTime {
		h.logger.Warn("Database slow query detected",
			"duration", duration,
			"slow_threshold", h.slowTime,
			"query", event.Query,
		)
	}
}
