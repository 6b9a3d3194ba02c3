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
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

var scriptOrderRe = regexp.MustCompile(`^(\d+)_`)

// ScriptRunner executes SQL files (schema fixtures, seed data) against a
// Provider. Each file runs in a single transaction on one connection.
type ScriptRunner struct {
	provider *Provider
	logger   Logger
}

// ScriptResult contains the outcome of executing a single SQL file.
type ScriptResult struct {
	File         string
	Statements   int
	RowsAffected int64
	Duration     time.Duration
}

// NewScriptRunner returns a runner bound to p.
func NewScriptRunner(p *Provider) *ScriptRunner {
	return &ScriptRunner{provider: p, logger: p.Logger()}
}

// RunFS executes every *.sql file under dir in fsys. Files prefixed with
// "<n>_" run in numeric order, the rest after them by name.
func (r *ScriptRunner) RunFS(ctx context.Context, fsys fs.FS, dir string) ([]ScriptResult, error) {
	var files []string
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list SQL files: %w", err)
	}

	sort.SliceStable(files, func(i, j int) bool {
		oi, oj := scriptOrder(path.Base(files[i])), scriptOrder(path.Base(files[j]))
		if oi != oj {
			return oi < oj
		}
		return files[i] < files[j]
	})

	results := make([]ScriptResult, 0, len(files))
	for _, file := range files {
		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return results, fmt.Errorf("failed to read file %s: %w", file, err)
		}
		res, err := r.Run(ctx, file, string(content))
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Run executes the statements in content. name labels logs and errors.
func (r *ScriptRunner) Run(ctx context.Context, name, content string) (ScriptResult, error) {
	start := time.Now()
	result := ScriptResult{File: name}

	statements := SplitStatements(content)
	if len(statements) == 0 {
		return result, nil
	}

	err := r.provider.WithConn(ctx, "script", name, func(conn bun.Conn) error {
		return conn.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
			for _, stmt := range statements {
				res, err := tx.ExecContext(ctx, stmt)
				if err != nil {
					return fmt.Errorf("failed to execute SQL statement: %s, error: %w", stmt, err)
				}
				n, _ := res.RowsAffected()
				result.RowsAffected += n
			}
			return nil
		})
	})
	result.Statements = len(statements)
	result.Duration = time.Since(start)
	if err != nil {
		r.logger.Error("SQL file execution failed", "file", name, "error", err)
		return result, err
	}
	r.logger.Debug("SQL file executed successfully",
		"file", name,
		"statements", result.Statements,
		"duration", result.Duration.String(),
	)
	return result, nil
}

// SplitStatements breaks a script into statements on trailing semicolons,
// dropping blank lines and "--" comments.
func SplitStatements(content string) []string {
	var statements []string
	var current strings.Builder

	scanner := bufio.NewScanner(strings.NewReader(content))
	// A single line may span the whole script.
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), len(content)+1)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString(" ")

		if strings.HasSuffix(line, ";") {
			if stmt := strings.TrimSpace(current.String()); stmt != "" {
				statements = append(statements, stmt)
			}
			current.Reset()
		}
	}
	if stmt := strings.TrimSpace(current.String()); stmt != "" {
		statements = append(statements, stmt)
	}
	return statements
}

func scriptOrder(name string) int {
	if m := scriptOrderRe.FindStringSubmatch(name); len(m) > 1 {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 1 << 30
}
