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
	"os"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
	"github.com/uptrace/bun/schema"
)

const sqliteDriverName = sqliteshim.ShimName

// Provider hands out one connection per operation and releases it on every
// exit path. It holds no state besides the pool handle and its settings.
type Provider struct {
	config *ConnectionConfig
	logger Logger
	clock  func() time.Time

	mu    sync.RWMutex
	db    *bun.DB
	sqlDB *sql.DB
}

// Option customizes a Provider.
type Option func(*Provider)

// WithLogger replaces the DATABASE logger.
func WithLogger(logger Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock replaces the clock used for created/modified timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.clock = now
		}
	}
}

// WithDB attaches an already opened bun.DB instead of dialing from config.
func WithDB(db *bun.DB) Option {
	return func(p *Provider) {
		p.db = db
		if db != nil {
			p.sqlDB = db.DB
		}
	}
}

// NewProvider validates cfg and returns a Provider that is not yet connected,
// unless WithDB supplied a handle.
func NewProvider(cfg *ConnectionConfig, opts ...Option) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be empty")
	}
	c := *cfg
	c.fillDefaults()

	p := &Provider{
		config: &c,
		logger: GetLogger(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Open builds a Provider and connects it.
func Open(ctx context.Context, cfg *ConnectionConfig, opts ...Option) (*Provider, error) {
	p, err := NewProvider(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Connect(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// Connect opens the pool handle and verifies that the engine answers.
func (p *Provider) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		return nil
	}

	sqlDB, err := sql.Open(p.config.Driver(), p.config.URL())
	if err != nil {
		return NewOperationError(ErrConnection, "database", "connect", err)
	}

	dialect, err := p.dialect()
	if err != nil {
		_ = sqlDB.Close()
		return NewOperationError(ErrConnection, "database", "connect", err)
	}

	sqlDB.SetMaxIdleConns(p.config.MaxIdleConns)
	sqlDB.SetMaxOpenConns(p.config.MaxOpenConns)

	db := bun.NewDB(sqlDB, dialect)
	p.installHooks(db)

	ctxTimeout, cancel := context.WithTimeout(ctx, p.config.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(ctxTimeout); err != nil {
		_ = db.Close()
		return NewOperationError(ErrConnection, "database", "connect", err)
	}

	p.db = db
	p.sqlDB = sqlDB
	p.logger.Info("Database connected successfully", "type", p.config.Type, "host", p.config.Host, "dbname", p.config.DBName)
	return nil
}

func (p *Provider) dialect() (schema.Dialect, error) {
	switch p.config.Type {
	case TypeMySQL:
		return mysqldialect.New(), nil
	case TypePostgres, "postgresql", TypePgx:
		return pgdialect.New(), nil
	case TypeSQLite, "sqlite3":
		return sqlitedialect.New(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", p.config.Type)
	}
}

func (p *Provider) installHooks(db *bun.DB) {
	switch p.config.QueryLog {
	case "bundebug":
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.FromEnv("BUNDEBUG"),
		))
	case "color":
		db.AddQueryHook(NewQueryHook(os.Stdout))
	}
	if p.config.SlowQueryTime > 0 {
		db.AddQueryHook(&slowQueryHook{
			slowTime: p.config.SlowQueryTime,
			logger:   p.logger,
		})
	}
}

// Close closes the pool handle. Calling it twice is harmless.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	p.sqlDB = nil
	if err != nil {
		p.logger.Error("Failed to close database connection", "error", err)
		return err
	}
	p.logger.Info("Database connection closed")
	return nil
}

// DB returns the bun handle, or nil before Connect.
func (p *Provider) DB() *bun.DB {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.db
}

// Config returns a copy of the resolved connection settings.
func (p *Provider) Config() ConnectionConfig {
	return *p.config
}

// Logger returns the logger used for release failures and slow statements.
func (p *Provider) Logger() Logger {
	return p.logger
}

// Now returns the timestamp written to created/modified columns.
func (p *Provider) Now() time.Time {
	return p.clock().UTC().Truncate(time.Microsecond)
}

// MaxHierarchyDepth bounds ancestor walks on parent/manager references.
func (p *Provider) MaxHierarchyDepth() int {
	return p.config.MaxHierarchyDepth
}

// Acquire returns a dedicated connection. Any failure is an ErrConnection.
func (p *Provider) Acquire(ctx context.Context) (bun.Conn, error) {
	db := p.DB()
	if db == nil {
		return bun.Conn{}, fmt.Errorf("%w: database not connected", ErrConnection)
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return bun.Conn{}, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return conn, nil
}

// Release closes conn. Failures are logged and never returned.
func (p *Provider) Release(conn bun.Conn) {
	p.release(conn, "", "")
}

func (p *Provider) release(conn bun.Conn, entity, operation string) {
	if conn.Conn == nil {
		return
	}
	if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		p.logger.Error("Failed to release connection",
			"entity", entity,
			"operation", operation,
			"error", err,
		)
	}
}

// WithConn runs fn on a freshly acquired connection and releases it
// afterwards, including when fn panics. Errors from fn are classified and
// tagged with the entity/operation key.
func (p *Provider) WithConn(ctx context.Context, entity, operation string, fn func(conn bun.Conn) error) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return NewOperationError(ErrConnection, entity, operation, err)
	}
	defer p.release(conn, entity, operation)

	if err := fn(conn); err != nil {
		return WrapError(entity, operation, err)
	}
	return nil
}

// Ping checks that the engine answers.
func (p *Provider) Ping(ctx context.Context) error {
	db := p.DB()
	if db == nil {
		return fmt.Errorf("%w: database not connected", ErrConnection)
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return nil
}

// HealthCheck pings the engine and reports pool usage.
func (p *Provider) HealthCheck(ctx context.Context) *HealthStatus {
	start := time.Now()
	status := &HealthStatus{LastCheckTime: start}

	db := p.DB()
	if db == nil {
		status.LastError = "Database not initialized"
		return status
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := db.PingContext(ctxTimeout)
	status.ResponseTime = time.Since(start)
	if err != nil {
		status.LastError = err.Error()
	} else {
		status.Healthy = true
		status.Connected = true
	}

	stats := db.DB.Stats()
	status.ActiveConns = stats.InUse
	status.IdleConns = stats.Idle
	status.MaxOpenConns = stats.MaxOpenConnections
	return status
}

// Stats returns database/sql pool statistics.
func (p *Provider) Stats() *DBStats {
	db := p.DB()
	if db == nil {
		return &DBStats{}
	}
	stats := db.DB.Stats()
	return &DBStats{
		MaxOpenConns:      stats.MaxOpenConnections,
		OpenConns:         stats.OpenConnections,
		InUse:             stats.InUse,
		Idle:              stats.Idle,
		WaitCount:         stats.WaitCount,
		WaitDuration:      stats.WaitDuration,
		MaxIdleClosed:     stats.MaxIdleClosed,
		MaxIdleTimeClosed: stats.MaxIdleTimeClosed,
		MaxLifetimeClosed: stats.MaxLifetimeClosed,
	}
}

// HealthStatus holds the result of a health check against the database.
type HealthStatus struct {
	Healthy       bool          `json:"healthy"`
	Connected     bool          `json:"connected"`
	ResponseTime  time.Duration `json:"response_time"`
	ActiveConns   int           `json:"active_conns"`
	IdleConns     int           `json:"idle_conns"`
	MaxOpenConns  int           `json:"max_open_conns"`
	LastError     string        `json:"last_error,omitempty"`
	LastCheckTime time.Time     `json:"last_check_time"`
}

// DBStats mirrors database/sql pool statistics.
type DBStats struct {
	MaxOpenConns      int           `json:"max_open_conns"`
	OpenConns         int           `json:"open_conns"`
	InUse             int           `json:"in_use"`
	Idle              int           `json:"idle"`
	WaitCount         int64         `json:"wait_count"`
	WaitDuration      time.Duration `json:"wait_duration"`
	MaxIdleClosed     int64         `json:"max_idle_closed"`
	MaxIdleTimeClosed int64         `json:"max_idle_time_closed"`
	MaxLifetimeClosed int64         `json:"max_lifetime_closed"`
}
