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
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported values for ConnectionConfig.Type.
const (
	TypeMySQL    = "mysql"
	TypePostgres = "postgres"
	TypePgx      = "pgx"
	TypeSQLite   = "sqlite"
)

// ConnectionConfig describes how to reach the relational engine.
type ConnectionConfig struct {
	Type    string `yaml:"type" validate:"required,oneof=mysql postgres postgresql pgx sqlite sqlite3"`
	DSN     string `yaml:"dsn"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port" validate:"gte=0,lte=65535"`
	User    string `yaml:"username"`
	Pass    string `yaml:"password"`
	DBName  string `yaml:"dbname" validate:"required_without=DSN"`
	SSLMode string `yaml:"sslmode"`
	Charset string `yaml:"charset"` // MySQL only

	// MaxIdleConns defaults to 0 so every released connection is closed.
	MaxIdleConns      int           `yaml:"max_idle_conns" validate:"gte=0"`
	MaxOpenConns      int           `yaml:"max_open_conns" validate:"gte=0"`
	ConnectTimeout    time.Duration `yaml:"connect_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	SlowQueryTime     time.Duration `yaml:"slow_query_time"`
	QueryLog          string        `yaml:"query_log" validate:"omitempty,oneof=off bundebug color"`
	MaxHierarchyDepth int           `yaml:"max_hierarchy_depth" validate:"gte=0"`
}

// LogConfig controls the named loggers used by the data-access layer.
type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=trace debug info warn warning error"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// Config is resolved once at startup and handed to NewProvider.
type Config struct {
	Connection ConnectionConfig `yaml:"connection" validate:"required"`
	Log        LogConfig        `yaml:"log"`
}

// DefaultConnectionConfig returns a connection config with the documented defaults.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		Type:              TypeSQLite,
		DBName:            "retail",
		MaxIdleConns:      0,
		MaxOpenConns:      0,
		ConnectTimeout:    10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		SlowQueryTime:     2 * time.Second,
		QueryLog:          "off",
		MaxHierarchyDepth: 64,
	}
}

// DefaultConfig returns a Config populated with DefaultConnectionConfig.
func DefaultConfig() *Config {
	return &Config{
		Connection: DefaultConnectionConfig(),
		Log:        LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads a YAML file on top of the defaults, loads a .env file when one
// exists next to the process, applies DB_* environment overrides and validates
// the result. An empty path skips the file and uses defaults plus environment.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	overrideFromEnv(&cfg.Connection)
	cfg.Connection.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and enumerations.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}
	return nil
}

// overrideFromEnv overrides configuration values from environment variables.
func overrideFromEnv(cfg *ConnectionConfig) {
	if typ := os.Getenv("DB_TYPE"); typ != "" {
		cfg.Type = typ
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		cfg.DSN = dsn
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if username := os.Getenv("DB_USERNAME"); username != "" {
		cfg.User = username
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Pass = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		cfg.DBName = dbname
	}
	if sslmode := os.Getenv("DB_SSLMODE"); sslmode != "" {
		cfg.SSLMode = sslmode
	}
	if maxIdle := os.Getenv("DB_MAX_IDLE_CONNS"); maxIdle != "" {
		if val, err := strconv.Atoi(maxIdle); err == nil {
			cfg.MaxIdleConns = val
		}
	}
	if maxOpen := os.Getenv("DB_MAX_OPEN_CONNS"); maxOpen != "" {
		if val, err := strconv.Atoi(maxOpen); err == nil {
			cfg.MaxOpenConns = val
		}
	}
	if slow := os.Getenv("DB_SLOW_QUERY_MS"); slow != "" {
		if val, err := strconv.Atoi(slow); err == nil {
			cfg.SlowQueryTime = time.Duration(val) * time.Millisecond
		}
	}
	if queryLog := os.Getenv("DB_QUERY_LOG"); queryLog != "" {
		cfg.QueryLog = queryLog
	}
}

func (c *ConnectionConfig) fillDefaults() {
	def := DefaultConnectionConfig()
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = def.ConnectTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.MaxHierarchyDepth <= 0 {
		c.MaxHierarchyDepth = def.MaxHierarchyDepth
	}
	if c.QueryLog == "" {
		c.QueryLog = def.QueryLog
	}
}

// Driver returns the database/sql driver name registered for the configured type.
func (c *ConnectionConfig) Driver() string {
	switch c.Type {
	case TypeMySQL:
		return "mysql"
	case TypePostgres, "postgresql":
		return "postgres"
	case TypePgx:
		return "pgx"
	case TypeSQLite, "sqlite3":
		return sqliteDriverName
	default:
		return c.Type
	}
}

// Username returns the login role.
func (c *ConnectionConfig) Username() string { return c.User }

// Password returns the login secret.
func (c *ConnectionConfig) Password() string { return c.Pass }

// URL returns the data source name handed to sql.Open. A configured DSN wins
// over the host/port composition.
func (c *ConnectionConfig) URL() string {
	if c.DSN != "" {
		return c.DSN
	}
	switch c.Type {
	case TypeMySQL:
		charset := c.Charset
		if charset == "" {
			charset = "utf8mb4"
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=UTC&timeout=%s&readTimeout=%s&writeTimeout=%s",
			c.User, c.Pass, c.Host, c.Port, c.DBName, charset,
			c.ConnectTimeout, c.ReadTimeout, c.WriteTimeout)
	case TypePostgres, "postgresql", TypePgx:
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Pass),
			Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
			Path:     c.DBName,
			RawQuery: fmt.Sprintf("sslmode=%s&connect_timeout=%d", sslMode, int(c.ConnectTimeout.Seconds())),
		}
		return u.String()
	case TypeSQLite, "sqlite3":
		return fmt.Sprintf("%s.db", c.DBName)
	default:
		return ""
	}
}
