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
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Error kinds. Every failure returned by a repository matches exactly one of
// these through errors.Is, except a request for an operation the catalog does
// not hold, which carries catalog.ErrUnknownOperation as its kind.
var (
	ErrConnection          = errors.New("connection error")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrQuery               = errors.New("query error")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrNoRowsAffected      = errors.New("no rows affected")
)

// OperationError ties a failure to the catalog key that produced it.
type OperationError struct {
	Kind      error
	Entity    string
	Operation string
	Err       error
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s.%s: %v", e.Entity, e.Operation, e.Kind)
	}
	return fmt.Sprintf("%s.%s: %v: %v", e.Entity, e.Operation, e.Kind, e.Err)
}

func (e *OperationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// WrapError classifies err and attaches the entity/operation key. Errors that
// already carry a kind keep it.
func WrapError(entity, operation string, err error) error {
	if err == nil {
		return nil
	}
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return err
	}
	return &OperationError{
		Kind:      Classify(err),
		Entity:    entity,
		Operation: operation,
		Err:       err,
	}
}

// NewOperationError builds an OperationError of a known kind.
func NewOperationError(kind error, entity, operation string, err error) *OperationError {
	return &OperationError{Kind: kind, Entity: entity, Operation: operation, Err: err}
}

type SQLError int

const (
	UnknownErr SQLError = iota
	NoRowsErr
	NoIndexErr
	NoColumnErr
	ExistIndexErr
	ExistColumnErr
	NoTableErr
	ExistTableErr
	DuplicateKeyErr
	NotNullViolationErr
	ForeignKeyViolationErr
	CheckConstraintViolationErr
	DataTruncatedErr
	InvalidTypeCastErr
	ConnectionErr
	AuthenticationErr
)

var sqlErrorNames = map[SQLError]string{
	UnknownErr:                  "unknown",
	NoRowsErr:                   "no_rows",
	NoIndexErr:                  "no_index",
	NoColumnErr:                 "no_column",
	ExistIndexErr:               "exist_index",
	ExistColumnErr:              "exist_column",
	NoTableErr:                  "no_table",
	ExistTableErr:               "exist_table",
	DuplicateKeyErr:             "duplicate_key",
	NotNullViolationErr:         "not_null_violation",
	ForeignKeyViolationErr:      "foreign_key_violation",
	CheckConstraintViolationErr: "check_violation",
	DataTruncatedErr:            "data_truncated",
	InvalidTypeCastErr:          "invalid_type_cast",
	ConnectionErr:               "connection",
	AuthenticationErr:           "authentication",
}

func (s SQLError) String() string {
	if name, ok := sqlErrorNames[s]; ok {
		return name
	}
	return fmt.Sprintf("sql_error(%d)", int(s))
}

// KindOf maps a classified code to its error kind.
func KindOf(code SQLError) error {
	switch code {
	case DuplicateKeyErr, NotNullViolationErr, ForeignKeyViolationErr, CheckConstraintViolationErr:
		return ErrConstraintViolation
	case ConnectionErr, AuthenticationErr:
		return ErrConnection
	default:
		return ErrQuery
	}
}

// Classify returns the error kind for any error raised while acquiring a
// connection or running a statement.
func Classify(err error) error {
	for _, kind := range []error{ErrConnection, ErrConstraintViolation, ErrQuery, ErrInvalidArgument, ErrNoRowsAffected} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	if isConnectionFailure(err) {
		return ErrConnection
	}
	_, code := IsSqlError(err)
	return KindOf(code)
}

func isConnectionFailure(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "connection refused") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "database is closed") ||
		strings.Contains(s, "unable to open database file") ||
		strings.Contains(s, "unknown driver")
}

// IsSqlError reports whether err was raised by the engine and which code it
// carries. Driver error types are inspected first, then the message text.
func IsSqlError(err error) (is bool, sqlErr SQLError) {
	if err == nil {
		return false, UnknownErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return true, NoRowsErr
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1091:
			return true, NoIndexErr
		case 1054:
			return true, NoColumnErr
		case 1061:
			return true, ExistIndexErr
		case 1060:
			return true, ExistColumnErr
		case 1146:
			return true, NoTableErr
		case 1050:
			return true, ExistTableErr
		case 1062:
			return true, DuplicateKeyErr
		case 1048:
			return true, NotNullViolationErr
		case 1216, 1217, 1451, 1452:
			return true, ForeignKeyViolationErr
		case 3819:
			return true, CheckConstraintViolationErr
		case 1265, 1406:
			return true, DataTruncatedErr
		case 1045, 1044:
			return true, AuthenticationErr
		case 1040, 1053:
			return true, ConnectionErr
		default:
			return true, UnknownErr
		}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return true, fromSQLState(string(pqErr.Code))
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return true, fromSQLState(pgErr.Code)
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "sqlstate 42703") ||
		strings.Contains(s, "undefined column") ||
		strings.Contains(s, "no such column") {
		return true, NoColumnErr
	}
	if strings.Contains(s, "sqlstate 42704") ||
		strings.Contains(s, "no such index") ||
		(strings.Contains(s, "does not exist") && strings.Contains(s, "index")) {
		return true, NoIndexErr
	}
	if strings.Contains(s, "sqlstate 42p01") ||
		strings.Contains(s, "undefined table") ||
		strings.Contains(s, "no such table") {
		return true, NoTableErr
	}
	if strings.Contains(s, "already exists") && strings.Contains(s, "index") {
		return true, ExistIndexErr
	}
	if strings.Contains(s, "already exists") && (strings.Contains(s, "table") || strings.Contains(s, "relation")) {
		return true, ExistTableErr
	}
	if strings.Contains(s, "duplicate key value") ||
		strings.Contains(s, "unique constraint failed") ||
		strings.Contains(s, "primary key must be unique") ||
		strings.Contains(s, "sqlstate 23505") {
		return true, DuplicateKeyErr
	}
	if strings.Contains(s, "not-null constraint") ||
		strings.Contains(s, "sqlstate 23502") ||
		strings.Contains(s, "not null constraint failed") {
		return true, NotNullViolationErr
	}
	if strings.Contains(s, "foreign key violation") ||
		strings.Contains(s, "foreign key constraint failed") ||
		strings.Contains(s, "sqlstate 23503") {
		return true, ForeignKeyViolationErr
	}
	if strings.Contains(s, "check constraint") ||
		strings.Contains(s, "sqlstate 23514") {
		return true, CheckConstraintViolationErr
	}
	if strings.Contains(s, "string data right truncation") ||
		strings.Contains(s, "sqlstate 22001") ||
		strings.Contains(s, "data truncated") {
		return true, DataTruncatedErr
	}
	if strings.Contains(s, "datatype mismatch") ||
		strings.Contains(s, "sqlstate 42804") {
		return true, InvalidTypeCastErr
	}
	if strings.Contains(s, "password authentication failed") ||
		strings.Contains(s, "access denied for user") {
		return true, AuthenticationErr
	}
	return false, UnknownErr
}

func fromSQLState(code string) SQLError {
	switch {
	case code == "23505":
		return DuplicateKeyErr
	case code == "23502":
		return NotNullViolationErr
	case code == "23503":
		return ForeignKeyViolationErr
	case code == "23514":
		return CheckConstraintViolationErr
	case code == "22001":
		return DataTruncatedErr
	case code == "42804":
		return InvalidTypeCastErr
	case code == "42703":
		return NoColumnErr
	case code == "42704":
		return NoIndexErr
	case code == "42P01":
		return NoTableErr
	case code == "42P07":
		return ExistTableErr
	case code == "42701":
		return ExistColumnErr
	case code == "53300" || code == "57P01" || strings.HasPrefix(code, "08"):
		return ConnectionErr
	case strings.HasPrefix(code, "28"):
		return AuthenticationErr
	default:
		return UnknownErr
	}
}
