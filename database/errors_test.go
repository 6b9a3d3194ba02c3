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
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, ErrConstraintViolation},
		{"mysql foreign key", &mysql.MySQLError{Number: 1452}, ErrConstraintViolation},
		{"mysql access denied", &mysql.MySQLError{Number: 1045}, ErrConnection},
		{"mysql missing table", &mysql.MySQLError{Number: 1146}, ErrQuery},
		{"mysql invalid conn", mysql.ErrInvalidConn, ErrConnection},
		{"pq unique", &pq.Error{Code: "23505"}, ErrConstraintViolation},
		{"pq not null", &pq.Error{Code: "23502"}, ErrConstraintViolation},
		{"pq connection failure", &pq.Error{Code: "08006"}, ErrConnection},
		{"pq auth", &pq.Error{Code: "28P01"}, ErrConnection},
		{"pq syntax", &pq.Error{Code: "42601"}, ErrQuery},
		{"pgx foreign key", &pgconn.PgError{Code: "23503"}, ErrConstraintViolation},
		{"pgx check", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23514"}), ErrConstraintViolation},
		{"pgx undefined column", &pgconn.PgError{Code: "42703"}, ErrQuery},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: customer.email (2067)"), ErrConstraintViolation},
		{"sqlite not null", errors.New("NOT NULL constraint failed: customer.email"), ErrConstraintViolation},
		{"sqlite missing table", errors.New("SQL logic error: no such table: shoes (1)"), ErrQuery},
		{"bad conn", driver.ErrBadConn, ErrConnection},
		{"conn done", sql.ErrConnDone, ErrConnection},
		{"dial", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}, ErrConnection},
		{"refused text", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), ErrConnection},
		{"canceled", context.Canceled, ErrQuery},
		{"already classified", fmt.Errorf("wrapped: %w", ErrInvalidArgument), ErrInvalidArgument},
		{"unknown", errors.New("something odd"), ErrQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, Classify(tt.err))
		})
	}
}

func TestIsSqlError(t *testing.T) {
	is, code := IsSqlError(sql.ErrNoRows)
	assert.True(t, is)
	assert.Equal(t, NoRowsErr, code)

	is, code = IsSqlError(&mysql.MySQLError{Number: 1050})
	assert.True(t, is)
	assert.Equal(t, ExistTableErr, code)

	is, code = IsSqlError(errors.New("relation \"customer\" already exists"))
	assert.True(t, is)
	assert.Equal(t, ExistTableErr, code)

	is, code = IsSqlError(nil)
	assert.False(t, is)
	assert.Equal(t, UnknownErr, code)

	assert.Equal(t, "duplicate_key", DuplicateKeyErr.String())
	assert.Equal(t, "sql_error(99)", SQLError(99).String())
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError("customer", "insert", nil))

	cause := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
	err := WrapError("customer", "insert", cause)
	require.ErrorIs(t, err, ErrConstraintViolation)

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "customer", opErr.Entity)
	assert.Equal(t, "insert", opErr.Operation)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, cause, pqErr)

	again := WrapError("order", "update", fmt.Errorf("retry: %w", err))
	require.ErrorAs(t, again, &opErr)
	assert.Equal(t, "customer", opErr.Entity)
}

func TestOperationError(t *testing.T) {
	err := NewOperationError(ErrNoRowsAffected, "product", "decrementStock", nil)
	assert.Equal(t, "product.decrementStock: no rows affected", err.Error())
	assert.ErrorIs(t, err, ErrNoRowsAffected)
	assert.NotErrorIs(t, err, ErrQuery)

	inner := errors.New("boom")
	err = NewOperationError(ErrQuery, "product", "findAll", inner)
	assert.Equal(t, "product.findAll: query error: boom", err.Error())
	assert.ErrorIs(t, err, inner)
}
