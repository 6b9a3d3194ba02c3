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

package types

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Row is one report row keyed by column name. Values keep the driver type,
// the getters convert the common ones.
type Row map[string]interface{}

// Rows converts scanned maps into Rows.
func Rows(maps []map[string]interface{}) []Row {
	rows := make([]Row, len(maps))
	for i, m := range maps {
		rows[i] = Row(m)
	}
	return rows
}

// Has reports whether the column is present and not NULL.
func (r Row) Has(col string) bool {
	v, ok := r[col]
	return ok && v != nil
}

// String returns the column as text, or "" for NULL.
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// Int64 returns the column as an integer, or 0 for NULL or non-numeric text.
func (r Row) Int64(col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

// Decimal returns the column as a fixed-point value, or zero for NULL.
func (r Row) Decimal(col string) decimal.Decimal {
	switch v := r[col].(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return v
	case int64:
		return decimal.NewFromInt(v)
	case float64:
		return decimal.NewFromFloat(v)
	case []byte:
		d, _ := decimal.NewFromString(string(v))
		return d
	case string:
		d, _ := decimal.NewFromString(v)
		return d
	default:
		d, _ := decimal.NewFromString(fmt.Sprint(v))
		return d
	}
}

// Time returns the column as a timestamp, or the zero time.
func (r Row) Time(col string) time.Time {
	switch v := r[col].(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05.999999999-07:00", time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}
