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

// Grouped is one row of a GROUP BY aggregate. Templates alias the grouping
// expression as group_key and the aggregate as group_value.
type Grouped[K comparable, V any] struct {
	Key   K `bun:"group_key"`
	Value V `bun:"group_value"`
}

// GroupedMap flattens rows into a map. Later rows win on duplicate keys.
func GroupedMap[K comparable, V any](rows []Grouped[K, V]) map[K]V {
	m := make(map[K]V, len(rows))
	for _, r := range rows {
		m[r.Key] = r.Value
	}
	return m
}
