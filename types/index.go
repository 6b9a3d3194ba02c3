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
	"errors"
	"fmt"
)

// ErrCycle reports a parent/manager chain that reaches its own start.
var ErrCycle = errors.New("hierarchy cycle")

// Index is an arena of self-referencing records keyed by id. Parent links are
// stored as id values, never as pointers between records.
type Index[T any] struct {
	nodes    map[int64]*T
	parent   map[int64]int64
	children map[int64][]int64
	order    []int64
}

// NewIndex builds an index from items. parentOf returns false for records
// without a parent. Items keep their input order among siblings.
func NewIndex[T any](items []*T, idOf func(*T) int64, parentOf func(*T) (int64, bool)) *Index[T] {
	ix := &Index[T]{
		nodes:    make(map[int64]*T, len(items)),
		parent:   make(map[int64]int64),
		children: make(map[int64][]int64),
		order:    make([]int64, 0, len(items)),
	}
	for _, item := range items {
		id := idOf(item)
		if _, dup := ix.nodes[id]; dup {
			continue
		}
		ix.nodes[id] = item
		ix.order = append(ix.order, id)
		if pid, ok := parentOf(item); ok {
			ix.parent[id] = pid
		}
	}
	for _, id := range ix.order {
		if pid, ok := ix.parent[id]; ok {
			ix.children[pid] = append(ix.children[pid], id)
		}
	}
	return ix
}

// Len returns the number of records.
func (ix *Index[T]) Len() int { return len(ix.order) }

// Get returns the record with id.
func (ix *Index[T]) Get(id int64) (*T, bool) {
	n, ok := ix.nodes[id]
	return n, ok
}

// Parent returns the parent record, if the parent is present in the index.
func (ix *Index[T]) Parent(id int64) (*T, bool) {
	pid, ok := ix.parent[id]
	if !ok {
		return nil, false
	}
	return ix.Get(pid)
}

// Children returns the direct children of id.
func (ix *Index[T]) Children(id int64) []*T {
	ids := ix.children[id]
	out := make([]*T, 0, len(ids))
	for _, cid := range ids {
		out = append(out, ix.nodes[cid])
	}
	return out
}

// Roots returns records with no parent, or whose parent is not indexed.
func (ix *Index[T]) Roots() []*T {
	var out []*T
	for _, id := range ix.order {
		pid, ok := ix.parent[id]
		if !ok {
			out = append(out, ix.nodes[id])
			continue
		}
		if _, present := ix.nodes[pid]; !present {
			out = append(out, ix.nodes[id])
		}
	}
	return out
}

// Ancestors returns the chain above id, nearest first.
func (ix *Index[T]) Ancestors(id int64) ([]*T, error) {
	var out []*T
	seen := map[int64]bool{id: true}
	cur := id
	for {
		pid, ok := ix.parent[cur]
		if !ok {
			return out, nil
		}
		if seen[pid] {
			return out, fmt.Errorf("%w: %d reached again from %d", ErrCycle, pid, id)
		}
		p, present := ix.nodes[pid]
		if !present {
			return out, nil
		}
		seen[pid] = true
		out = append(out, p)
		cur = pid
	}
}

// Walk visits every record reachable from the roots depth-first, parents
// before children. Records on a cycle are not reachable from a root and are
// skipped.
func (ix *Index[T]) Walk(fn func(node *T, depth int)) {
	visited := make(map[int64]bool, len(ix.order))
	var visit func(id int64, depth int)
	visit = func(id int64, depth int) {
		if visited[id] {
			return
		}
		visited[id] = true
		fn(ix.nodes[id], depth)
		for _, cid := range ix.children[id] {
			visit(cid, depth+1)
		}
	}
	for _, id := range ix.order {
		pid, ok := ix.parent[id]
		if !ok {
			visit(id, 0)
			continue
		}
		if _, present := ix.nodes[pid]; !present {
			visit(id, 0)
		}
	}
}
