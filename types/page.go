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

// ErrInvalidPage is returned for a negative offset or limit.
var ErrInvalidPage = errors.New("offset and limit must be non-negative")

// PageRequest is a window over an implicit ordering. The caller bounds Limit.
type PageRequest struct {
	Offset int
	Limit  int
}

// NewPageRequest constructs a PageRequest from an offset and a limit.
func NewPageRequest(offset, limit int) PageRequest {
	return PageRequest{Offset: offset, Limit: limit}
}

// NewNumberedPageRequest converts a 1-based page number and size to a window.
// Pages below 1 are treated as the first page.
func NewNumberedPageRequest(page, pageSize int) PageRequest {
	if page < 1 {
		page = 1
	}
	return PageRequest{Offset: (page - 1) * pageSize, Limit: pageSize}
}

// Validate rejects negative values.
func (p PageRequest) Validate() error {
	if p.Offset < 0 || p.Limit < 0 {
		return fmt.Errorf("%w: offset=%d limit=%d", ErrInvalidPage, p.Offset, p.Limit)
	}
	return nil
}

// Next returns the window immediately after p.
func (p PageRequest) Next() PageRequest {
	return PageRequest{Offset: p.Offset + p.Limit, Limit: p.Limit}
}

// Page holds one window of results.
type Page[T any] struct {
	Offset int
	Limit  int
	Items  []*T
}

// NewPage wraps items fetched for req.
func NewPage[T any](req PageRequest, items []*T) *Page[T] {
	if items == nil {
		items = make([]*T, 0)
	}
	return &Page[T]{Offset: req.Offset, Limit: req.Limit, Items: items}
}

// Len returns the number of items in the window.
func (p *Page[T]) Len() int { return len(p.Items) }

// Full reports whether the window was filled, i.e. another page may follow.
func (p *Page[T]) Full() bool { return p.Limit > 0 && len(p.Items) == p.Limit }
