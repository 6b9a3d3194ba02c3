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

package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedTemplate is returned by Compile for text it cannot translate.
var ErrMalformedTemplate = errors.New("malformed template")

// Compile translates :name placeholders into the positional ? placeholders
// bun formats, returning the names in the order they appear. A name may
// appear more than once. Quoted literals and identifiers are copied as is,
// and "::" is kept for PostgreSQL casts. A literal ? anywhere in the text is
// rejected because bun would treat it as a placeholder.
func Compile(text string) (string, []string, error) {
	var (
		b      strings.Builder
		params []string
	)
	b.Grow(len(text))

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			end := skipQuoted(text, i)
			if end < 0 {
				return "", nil, fmt.Errorf("%w: unterminated %c at offset %d", ErrMalformedTemplate, c, i)
			}
			lit := text[i:end]
			if strings.IndexByte(lit, '?') >= 0 {
				return "", nil, fmt.Errorf("%w: '?' inside literal at offset %d", ErrMalformedTemplate, i)
			}
			b.WriteString(lit)
			i = end
		case c == '?':
			return "", nil, fmt.Errorf("%w: positional placeholder at offset %d", ErrMalformedTemplate, i)
		case c == ':':
			if i+1 < len(text) && text[i+1] == ':' {
				b.WriteString("::")
				i += 2
				continue
			}
			j := i + 1
			for j < len(text) && isIdentByte(text[j], j == i+1) {
				j++
			}
			if j == i+1 {
				return "", nil, fmt.Errorf("%w: empty placeholder name at offset %d", ErrMalformedTemplate, i)
			}
			params = append(params, text[i+1:j])
			b.WriteByte('?')
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), params, nil
}

// skipQuoted returns the offset just past the literal opened at text[start],
// treating a doubled quote as an escaped one, or -1 if it never closes.
func skipQuoted(text string, start int) int {
	q := text[start]
	for i := start + 1; i < len(text); i++ {
		if text[i] != q {
			continue
		}
		if i+1 < len(text) && text[i+1] == q {
			i++
			continue
		}
		return i + 1
	}
	return -1
}

func isIdentByte(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}
