/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// NodeType tags a Node with its variant. The set is closed: every node in a
// parsed script is exactly one of line, choice or setter.
type NodeType string

const (
	TypeLine   NodeType = "line"
	TypeChoice NodeType = "choice"
	TypeSetter NodeType = "setter"
)

// DefaultWrapWidth is the maximum characters per rendered line of dialogue
// text when no explicit width is configured.
const DefaultWrapWidth = 80

// Option is one selectable entry of a choice node.
// NextID is empty when the option falls through to the node following the
// choice block instead of jumping to a named section.
type Option struct {
	Speaker string
	Text    string
	NextID  string
}

// Node is the graph-level unit of dialogue flow.
//
// Node is a closed tagged union: Type selects which of the variant field
// groups below are meaningful. Shared identity and linkage live directly on
// the struct; serialization switches on Type instead of using interface
// dispatch.
//
// ID is opaque and unique only within a single parse run. NextID is empty
// for the terminal node of the whole script. Section names the enclosing
// section and is used for grouping in the rendered graph only.
type Node struct {
	ID      string
	Type    NodeType
	NextID  string
	Section string

	// Line
	Speaker string
	Text    string

	// Choice
	Options []Option

	// Setter. Value is one of string, int64 or bool, decided by
	// coerceValue.
	Key   string
	Value any
}

// coerceValue applies the literal coercion rules for setter values:
// integer first, then case-insensitive true/false, otherwise the trimmed
// string as-is.
func coerceValue(s string) any {
	t := strings.TrimSpace(s)
	if n, err := strconv.ParseInt(t, 10, 64); err == nil {
		return n
	}
	if strings.EqualFold(t, "true") {
		return true
	}
	if strings.EqualFold(t, "false") {
		return false
	}
	return t
}

// cleanWrap normalizes a block of dialogue text and re-wraps it.
//
// Internal line breaks and whitespace runs collapse to single spaces, then
// the resulting paragraph is greedily wrapped so no produced line exceeds
// width characters. Breaks happen only at whitespace; a single word longer
// than width stands alone on its own (overlong) line rather than being cut.
// Pure function of (text, width).
func cleanWrap(text string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		n := utf8.RuneCountInString(w)
		switch {
		case i == 0:
			// first word always starts the first line
		case lineLen+1+n > width:
			b.WriteByte('\n')
			lineLen = 0
		default:
			b.WriteByte(' ')
			lineLen++
		}
		b.WriteString(w)
		lineLen += n
	}
	return b.String()
}
