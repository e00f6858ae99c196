/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "strings"

// section is one titled run of raw lines.
//
// In the source, a line starting with "---" closes a title line (the line
// immediately above it) and opens the section body; a line starting with
// "===" closes the body.
type section struct {
	title string
	lines []string
}

// parseSections splits the raw script lines into sections, preserving the
// order the markers appear in. Section titles need not be unique: a
// recurring title replaces the earlier occurrence's content in place, so the
// title keeps its first position but carries the later body.
func parseSections(lines []string) []section {
	var out []section
	index := make(map[string]int)

	title := ""
	start := -1
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "---"):
			if i > 0 {
				title = strings.TrimSpace(lines[i-1])
			}
			start = i + 1
		case strings.HasPrefix(line, "==="):
			if start < 0 {
				continue // stray terminator without an opener
			}
			body := lines[start:i]
			if at, ok := index[title]; ok {
				out[at].lines = body
			} else {
				index[title] = len(out)
				out = append(out, section{title: title, lines: body})
			}
			title = ""
			start = -1
		}
	}
	return out
}

// parseBlocks splits a section body into blocks, each block an ordered list
// of raw lines forming one syntactic unit.
//
// The scan runs tail to head: blank lines and comment lines (first non-space
// character '#') are dropped, indented lines continue the block being
// accumulated, and a non-indented line closes it. Consecutive blocks that
// both start with "***" merge into one block, because a single choice node
// can span several option lines. The returned blocks are in forward
// document order.
func parseBlocks(lines []string) [][]string {
	var blocks [][]string // built in reverse document order
	var block []string    // accumulated tail-first

	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "#"):
			continue
		case line[0] == ' ' || line[0] == '\t':
			block = append(block, line)
		default:
			block = append(block, line)
			reverseLines(block)
			if last := len(blocks) - 1; last >= 0 &&
				strings.HasPrefix(block[0], "***") && strings.HasPrefix(blocks[last][0], "***") {
				blocks[last] = append(block, blocks[last]...)
			} else {
				blocks = append(blocks, block)
			}
			block = nil
		}
	}
	// A leftover accumulation means the section opened with indented lines;
	// those have no block to belong to and are dropped, like comments.

	for i, j := 0, len(blocks)-1; i < j; i, j = i+1, j-1 {
		blocks[i], blocks[j] = blocks[j], blocks[i]
	}
	return blocks
}

func reverseLines(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
