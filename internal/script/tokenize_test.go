/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"strings"
	"testing"
)

func TestParseSectionsBasic(t *testing.T) {
	src := `Intro
---
Ann: Hello.
===
Outro
---
Bob: Bye.
===`
	secs := parseSections(splitLines(src))
	if len(secs) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(secs))
	}
	if secs[0].title != "Intro" || secs[1].title != "Outro" {
		t.Fatalf("unexpected titles: %q, %q", secs[0].title, secs[1].title)
	}
	if len(secs[0].lines) != 1 || secs[0].lines[0] != "Ann: Hello." {
		t.Fatalf("unexpected Intro body: %#v", secs[0].lines)
	}
}

func TestParseSectionsDuplicateTitleReplacesInPlace(t *testing.T) {
	src := `A
---
Ann: First version.
===
B
---
Bob: Middle.
===
A
---
Ann: Second version.
===`
	secs := parseSections(splitLines(src))
	if len(secs) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(secs))
	}
	// A keeps its first position but carries the later content.
	if secs[0].title != "A" || secs[1].title != "B" {
		t.Fatalf("unexpected order: %q, %q", secs[0].title, secs[1].title)
	}
	if secs[0].lines[0] != "Ann: Second version." {
		t.Fatalf("duplicate title content not replaced: %#v", secs[0].lines)
	}
}

func TestParseSectionsIgnoresTextOutsideMarkers(t *testing.T) {
	src := `leading noise
Intro
---
Ann: Hello.
===
trailing noise`
	secs := parseSections(splitLines(src))
	if len(secs) != 1 || secs[0].title != "Intro" {
		t.Fatalf("unexpected sections: %#v", secs)
	}
}

func TestParseBlocksSkipsBlanksAndComments(t *testing.T) {
	body := []string{
		"# a comment",
		"Ann: Hello.",
		"",
		"   # indented comment",
		"Bob: Hi.",
	}
	blocks := parseBlocks(body)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %#v", len(blocks), blocks)
	}
	if blocks[0][0] != "Ann: Hello." || blocks[1][0] != "Bob: Hi." {
		t.Fatalf("unexpected blocks: %#v", blocks)
	}
}

func TestParseBlocksIndentationContinuation(t *testing.T) {
	body := []string{
		"Ann: A long line",
		"    that keeps going",
		"Bob: Short.",
	}
	blocks := parseBlocks(body)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if len(blocks[0]) != 2 {
		t.Fatalf("expected 2 lines in first block, got %#v", blocks[0])
	}
	if blocks[0][1] != "    that keeps going" {
		t.Fatalf("continuation lost: %#v", blocks[0])
	}
}

func TestParseBlocksMergesConsecutiveChoices(t *testing.T) {
	body := []string{
		"*** Ann: Go left",
		"    --> West",
		"*** Ann: Go right",
		"*** Ann: Stay put",
	}
	blocks := parseBlocks(body)
	if len(blocks) != 1 {
		t.Fatalf("expected choice lines to merge into 1 block, got %d: %#v", len(blocks), blocks)
	}
	joined := strings.Join(blocks[0], "\n")
	for _, want := range []string{"Go left", "West", "Go right", "Stay put"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("merged block missing %q: %q", want, joined)
		}
	}
	// Document order must survive the tail-to-head scan.
	if blocks[0][0] != "*** Ann: Go left" || blocks[0][len(blocks[0])-1] != "*** Ann: Stay put" {
		t.Fatalf("merged block out of order: %#v", blocks[0])
	}
}

func TestParseBlocksChoiceRunBrokenByLine(t *testing.T) {
	body := []string{
		"*** Ann: Go left",
		"Bob: Wait.",
		"*** Ann: Go right",
	}
	blocks := parseBlocks(body)
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d: %#v", len(blocks), blocks)
	}
}

func TestParseBlocksEmptySection(t *testing.T) {
	if blocks := parseBlocks(nil); len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %#v", blocks)
	}
	if blocks := parseBlocks([]string{"", "# only a comment"}); len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %#v", blocks)
	}
}
