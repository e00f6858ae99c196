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
	"unicode/utf8"
)

func TestCoerceValue(t *testing.T) {
	cases := []struct {
		in   string
		want any
	}{
		{"5", int64(5)},
		{" -12 ", int64(-12)},
		{"true", true},
		{"TRUE", true},
		{"False", false},
		{"hello", "hello"},
		{" spaced out ", "spaced out"},
		{"5x", "5x"},
		{"", ""},
	}
	for _, c := range cases {
		if got := coerceValue(c.in); got != c.want {
			t.Fatalf("coerceValue(%q) = %v (%T), want %v (%T)", c.in, got, got, c.want, c.want)
		}
	}
}

func TestCleanWrapCollapsesNewlines(t *testing.T) {
	in := "one\n    two\n\tthree"
	if got := cleanWrap(in, 80); got != "one two three" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestCleanWrapBreaksAtWidth(t *testing.T) {
	in := "aaa bbb ccc ddd"
	got := cleanWrap(in, 7)
	if got != "aaa bbb\nccc ddd" {
		t.Fatalf("unexpected wrap: %q", got)
	}
	for _, line := range strings.Split(got, "\n") {
		if utf8.RuneCountInString(line) > 7 {
			t.Fatalf("line %q exceeds width", line)
		}
	}
}

func TestCleanWrapNeverBreaksWords(t *testing.T) {
	in := "short supercalifragilistic short"
	got := cleanWrap(in, 10)
	for _, line := range strings.Split(got, "\n") {
		for _, w := range strings.Fields(line) {
			if !strings.Contains(in, w) {
				t.Fatalf("word %q was split", w)
			}
		}
	}
	// A word longer than the width stands alone on its own line.
	if !strings.Contains(got, "\nsupercalifragilistic\n") {
		t.Fatalf("overlong word not isolated: %q", got)
	}
}

func TestCleanWrapRoundTrip(t *testing.T) {
	// Rejoining with spaces undoes the wrap modulo whitespace
	// normalization.
	in := "The  quick\n   brown fox jumps over the lazy dog, again and again and again."
	cleaned := strings.Join(strings.Fields(in), " ")
	wrapped := cleanWrap(in, 20)
	if strings.ReplaceAll(wrapped, "\n", " ") != cleaned {
		t.Fatalf("round trip failed:\nwrapped: %q\ncleaned: %q", wrapped, cleaned)
	}
}

func TestCleanWrapEmpty(t *testing.T) {
	if got := cleanWrap("   \n  ", 80); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}
