/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"fmt"
	"strings"
	"testing"
)

func TestToDotClustersAndEdges(t *testing.T) {
	s := mustParse(t, `Intro
---
Ann: Hello.
Bob: Hi.
===
Outro
---
Ann: Bye.
===`)
	dot := s.ToDot()

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Fatalf("missing digraph header: %q", dot)
	}
	if !strings.Contains(dot, "subgraph cluster_0 {") || !strings.Contains(dot, "subgraph cluster_1 {") {
		t.Fatalf("expected two clusters:\n%s", dot)
	}
	if !strings.Contains(dot, `label = "Intro";`) || !strings.Contains(dot, `label = "Outro";`) {
		t.Fatalf("missing cluster labels:\n%s", dot)
	}
	for i := 0; i < 2; i++ {
		edge := fmt.Sprintf("%s -> %s;", s.Nodes[i].ID, s.Nodes[i+1].ID)
		if !strings.Contains(dot, edge) {
			t.Fatalf("missing edge %q:\n%s", edge, dot)
		}
	}
	// Terminal node contributes no edge.
	if strings.Contains(dot, s.Nodes[2].ID+" -> ") {
		t.Fatalf("terminal node has an outgoing edge:\n%s", dot)
	}
}

func TestToDotNonAdjacentSectionRunsGetSeparateClusters(t *testing.T) {
	s := mustParse(t, `A
---
Ann: One.
===
B
---
Bob: Two.
===`)
	// Fake a run split by rewriting sections on the parsed nodes: grouping
	// is by consecutive run, not global section identity.
	s.Nodes[0].Section = "X"
	s.Nodes[1].Section = "X"
	extra := *s.Nodes[0]
	extra.ID = "extra1"
	extra.NextID = ""
	extra.Section = "Y"
	s.Nodes[1].NextID = extra.ID
	withRun := &Script{Nodes: []*Node{s.Nodes[0], &extra, s.Nodes[1]}, Speakers: s.Speakers}
	dot := withRun.ToDot()
	if !strings.Contains(dot, "subgraph cluster_2 {") {
		t.Fatalf("expected three clusters for X,Y,X runs:\n%s", dot)
	}
}

func TestToDotShapesPerType(t *testing.T) {
	s := mustParse(t, `Scene
---
Ann: Talk.
*** Ann: Pick me
<<{ k = 1 }>>
===`)
	dot := s.ToDot()
	if !strings.Contains(dot, "shape=box") {
		t.Fatalf("line node missing box shape:\n%s", dot)
	}
	if !strings.Contains(dot, "shape=diamond") {
		t.Fatalf("choice node missing diamond shape:\n%s", dot)
	}
	if !strings.Contains(dot, "shape=ellipse") {
		t.Fatalf("setter node missing ellipse shape:\n%s", dot)
	}
}

func TestToDotChoiceEdgesLabeledByOrdinal(t *testing.T) {
	s := mustParse(t, `Crossroads
---
*** Ann: Left
    --> West
*** Ann: Right
===
West
---
Bob: West.
===`)
	choice := s.Nodes[0]
	west := s.Nodes[1]
	dot := s.ToDot()
	if !strings.Contains(dot, fmt.Sprintf("%s -> %s [label=0];", choice.ID, west.ID)) {
		t.Fatalf("redirected option edge missing:\n%s", dot)
	}
	// The fall-through option follows the choice's own successor.
	if !strings.Contains(dot, fmt.Sprintf("%s -> %s [label=1];", choice.ID, west.ID)) {
		t.Fatalf("fall-through option edge missing:\n%s", dot)
	}
}

func TestToDotTerminalChoiceOptionGetsNoEdge(t *testing.T) {
	s := mustParse(t, `Scene
---
*** Ann: The only way out
===`)
	dot := s.ToDot()
	if strings.Contains(dot, "-> ") {
		t.Fatalf("terminal choice should render no edges:\n%s", dot)
	}
}

func TestDotQuoteEscapes(t *testing.T) {
	got := dotQuote("say \"hi\"\nback\\slash")
	want := `"say \"hi\"\nback\\slash"`
	if got != want {
		t.Fatalf("dotQuote = %s, want %s", got, want)
	}
}
