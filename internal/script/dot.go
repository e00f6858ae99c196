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
)

// ToDot renders the node list as a Graphviz digraph.
//
// Consecutive nodes sharing a section become one labeled subgraph cluster.
// Grouping is by run, not by section identity: two non-adjacent runs of the
// same section name yield two clusters, matching document order. Each node
// contributes one edge per next link; choice nodes contribute one edge per
// option, labeled with the option's ordinal, targeting the option's own next
// node or, for fall-through options, the choice's successor. An option with
// neither target gets no edge, the same as a plain terminal node.
func (s *Script) ToDot() string {
	var b strings.Builder
	b.WriteString("digraph G {\n")

	cluster := 0
	for i := 0; i < len(s.Nodes); {
		j := i
		for j < len(s.Nodes) && s.Nodes[j].Section == s.Nodes[i].Section {
			j++
		}
		fmt.Fprintf(&b, "subgraph cluster_%d {\n", cluster)
		fmt.Fprintf(&b, "label = %s;\n", dotQuote(s.Nodes[i].Section))
		for _, n := range s.Nodes[i:j] {
			b.WriteString(n.dotStatement())
			b.WriteByte('\n')
		}
		b.WriteString("}\n")
		cluster++
		i = j
	}

	for _, n := range s.Nodes {
		if n.Type == TypeChoice {
			for k, opt := range n.Options {
				target := opt.NextID
				if target == "" {
					target = n.NextID
				}
				if target == "" {
					continue
				}
				fmt.Fprintf(&b, "%s -> %s [label=%d];\n", n.ID, target, k)
			}
			continue
		}
		if n.NextID != "" {
			fmt.Fprintf(&b, "%s -> %s;\n", n.ID, n.NextID)
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// dotStatement declares one node with its type-specific shape and label.
func (n *Node) dotStatement() string {
	switch n.Type {
	case TypeLine:
		return fmt.Sprintf("%s [label=%s, shape=box];", n.ID, dotQuote(n.Speaker+"\n"+n.Text))
	case TypeChoice:
		parts := make([]string, 0, len(n.Options)+1)
		parts = append(parts, "Choice")
		for i, opt := range n.Options {
			parts = append(parts, fmt.Sprintf("%d. %s", i, opt.Text))
		}
		return fmt.Sprintf("%s [label=%s, shape=diamond];", n.ID, dotQuote(strings.Join(parts, "\n")))
	case TypeSetter:
		return fmt.Sprintf("%s [label=%s, shape=ellipse];", n.ID, dotQuote(fmt.Sprintf("Set\n%s = %v", n.Key, n.Value)))
	}
	return n.ID + ";"
}

// dotQuote renders a double-quoted dot string. Newlines become the dot
// escape \n so wrapped dialogue stays inside one label.
func dotQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
