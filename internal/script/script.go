/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package script parses the scriptgraph dialogue language into a linked
// graph of typed nodes and renders it as Graphviz dot text and as a JSON
// document for a runtime.
//
// A script file is a sequence of named sections. Inside a section, each
// block is one of:
//
//	Speaker: a line of dialogue, indented continuation lines allowed
//	*** Speaker: a choice option, optionally followed by --> Section
//	--> Section, redirecting the previous node to a later section
//	<<{ key = value }>>, setting a runtime variable
//	# comment
//
// Parsing is a pure computation: text in, node list out. Each call to
// Parse produces an independent result with fresh identifiers; nothing is
// shared across invocations.
package script

import (
	"fmt"
	"strings"
)

// Script is the result of one successful parse: the node list in document
// order with all next links resolved, plus the distinct speaker names in
// order of first appearance.
type Script struct {
	Nodes    []*Node
	Speakers []string
}

// Parser converts script text into a Script. The zero value is not usable;
// call NewParser. A Parser holds no state between Parse calls and may be
// reused for any number of files.
type Parser struct {
	// WrapWidth is the maximum characters per rendered line of dialogue
	// text. Zero means DefaultWrapWidth.
	WrapWidth int

	// NewIDs returns an identifier generator for one parse run. Overridable
	// so tests can pin identifiers; nil selects a per-run counter.
	NewIDs func() func() string
}

// NewParser returns a Parser with the default wrap width.
func NewParser() *Parser {
	return &Parser{WrapWidth: DefaultWrapWidth}
}

// parseRun carries the per-invocation state: the identifier generator, the
// section-title to first-node-id map filled as sections are linked, and the
// speaker set. A fresh run is made for every Parse call so no container is
// ever shared between invocations.
type parseRun struct {
	wrap     int
	newID    func() string
	sections map[string]string
	speakers map[string]struct{}
}

func (r *parseRun) addSpeaker(name string) {
	if name != "" {
		r.speakers[name] = struct{}{}
	}
}

// Parse tokenizes, classifies and links the given script text.
//
// Linking consumes sections in reverse document order, and blocks within a
// section tail to head, so that every node's default successor (the node
// after it in forward order) is already built when the node is linked, and
// so that section redirects can resolve against sections later in the file.
// A forward-only pass cannot do this: a node's successor is unknown until
// the rest of its section has been read.
//
// On any syntax or resolution error Parse returns a nil Script; partial
// results are never exposed.
func (p *Parser) Parse(text string) (*Script, error) {
	run := &parseRun{
		wrap:     p.WrapWidth,
		sections: make(map[string]string),
		speakers: make(map[string]struct{}),
	}
	if run.wrap <= 0 {
		run.wrap = DefaultWrapWidth
	}
	if p.NewIDs != nil {
		run.newID = p.NewIDs()
	} else {
		run.newID = sequentialIDs()
	}

	sections := parseSections(splitLines(text))

	var acc []*Node // reverse document order
	pending := ""   // successor forced by a redirect block, already resolved

	for si := len(sections) - 1; si >= 0; si-- {
		sec := sections[si]
		blocks := parseBlocks(sec.lines)
		added := false

		for bi := len(blocks) - 1; bi >= 0; bi-- {
			node, nextSection, err := run.classifyBlock(blocks[bi], sec.title)
			if err != nil {
				return nil, err
			}
			if node != nil {
				switch {
				case pending != "":
					node.NextID = pending
				case len(acc) > 0:
					node.NextID = acc[len(acc)-1].ID
				default:
					// terminal node of the whole script
				}
				acc = append(acc, node)
				added = true
			}
			// A redirect only ever applies to the block directly before it
			// in forward order, so pending never survives past one step.
			pending = ""
			if nextSection != "" {
				id, ok := run.sections[nextSection]
				if !ok {
					return nil, &ResolveError{Section: nextSection}
				}
				pending = id
			}
		}

		// The last node added while walking this section backward is the
		// section's first node in forward order; that is what redirects
		// into the section target. Empty sections get no entry.
		if added {
			run.sections[sec.title] = acc[len(acc)-1].ID
		}
	}

	nodes := make([]*Node, len(acc))
	for i, n := range acc {
		nodes[len(acc)-1-i] = n
	}
	return &Script{Nodes: nodes, Speakers: speakerOrder(nodes, run.speakers)}, nil
}

// sequentialIDs returns the default identifier generator: a monotonically
// increasing counter scoped to one parse run. Identifiers are opaque; only
// uniqueness within a run is guaranteed.
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("n%04d", n)
	}
}

// speakerOrder fixes the speaker set into document order: nodes are built
// back to front, so first appearance can only be decided after linking.
func speakerOrder(nodes []*Node, set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	seen := make(map[string]struct{}, len(set))
	add := func(name string) {
		if _, ok := set[name]; !ok {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	for _, n := range nodes {
		add(n.Speaker)
		for _, opt := range n.Options {
			add(opt.Speaker)
		}
	}
	return out
}

// splitLines splits on newlines and strips trailing carriage returns so
// Windows-edited scripts tokenize the same as Unix ones.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
