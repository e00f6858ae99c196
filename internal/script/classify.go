/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "strings"

// classifyBlock maps one block to a node or a deferred section redirect.
// Exactly one of the two results is set on success. Dispatch is on the first
// three characters of the block's first line:
//
//	***  choice options, one per "***" line, "speaker: text"
//	-->  redirect: no node, the trimmed remainder is the target section
//	<<{  setter: a single "<<{ key = value }>>" line
//	else a dialogue line: "speaker: text", indented continuations joined
//
// Choice redirects resolve immediately against the section map, which at
// classification time holds only sections already linked (later in the
// file); an unknown name is a ResolveError.
func (r *parseRun) classifyBlock(block []string, sectionTitle string) (*Node, string, error) {
	first := block[0]
	switch {
	case strings.HasPrefix(first, "***"):
		return r.classifyChoice(block, sectionTitle)

	case strings.HasPrefix(first, "-->"):
		return nil, strings.TrimSpace(first[3:]), nil

	case strings.HasPrefix(first, "<<{"):
		return r.classifySetter(block, sectionTitle)

	default:
		return r.classifyLine(block, sectionTitle)
	}
}

func (r *parseRun) classifyChoice(block []string, sectionTitle string) (*Node, string, error) {
	var opts []Option

	for _, raw := range block {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "***"):
			speaker, text, ok := strings.Cut(line[3:], ":")
			if !ok {
				return nil, "", &SyntaxError{Reason: "choice option is missing a ':' separator", Block: block}
			}
			opts = append(opts, Option{
				Speaker: strings.TrimSpace(speaker),
				Text:    strings.TrimSpace(text),
			})

		case strings.HasPrefix(line, "-->"):
			if len(opts) == 0 {
				return nil, "", &SyntaxError{Reason: "redirect before any choice option", Block: block}
			}
			target := strings.TrimSpace(line[3:])
			id, ok := r.sections[target]
			if !ok {
				return nil, "", &ResolveError{Section: target}
			}
			opts[len(opts)-1].NextID = id

		default:
			// Continuation of the most recent option's text.
			if len(opts) == 0 {
				return nil, "", &SyntaxError{Reason: "continuation before any choice option", Block: block}
			}
			opts[len(opts)-1].Text += " " + line
		}
	}

	for i := range opts {
		r.addSpeaker(opts[i].Speaker)
		opts[i].Text = cleanWrap(opts[i].Text, r.wrap)
	}
	return &Node{ID: r.newID(), Type: TypeChoice, Section: sectionTitle, Options: opts}, "", nil
}

func (r *parseRun) classifySetter(block []string, sectionTitle string) (*Node, string, error) {
	if len(block) != 1 {
		return nil, "", &SyntaxError{Reason: "setter block must be a single line", Block: block}
	}
	line := strings.TrimSpace(block[0])
	if !strings.HasSuffix(line, "}>>") {
		return nil, "", &SyntaxError{Reason: "setter block must end with '}>>'", Block: block}
	}
	body := line[3 : len(line)-3]
	key, value, ok := strings.Cut(body, "=")
	if !ok {
		return nil, "", &SyntaxError{Reason: "setter is missing a '=' separator", Block: block}
	}
	return &Node{
		ID:      r.newID(),
		Type:    TypeSetter,
		Section: sectionTitle,
		Key:     strings.TrimSpace(key),
		Value:   coerceValue(value),
	}, "", nil
}

func (r *parseRun) classifyLine(block []string, sectionTitle string) (*Node, string, error) {
	speaker, text, ok := strings.Cut(strings.Join(block, "\n"), ":")
	if !ok {
		return nil, "", &SyntaxError{Reason: "line block is missing a ':' separator", Block: block}
	}
	speaker = strings.TrimSpace(speaker)
	r.addSpeaker(speaker)
	return &Node{
		ID:      r.newID(),
		Type:    TypeLine,
		Section: sectionTitle,
		Speaker: speaker,
		Text:    cleanWrap(text, r.wrap),
	}, "", nil
}
