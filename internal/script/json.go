/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"encoding/json"
	"fmt"
)

// Document is the JSON payload handed to a runtime.
//
// FirstNode is omitted for an empty script. Each node object carries the
// shared id/type/next_id fields plus its tag-specific fields; next_id is
// omitted on the terminal node.
type Document struct {
	Speakers  []string   `json:"speakers"`
	FirstNode string     `json:"first_node,omitempty"`
	Nodes     []jsonNode `json:"nodes"`
}

// Document builds the JSON representation of the script.
func (s *Script) Document() Document {
	doc := Document{
		Speakers: make([]string, 0, len(s.Speakers)),
		Nodes:    make([]jsonNode, 0, len(s.Nodes)),
	}
	doc.Speakers = append(doc.Speakers, s.Speakers...)
	if len(s.Nodes) > 0 {
		doc.FirstNode = s.Nodes[0].ID
	}
	for _, n := range s.Nodes {
		doc.Nodes = append(doc.Nodes, jsonNode{n})
	}
	return doc
}

// ToJSON renders the script as an indented JSON document.
func (s *Script) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s.Document(), "", "  ")
}

// jsonNode marshals a Node with its tag-dependent shape.
type jsonNode struct {
	*Node
}

type jsonShared struct {
	ID     string   `json:"id"`
	Type   NodeType `json:"type"`
	NextID string   `json:"next_id,omitempty"`
}

type jsonOption struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
	NextID  string `json:"next_id,omitempty"`
}

func (j jsonNode) MarshalJSON() ([]byte, error) {
	shared := jsonShared{ID: j.ID, Type: j.Type, NextID: j.NextID}
	switch j.Type {
	case TypeLine:
		return json.Marshal(struct {
			jsonShared
			Speaker string `json:"speaker"`
			Text    string `json:"text"`
		}{shared, j.Speaker, j.Text})

	case TypeChoice:
		choices := make([]jsonOption, 0, len(j.Options))
		for _, opt := range j.Options {
			choices = append(choices, jsonOption{Speaker: opt.Speaker, Text: opt.Text, NextID: opt.NextID})
		}
		return json.Marshal(struct {
			jsonShared
			Choices []jsonOption `json:"choices"`
		}{shared, choices})

	case TypeSetter:
		return json.Marshal(struct {
			jsonShared
			Key   string `json:"key"`
			Value any    `json:"value"`
		}{shared, j.Key, j.Value})
	}
	return nil, fmt.Errorf("unknown node type %q", j.Type)
}
