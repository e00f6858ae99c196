/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	_ "embed"
	"fmt"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

// dialogueSchema is the published contract for the JSON output. Runtimes
// consuming the documents validate against the same file.
//
//go:embed dialogue.schema.json
var dialogueSchema []byte

// ValidateDocument checks serialized JSON output against the dialogue
// document schema. Used by tests and by the watcher's strict mode before a
// document is written out.
func ValidateDocument(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(dialogueSchema)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("document does not conform to schema: %s", strings.Join(msgs, "; "))
	}
	return nil
}
