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

// SyntaxError reports a malformed block. Parsing stops at the first syntax
// error; no partial node list is returned. The raw block text is carried
// verbatim so the writer can locate it in the source file.
type SyntaxError struct {
	Reason string
	Block  []string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s in block:\n%s", e.Reason, strings.Join(e.Block, "\n"))
}

// ResolveError reports a redirect whose target section cannot be resolved.
// Redirects can only target sections that appear later in the file; a name
// that never appears, or appears only earlier, is fatal for the parse.
type ResolveError struct {
	Section string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("no later section named %q could be found", e.Section)
}
