/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage manages the per-directory embedded SQLite index at
// <dir>/.scriptgraph/index.sqlite. The index records parse history (one row
// per successful parse) and full script snapshots, giving writers local
// change tracking. It is derived data: rebuildable and disposable, never
// the canonical copy of a script.
package storage
