/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"scriptgraph/internal/config"
	"scriptgraph/internal/crash"
	applog "scriptgraph/internal/log"
	"scriptgraph/internal/telemetry"
)

// scriptDir is set by commands that operate on a directory so the crash
// handler can drop its report next to the directory's index.
var scriptDir string

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	defer func() { crash.Recover(scriptDir) }()

	// The stored config can opt in to telemetry; env vars still win.
	if cfg, err := config.Load(); err == nil && cfg.General.TelemetryOptIn {
		tc := telemetry.FromEnv()
		tc.OptIn = true
		telemetry.NewDefault(tc)
	}

	Execute()
}
