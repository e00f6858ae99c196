/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	applog "scriptgraph/internal/log"
	"scriptgraph/internal/storage"
	"scriptgraph/internal/watch"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Regenerate all graph outputs once and exit",
	Long: `Processes every script file in the directory once, writing the JSON,
dot and PNG outputs plus the master JSON, then exits. Any script that fails
to parse makes the command exit non-zero.`,
	Run: func(cmd *cobra.Command, args []string) {
		l := applog.WithComponent("cli")
		dir, _ := cmd.Flags().GetString("dir")
		abs, err := filepath.Abs(dir)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		scriptDir = abs

		w := watch.New(abs, watchSettings(cmd))
		w.Strict, _ = cmd.Flags().GetBool("strict")
		if db, err := storage.InitOrOpenIndex(abs); err != nil {
			l.Warn("index unavailable, history disabled", slog.Any("err", err))
		} else {
			w.DB = db
			defer func() { _ = db.Close() }()
		}

		updated, err := w.Sweep(context.Background())
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		if !updated {
			fmt.Println("No script files found.")
			return
		}
		if err := w.WriteMaster(); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Println("Outputs updated.")
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().Bool("strict", false, "Validate emitted documents against the dialogue schema")
}
