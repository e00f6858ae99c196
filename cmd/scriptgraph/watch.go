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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	applog "scriptgraph/internal/log"
	"scriptgraph/internal/storage"
	"scriptgraph/internal/watch"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory and regenerate graph outputs on change",
	Long: `Polls the script directory and regenerates the JSON, dot and PNG
outputs whenever a script file changes. Press CTRL-C to stop.`,
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

		fmt.Printf("scriptgraph watching %s...press CTRL-C to stop\n", abs)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().IntP("interval", "i", 0, "Seconds between checks for updated files")
	watchCmd.Flags().Bool("strict", false, "Validate emitted documents against the dialogue schema")
}
