/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"scriptgraph/internal/config"
	applog "scriptgraph/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "scriptgraph",
	Short: "scriptgraph turns dialogue scripts into node graphs",
	Long: `scriptgraph parses branching dialogue scripts into a linked node graph
and emits the graph as JSON documents and Graphviz dot files.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("dir", "d", ".", "Directory containing the script files")
	rootCmd.PersistentFlags().IntP("wrap", "w", 0, "Maximum length of a line of dialogue text")
	rootCmd.PersistentFlags().String("ext", "", "Script file extension")
	rootCmd.PersistentFlags().Bool("render", true, "Render dot output to PNG with Graphviz")
}

// watchSettings resolves the effective watch configuration: stored config
// plus env overrides, with changed flags taking precedence.
func watchSettings(cmd *cobra.Command) config.WatchConfig {
	cfg, err := config.Load()
	if err != nil {
		applog.WithComponent("cli").Warn("config not loaded, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}
	w := cfg.Watch

	if cmd.Flags().Changed("wrap") {
		if v, err := cmd.Flags().GetInt("wrap"); err == nil && v > 0 {
			w.WrapWidth = v
		}
	}
	if cmd.Flags().Changed("ext") {
		if v, err := cmd.Flags().GetString("ext"); err == nil && v != "" {
			w.Extension = v
		}
	}
	if cmd.Flags().Changed("render") {
		if v, err := cmd.Flags().GetBool("render"); err == nil {
			w.Render = v
		}
	}
	if cmd.Flags().Changed("interval") {
		if v, err := cmd.Flags().GetInt("interval"); err == nil && v > 0 {
			w.IntervalSec = v
		}
	}
	return w
}
