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
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"scriptgraph/internal/export"
	"scriptgraph/internal/script"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <script-file>",
	Short: "Export a script as a transcript PDF",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		in := args[0]
		scriptDir = filepath.Dir(in)

		data, err := os.ReadFile(in)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}

		p := script.NewParser()
		if wrap, _ := cmd.Flags().GetInt("wrap"); wrap > 0 {
			p.WrapWidth = wrap
		}
		s, err := p.Parse(string(data))
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = strings.TrimSuffix(in, filepath.Ext(in)) + ".pdf"
		}
		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		}

		if err := export.WriteTranscriptPDF(s, out, export.PDFOptions{Title: title}); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Println("Wrote", out)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("out", "o", "", "Output PDF path (defaults to the script path with .pdf)")
	exportCmd.Flags().String("title", "", "Transcript title (defaults to the script file name)")
}
