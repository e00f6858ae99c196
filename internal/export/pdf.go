/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders parsed dialogue scripts into distributable formats.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"scriptgraph/internal/script"
)

// PDFOptions controls transcript PDF export behavior.
// Units are points (pt). We rely on built-in Helvetica for portability;
// font embedding can be added later using TTFs.
type PDFOptions struct {
	Title      string
	FontSize   float64 // body size, default 11pt
	LineHeight float64 // multiple of font size, default 1.5
	Margin     float64 // page margin in pt, default 56 (~2cm)
}

func (o PDFOptions) fontSize() float64 {
	if o.FontSize <= 0 {
		return 11
	}
	return o.FontSize
}

func (o PDFOptions) lineHeight() float64 {
	if o.LineHeight <= 0 {
		return 1.5
	}
	return o.LineHeight
}

func (o PDFOptions) margin() float64 {
	if o.Margin <= 0 {
		return 56
	}
	return o.Margin
}

// WriteTranscriptPDF lays the script out as a reading transcript and writes
// it to outPath. Dialogue is grouped by section; each choice node lists its
// numbered options and each setter is shown as a stage direction.
func WriteTranscriptPDF(s *script.Script, outPath string, opt PDFOptions) error {
	if s == nil {
		return fmt.Errorf("script is nil")
	}

	fsz := opt.fontSize()
	lh := fsz * opt.lineHeight()
	margin := opt.margin()

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	title := opt.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(outPath), filepath.Ext(outPath))
	}
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	textW := pageW - 2*margin

	// Title and speaker roster.
	pdf.SetFont("Helvetica", "B", fsz+5)
	pdf.MultiCell(textW, lh*1.2, title, "", "C", false)
	if len(s.Speakers) > 0 {
		pdf.SetFont("Helvetica", "I", fsz-1)
		pdf.MultiCell(textW, lh, "Speakers: "+strings.Join(s.Speakers, ", "), "", "C", false)
	}
	pdf.Ln(lh)

	section := ""
	for _, n := range s.Nodes {
		if n.Section != section {
			section = n.Section
			pdf.Ln(lh / 2)
			pdf.SetFont("Helvetica", "B", fsz+2)
			pdf.MultiCell(textW, lh, section, "", "L", false)
			pdf.Ln(lh / 4)
		}
		writeTranscriptNode(pdf, n, textW, fsz, lh)
	}

	if !filepath.IsAbs(outPath) {
		if abs, err := filepath.Abs(outPath); err == nil {
			outPath = abs
		}
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func writeTranscriptNode(pdf *gofpdf.Fpdf, n *script.Node, textW, fsz, lh float64) {
	switch n.Type {
	case script.TypeLine:
		pdf.SetFont("Helvetica", "B", fsz)
		pdf.MultiCell(textW, lh, n.Speaker, "", "L", false)
		pdf.SetFont("Helvetica", "", fsz)
		pdf.MultiCell(textW, lh, n.Text, "", "L", false)
		pdf.Ln(lh / 2)
	case script.TypeChoice:
		pdf.SetFont("Helvetica", "I", fsz)
		pdf.MultiCell(textW, lh, "Choice:", "", "L", false)
		pdf.SetFont("Helvetica", "", fsz)
		for i, opt := range n.Options {
			line := fmt.Sprintf("%d. %s: %s", i+1, opt.Speaker, opt.Text)
			pdf.MultiCell(textW-fsz, lh, line, "", "L", false)
		}
		pdf.Ln(lh / 2)
	case script.TypeSetter:
		pdf.SetFont("Helvetica", "I", fsz)
		pdf.MultiCell(textW, lh, fmt.Sprintf("[%s = %v]", n.Key, n.Value), "", "L", false)
		pdf.Ln(lh / 2)
	}
}
