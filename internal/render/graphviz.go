/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render turns dot text into images by invoking the Graphviz
// command-line tools.
package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	applog "scriptgraph/internal/log"
)

// DefaultTimeout bounds a single dot invocation. Graphs produced from
// dialogue scripts are small; anything slower than this is stuck.
const DefaultTimeout = 30 * time.Second

// Renderer invokes the Graphviz dot binary to produce image files from
// dot source. The zero value is not usable; call NewRenderer.
type Renderer struct {
	// Binary is the dot executable name or path. Defaults to "dot".
	Binary string
	// Format is the output format passed as -T. Defaults to "png".
	Format string
	// Timeout bounds a single invocation. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// NewRenderer returns a Renderer with default binary, format and timeout.
func NewRenderer() *Renderer {
	return &Renderer{Binary: "dot", Format: "png", Timeout: DefaultTimeout}
}

// Available reports whether the dot binary can be found on PATH.
func (r *Renderer) Available() bool {
	_, err := exec.LookPath(r.binary())
	return err == nil
}

// RenderFile runs dot over an existing dot file and writes the image to
// outPath, equivalent to `dot -Tpng in.dot -o out.png`.
func (r *Renderer) RenderFile(ctx context.Context, dotPath, outPath string) error {
	l := applog.WithOperation(applog.WithComponent("render"), "graphviz").With(
		slog.String("in", dotPath),
		slog.String("out", outPath),
	)

	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, r.binary(), "-T"+r.format(), dotPath, "-o", outPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		l.Error("dot failed", slog.Any("err", err), slog.String("stderr", msg))
		if msg != "" {
			return fmt.Errorf("graphviz: %w: %s", err, msg)
		}
		return fmt.Errorf("graphviz: %w", err)
	}
	l.Debug("rendered", slog.Duration("took", time.Since(start)))
	return nil
}

// Render writes dot source to a temporary file next to outPath and renders
// it. Useful when the caller has the dot text in memory only.
func (r *Renderer) Render(ctx context.Context, dot string, outPath string) error {
	tmp, err := os.CreateTemp("", "scriptgraph-*.dot")
	if err != nil {
		return fmt.Errorf("graphviz: temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(dot); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("graphviz: write dot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("graphviz: close dot: %w", err)
	}
	return r.RenderFile(ctx, tmp.Name(), outPath)
}

func (r *Renderer) binary() string {
	if r.Binary == "" {
		return "dot"
	}
	return r.Binary
}

func (r *Renderer) format() string {
	if r.Format == "" {
		return "png"
	}
	return r.Format
}

func (r *Renderer) timeout() time.Duration {
	if r.Timeout <= 0 {
		return DefaultTimeout
	}
	return r.Timeout
}
