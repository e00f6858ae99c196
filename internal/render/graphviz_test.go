/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

func TestRendererDefaults(t *testing.T) {
	r := &Renderer{}
	if r.binary() != "dot" {
		t.Fatalf("binary = %q, want dot", r.binary())
	}
	if r.format() != "png" {
		t.Fatalf("format = %q, want png", r.format())
	}
	if r.timeout() != DefaultTimeout {
		t.Fatalf("timeout = %v, want %v", r.timeout(), DefaultTimeout)
	}
}

func TestAvailableMissingBinary(t *testing.T) {
	r := &Renderer{Binary: "definitely-not-a-real-binary-xyz"}
	if r.Available() {
		t.Fatalf("expected Available to be false for bogus binary")
	}
}

func TestRenderFileMissingBinary(t *testing.T) {
	r := &Renderer{Binary: "definitely-not-a-real-binary-xyz"}
	err := r.RenderFile(context.Background(), "in.dot", "out.png")
	if err == nil {
		t.Fatalf("expected error for missing binary")
	}
}

func TestRenderProducesImage(t *testing.T) {
	if _, err := exec.LookPath("dot"); err != nil {
		t.Skip("graphviz dot not installed; skipping render test")
	}
	dir := t.TempDir()
	out := filepath.Join(dir, "g.png")

	r := NewRenderer()
	err := r.Render(context.Background(), "digraph G { a -> b; }", out)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("output file is empty")
	}
}

func TestRenderBadDotSource(t *testing.T) {
	if _, err := exec.LookPath("dot"); err != nil {
		t.Skip("graphviz dot not installed; skipping render test")
	}
	dir := t.TempDir()
	out := filepath.Join(dir, "g.png")

	r := NewRenderer()
	r.Timeout = 10 * time.Second
	if err := r.Render(context.Background(), "this is not dot source {", out); err == nil {
		t.Fatalf("expected error for invalid dot source")
	}
}
