/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package watch monitors a directory of dialogue script files and regenerates
// their outputs whenever a script changes.
//
// Each script file produces three sibling outputs: the JSON document, the dot
// graph, and (when Graphviz is installed and rendering is enabled) a PNG of
// the graph. Subdirectories are watched recursively, and the root watcher
// additionally maintains a master JSON file next to the watched directory
// that collects every script's document keyed by its first two speakers.
package watch

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scriptgraph/internal/config"
	applog "scriptgraph/internal/log"
	"scriptgraph/internal/render"
	"scriptgraph/internal/script"
	"scriptgraph/internal/storage"
	"scriptgraph/internal/telemetry"
)

// Watcher polls a directory for changed script files. Configure the exported
// fields before the first Sweep or Run call; they must not change afterwards.
type Watcher struct {
	// Dir is the directory holding the script files.
	Dir string
	// Interval is the polling interval for Run. Defaults to 5 seconds.
	Interval time.Duration
	// WrapWidth is the dialogue re-wrap width passed to the parser.
	WrapWidth int
	// Extension selects which files are scripts. Defaults to ".s2g".
	Extension string
	// Render enables PNG generation through Graphviz.
	Render bool
	// Strict validates every emitted document against the dialogue schema
	// before writing it.
	Strict bool
	// Renderer is the Graphviz runner used when Render is set. Defaults to
	// render.NewRenderer().
	Renderer *render.Renderer
	// DB, when non-nil, records parse history and script snapshots in the
	// per-directory index.
	DB *sql.DB

	parser *script.Parser
	log    *slog.Logger

	modTimes map[string]time.Time
	pairs    map[string]map[string]json.RawMessage
	subs     map[string]*Watcher
}

// New returns a Watcher for dir with settings taken from cfg.
func New(dir string, cfg config.WatchConfig) *Watcher {
	return &Watcher{
		Dir:       dir,
		Interval:  time.Duration(cfg.IntervalSec) * time.Second,
		WrapWidth: cfg.WrapWidth,
		Extension: cfg.Extension,
		Render:    cfg.Render,
	}
}

func (w *Watcher) init() {
	if w.modTimes != nil {
		return
	}
	w.modTimes = make(map[string]time.Time)
	w.pairs = make(map[string]map[string]json.RawMessage)
	w.subs = make(map[string]*Watcher)
	w.parser = script.NewParser()
	if w.WrapWidth > 0 {
		w.parser.WrapWidth = w.WrapWidth
	}
	if w.Renderer == nil {
		w.Renderer = render.NewRenderer()
	}
	w.log = applog.WithComponent("watch").With(slog.String("dir", w.Dir))
}

func (w *Watcher) extension() string {
	if w.Extension == "" {
		return ".s2g"
	}
	return w.Extension
}

func (w *Watcher) interval() time.Duration {
	if w.Interval <= 0 {
		return 5 * time.Second
	}
	return w.Interval
}

// Run polls the directory until ctx is cancelled. Script errors are logged
// and the loop keeps going; only a cancelled context stops it.
func (w *Watcher) Run(ctx context.Context) error {
	w.init()
	w.log.Info("watching", slog.String("ext", w.extension()),
		slog.Duration("interval", w.interval()))

	ticker := time.NewTicker(w.interval())
	defer ticker.Stop()

	for {
		updated, err := w.Sweep(ctx)
		if err != nil {
			w.log.Warn("sweep finished with errors", slog.Any("err", err))
		}
		if updated {
			if err := w.WriteMaster(); err != nil {
				w.log.Error("master output not updated", slog.Any("err", err))
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Sweep scans the directory once, reprocessing every new or modified script
// file and recursing into subdirectories. It reports whether anything was
// reprocessed; the returned error joins all per-file failures.
func (w *Watcher) Sweep(ctx context.Context) (bool, error) {
	w.init()

	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return false, fmt.Errorf("read dir %s: %w", w.Dir, err)
	}

	updated := false
	var errs []error
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(w.Dir, name)

		if entry.IsDir() {
			sub, ok := w.subs[name]
			if !ok {
				sub = &Watcher{
					Dir:       path,
					WrapWidth: w.WrapWidth,
					Extension: w.Extension,
					Render:    w.Render,
					Strict:    w.Strict,
					Renderer:  w.Renderer,
					DB:        w.DB,
				}
				w.subs[name] = sub
			}
			subUpdated, err := sub.Sweep(ctx)
			if err != nil {
				errs = append(errs, err)
			}
			if subUpdated {
				updated = true
			}
			continue
		}

		if !strings.HasSuffix(strings.ToLower(name), w.extension()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			errs = append(errs, fmt.Errorf("stat %s: %w", path, err))
			continue
		}
		if prev, ok := w.modTimes[path]; ok && prev.Equal(info.ModTime()) {
			continue
		}
		w.modTimes[path] = info.ModTime()

		if err := w.processFile(ctx, path); err != nil {
			errs = append(errs, err)
			continue
		}
		updated = true
	}
	return updated, errors.Join(errs...)
}

// processFile parses one script and writes its JSON, dot and PNG outputs.
func (w *Watcher) processFile(ctx context.Context, path string) error {
	l := applog.WithOperation(w.log, "process").With(slog.String("file", path))

	data, err := os.ReadFile(path)
	if err != nil {
		l.Error("read failed", slog.Any("err", err))
		return fmt.Errorf("read %s: %w", path, err)
	}
	s, err := w.parser.Parse(string(data))
	if err != nil {
		l.Error("parse failed", slog.Any("err", err))
		telemetry.Event("parse_fail", map[string]any{"reason": errKind(err)})
		return fmt.Errorf("parse %s: %w", path, err)
	}

	doc, err := s.ToJSON()
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if w.Strict {
		if err := script.ValidateDocument(doc); err != nil {
			l.Error("document rejected", slog.Any("err", err))
			return fmt.Errorf("validate %s: %w", path, err)
		}
	}

	base := strings.TrimSuffix(path, filepath.Ext(path))
	if err := os.WriteFile(base+".json", doc, 0o644); err != nil {
		l.Error("json output not updated", slog.Any("err", err))
		return fmt.Errorf("write json for %s: %w", path, err)
	}
	dotPath := base + ".dot"
	if err := os.WriteFile(dotPath, []byte(s.ToDot()), 0o644); err != nil {
		l.Error("dot output not updated", slog.Any("err", err))
		return fmt.Errorf("write dot for %s: %w", path, err)
	}
	if w.Render && w.Renderer.Available() {
		if err := w.Renderer.RenderFile(ctx, dotPath, base+".png"); err != nil {
			// A broken Graphviz install should not stop the loop; the dot
			// and JSON outputs are still fresh.
			l.Warn("graph output not updated", slog.Any("err", err))
			telemetry.Event("render_fail", nil)
		}
	}

	w.updateMaster(s, doc)
	w.recordHistory(ctx, path, s, string(data))
	telemetry.Event("parse_ok", map[string]any{"nodes": len(s.Nodes)})
	l.Info("outputs updated", slog.Int("nodes", len(s.Nodes)),
		slog.Int("speakers", len(s.Speakers)))
	return nil
}

// updateMaster files the document under its first two speakers. A monologue
// uses the same speaker for both keys.
func (w *Watcher) updateMaster(s *script.Script, doc []byte) {
	if len(s.Speakers) == 0 {
		return
	}
	first := s.Speakers[0]
	second := first
	if len(s.Speakers) > 1 {
		second = s.Speakers[1]
	}
	if w.pairs[first] == nil {
		w.pairs[first] = make(map[string]json.RawMessage)
	}
	w.pairs[first][second] = json.RawMessage(doc)
}

func (w *Watcher) recordHistory(ctx context.Context, path string, s *script.Script, text string) {
	if w.DB == nil {
		return
	}
	rel := path
	if r, err := filepath.Rel(w.Dir, path); err == nil {
		rel = r
	}
	now := time.Now()
	if err := storage.RecordParse(ctx, w.DB, rel, len(s.Nodes), s.Speakers, now); err != nil {
		w.log.Warn("parse history not recorded", slog.Any("err", err))
	}
	if err := storage.SaveSnapshot(ctx, w.DB, rel, text, now); err != nil {
		w.log.Warn("snapshot not saved", slog.Any("err", err))
		return
	}
	if err := storage.PruneSnapshots(ctx, w.DB, rel, 0); err != nil {
		w.log.Warn("snapshot prune failed", slog.Any("err", err))
	}
}

// MasterData returns the accumulated master document: speaker-pair entries
// from this directory plus one nested object per subdirectory.
func (w *Watcher) MasterData() map[string]any {
	w.init()
	out := make(map[string]any, len(w.pairs)+len(w.subs))
	for first, m := range w.pairs {
		out[first] = m
	}
	for name, sub := range w.subs {
		out[name] = sub.MasterData()
	}
	return out
}

// WriteMaster writes the master JSON file next to the watched directory,
// named after it with a .json suffix.
func (w *Watcher) WriteMaster() error {
	w.init()
	path := strings.TrimSuffix(w.Dir, string(filepath.Separator)) + ".json"
	data, err := json.MarshalIndent(w.MasterData(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode master: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write master %s: %w", path, err)
	}
	w.log.Info("master output updated", slog.String("file", path))
	return nil
}

func errKind(err error) string {
	var syn *script.SyntaxError
	var res *script.ResolveError
	switch {
	case errors.As(err, &syn):
		return "syntax"
	case errors.As(err, &res):
		return "resolve"
	default:
		return "other"
	}
}
