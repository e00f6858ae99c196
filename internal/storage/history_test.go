/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestInitOrOpenIndexCreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	db, err := InitOrOpenIndex(dir)
	if err != nil {
		t.Fatalf("InitOrOpenIndex error: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := os.Stat(IndexPath(dir)); err != nil {
		t.Fatalf("index file missing: %v", err)
	}

	var schema int
	if err := db.QueryRow(`SELECT schema FROM version WHERE id=1`).Scan(&schema); err != nil {
		t.Fatalf("read schema version: %v", err)
	}
	if schema != schemaVersion {
		t.Fatalf("schema = %d, want %d", schema, schemaVersion)
	}
}

func TestInitOrOpenIndexRequiresDir(t *testing.T) {
	if _, err := InitOrOpenIndex("  "); err == nil {
		t.Fatalf("expected error for empty directory")
	}
}

func TestRecordAndListParses(t *testing.T) {
	dir := t.TempDir()
	db, err := InitOrOpenIndex(dir)
	if err != nil {
		t.Fatalf("InitOrOpenIndex error: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := RecordParse(ctx, db, "intro.s2g", 4+i, []string{"Ann", "Bob"}, base.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("RecordParse error: %v", err)
		}
	}
	if err := RecordParse(ctx, db, "other.s2g", 1, []string{"Cara"}, base); err != nil {
		t.Fatalf("RecordParse error: %v", err)
	}

	recs, err := ListParses(ctx, db, "intro.s2g", 10)
	if err != nil {
		t.Fatalf("ListParses error: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	// Newest first.
	if recs[0].NodeCount != 6 || recs[2].NodeCount != 4 {
		t.Fatalf("unexpected ordering: %+v", recs)
	}
	if len(recs[0].Speakers) != 2 || recs[0].Speakers[0] != "Ann" {
		t.Fatalf("speakers not round-tripped: %+v", recs[0])
	}
}

func TestSnapshotSaveLatestPrune(t *testing.T) {
	dir := t.TempDir()
	db, err := InitOrOpenIndex(dir)
	if err != nil {
		t.Fatalf("InitOrOpenIndex error: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		text := string(rune('a' + i))
		if err := SaveSnapshot(ctx, db, "intro.s2g", text, base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("SaveSnapshot error: %v", err)
		}
	}

	txt, ts, err := LatestSnapshot(ctx, db, "intro.s2g")
	if err != nil {
		t.Fatalf("LatestSnapshot error: %v", err)
	}
	if txt != "e" {
		t.Fatalf("latest snapshot = %q, want %q", txt, "e")
	}
	if !ts.Equal(base.Add(4 * time.Second)) {
		t.Fatalf("unexpected timestamp: %v", ts)
	}

	if err := PruneSnapshots(ctx, db, "intro.s2g", 2); err != nil {
		t.Fatalf("PruneSnapshots error: %v", err)
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM script_snapshots WHERE file='intro.s2g'`).Scan(&n); err != nil {
		t.Fatalf("count snapshots: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 snapshots after prune, got %d", n)
	}
}

func TestLatestSnapshotEmpty(t *testing.T) {
	dir := t.TempDir()
	db, err := InitOrOpenIndex(dir)
	if err != nil {
		t.Fatalf("InitOrOpenIndex error: %v", err)
	}
	defer func() { _ = db.Close() }()

	txt, ts, err := LatestSnapshot(context.Background(), db, "missing.s2g")
	if err != nil {
		t.Fatalf("LatestSnapshot error: %v", err)
	}
	if txt != "" || !ts.IsZero() {
		t.Fatalf("expected empty result, got %q %v", txt, ts)
	}
}
