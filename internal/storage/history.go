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
	"database/sql"
	"strings"
	"time"
)

// language=SQL
// dialect=SQLite
const insertParseSQL = `INSERT INTO parses(ts, file, node_count, speakers) VALUES (?, ?, ?, ?)`

// language=SQL
// dialect=SQLite
const listParsesSQL = `SELECT ts, file, node_count, speakers FROM parses WHERE file = ? ORDER BY ts DESC LIMIT ?`

// language=SQL
// dialect=SQLite
const insertSnapshotSQL = `INSERT INTO script_snapshots(ts, file, text) VALUES (?, ?, ?)`

// language=SQL
// dialect=SQLite
const selectLatestSnapshotSQL = `SELECT ts, text FROM script_snapshots WHERE file = ? ORDER BY ts DESC LIMIT 1`

// language=SQL
// dialect=SQLite
const pruneOldSnapshotsSQL = `DELETE FROM script_snapshots WHERE file = ? AND id NOT IN (
	SELECT id FROM script_snapshots WHERE file = ? ORDER BY ts DESC LIMIT ?
)`

// ParseRecord is one row of parse history for a script file.
type ParseRecord struct {
	TS        time.Time
	File      string
	NodeCount int
	Speakers  []string
}

// RecordParse appends one parse-history row for a script file.
func RecordParse(ctx context.Context, db *sql.DB, file string, nodeCount int, speakers []string, ts time.Time) error {
	_, err := db.ExecContext(ctx, insertParseSQL,
		ts.UTC().Format(time.RFC3339Nano), file, nodeCount, strings.Join(speakers, ","))
	return err
}

// ListParses returns up to limit most recent parse records for a file,
// newest first.
func ListParses(ctx context.Context, db *sql.DB, file string, limit int) ([]ParseRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx, listParsesSQL, file, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []ParseRecord
	for rows.Next() {
		var tsStr, f, spk string
		var count int
		if err := rows.Scan(&tsStr, &f, &count, &spk); err != nil {
			return nil, err
		}
		rec := ParseRecord{File: f, NodeCount: count}
		if ts, err := time.Parse(time.RFC3339Nano, tsStr); err == nil {
			rec.TS = ts
		}
		if spk != "" {
			rec.Speakers = strings.Split(spk, ",")
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SaveSnapshot persists a script's full text with a timestamp. The index is
// ephemeral and derived; this history is change tracking for the writer,
// not canonical storage.
func SaveSnapshot(ctx context.Context, db *sql.DB, file, text string, ts time.Time) error {
	_, err := db.ExecContext(ctx, insertSnapshotSQL, ts.UTC().Format(time.RFC3339Nano), file, text)
	return err
}

// LatestSnapshot returns the most recent snapshot text and timestamp for a
// file, or empty values if none exists.
func LatestSnapshot(ctx context.Context, db *sql.DB, file string) (string, time.Time, error) {
	var tsStr, txt string
	err := db.QueryRowContext(ctx, selectLatestSnapshotSQL, file).Scan(&tsStr, &txt)
	if err == sql.ErrNoRows {
		return "", time.Time{}, nil
	}
	if err != nil {
		return "", time.Time{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, tsStr)
	if err != nil {
		return txt, time.Time{}, nil
	}
	return txt, ts, nil
}

// PruneSnapshots keeps the most recent keep snapshots for a file and
// deletes the rest.
func PruneSnapshots(ctx context.Context, db *sql.DB, file string, keep int) error {
	if keep <= 0 {
		keep = 10
	}
	_, err := db.ExecContext(ctx, pruneOldSnapshotsSQL, file, file, keep)
	return err
}
