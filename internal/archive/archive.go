// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package archive persists fetched chat logs to a local SQLite database
// so they survive a remote clear.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/folio-tui/internal/api"
)

// ErrClosed is returned when the store is used after Close.
var ErrClosed = errors.New("archive store is closed")

const schema = `
CREATE TABLE IF NOT EXISTS chat_logs (
	id             TEXT PRIMARY KEY,
	session_id     TEXT NOT NULL,
	user_query     TEXT NOT NULL,
	final_response TEXT NOT NULL,
	tools_used     TEXT NOT NULL DEFAULT '[]',
	modal_actions  TEXT,
	suggestions    TEXT,
	timestamp      TIMESTAMP NOT NULL,
	response_time  REAL NOT NULL DEFAULT 0,
	user_ip        TEXT,
	user_agent     TEXT,
	archived_at    TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chat_logs_session ON chat_logs(session_id);
CREATE INDEX IF NOT EXISTS idx_chat_logs_timestamp ON chat_logs(timestamp DESC);
`

// Store is a local archive of backend chat logs.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the archive database at the given path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("archive path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	// SQLite supports a single writer; keep the pool at one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Save upserts a batch of logs. Already-archived entries are replaced,
// so re-archiving after a refresh is idempotent.
func (s *Store) Save(ctx context.Context, logs []api.DetailedChatLog) (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	if len(logs) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO chat_logs
		(id, session_id, user_query, final_response, tools_used,
		 modal_actions, suggestions, timestamp, response_time,
		 user_ip, user_agent, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	saved := 0
	for _, entry := range logs {
		tools, err := json.Marshal(entry.ToolsUsed)
		if err != nil {
			return saved, fmt.Errorf("failed to encode tools for log %s: %w", entry.ID, err)
		}
		actions := marshalOptional(entry.ModalActions)
		suggestions := marshalOptional(entry.Suggestions)

		if _, err := stmt.ExecContext(ctx,
			entry.ID, entry.SessionID, entry.UserQuery, entry.FinalResponse,
			string(tools), actions, suggestions,
			entry.Timestamp.UTC(), entry.ResponseTime,
			entry.UserIP, entry.UserAgent, now,
		); err != nil {
			return saved, fmt.Errorf("failed to insert log %s: %w", entry.ID, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return saved, nil
}

// marshalOptional keeps the nil / empty distinction: nil slices archive
// as NULL, anything else as JSON.
func marshalOptional(v any) any {
	switch val := v.(type) {
	case []api.ModalAction:
		if val == nil {
			return nil
		}
	case []string:
		if val == nil {
			return nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return string(data)
}

// Count reports how many logs are archived.
func (s *Store) Count(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_logs`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count logs: %w", err)
	}
	return n, nil
}

// Recent returns the newest archived logs, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]api.DetailedChatLog, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, user_query, final_response, tools_used,
		       modal_actions, suggestions, timestamp, response_time,
		       user_ip, user_agent
		FROM chat_logs
		ORDER BY timestamp DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	var logs []api.DetailedChatLog
	for rows.Next() {
		var (
			entry       api.DetailedChatLog
			tools       string
			actions     sql.NullString
			suggestions sql.NullString
			ts          time.Time
			ip, agent   sql.NullString
		)
		if err := rows.Scan(
			&entry.ID, &entry.SessionID, &entry.UserQuery, &entry.FinalResponse,
			&tools, &actions, &suggestions, &ts, &entry.ResponseTime,
			&ip, &agent,
		); err != nil {
			return nil, fmt.Errorf("failed to scan log row: %w", err)
		}

		entry.ToolsUsed = []api.ToolResult{}
		if tools != "" {
			_ = json.Unmarshal([]byte(tools), &entry.ToolsUsed)
		}
		if actions.Valid {
			_ = json.Unmarshal([]byte(actions.String), &entry.ModalActions)
		}
		if suggestions.Valid {
			_ = json.Unmarshal([]byte(suggestions.String), &entry.Suggestions)
		}
		entry.Timestamp = ts
		entry.UserIP = ip.String
		entry.UserAgent = agent.String

		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
