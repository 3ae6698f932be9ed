package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	tableKV           = "kv"
	tableLLMEvents    = "llm_events"
	tableRewardEvents = "reward_events"
)

// builder emits SQLite-flavored statements.
var builder = entsql.Dialect(dialect.SQLite)

// ddl creates missing tables. Columns are only ever added, never altered,
// so CREATE TABLE IF NOT EXISTS is sufficient.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS ` + tableKV + ` (
		key        TEXT    NOT NULL PRIMARY KEY,
		value      TEXT    NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ` + tableLLMEvents + ` (
		sequence      INTEGER NOT NULL PRIMARY KEY,
		timestamp     INTEGER NOT NULL,
		provider      TEXT    NOT NULL DEFAULT '',
		model         TEXT    NOT NULL DEFAULT '',
		purpose       TEXT    NOT NULL DEFAULT '',
		lesson_id     TEXT    NOT NULL DEFAULT '',
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL DEFAULT 0,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_events_purpose ON ` + tableLLMEvents + ` (purpose)`,
	`CREATE TABLE IF NOT EXISTS ` + tableRewardEvents + ` (
		sequence    INTEGER NOT NULL PRIMARY KEY,
		timestamp   INTEGER NOT NULL,
		kind        TEXT    NOT NULL,
		lesson_id   TEXT    NOT NULL DEFAULT '',
		exercise_id TEXT    NOT NULL DEFAULT '',
		session_id  TEXT    NOT NULL DEFAULT '',
		xp          INTEGER NOT NULL DEFAULT 0,
		words       INTEGER NOT NULL DEFAULT 0
	)`,
}

// migrate runs the DDL through the ent driver.
func migrate(ctx context.Context, drv dialect.Driver) error {
	for _, stmt := range ddl {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
