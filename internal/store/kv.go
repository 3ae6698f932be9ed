package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// SQLiteKV is a string key-value table inside the learner database.
type SQLiteKV struct {
	db *sql.DB
}

// Get returns the value stored under key. ok is false when the key is
// absent.
func (kv *SQLiteKV) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	query, args := builder.Select("value").
		From(builder.Table(tableKV)).
		Where(entsql.EQ("key", key)).
		Query()

	err = kv.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (kv *SQLiteKV) Set(ctx context.Context, key, value string) error {
	query, args := builder.Insert(tableKV).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UnixNano()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := kv.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (kv *SQLiteKV) Delete(ctx context.Context, key string) error {
	query, args := builder.Delete(tableKV).
		Where(entsql.EQ("key", key)).
		Query()

	if _, err := kv.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
