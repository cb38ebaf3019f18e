package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

var _ types.Table = (*itemsTable)(nil)

// itemsTable stores *types.ItemRecord values keyed by item id.
type itemsTable struct {
	backend *Backend
}

const selectItem = "SELECT item_id, type, name, created_at, updated_at FROM items"

// Get retrieves an item record by ID.
func (it *itemsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, release, err := it.backend.conn()
	if err != nil {
		return nil, err
	}
	defer release()

	rec, err := scanItem(db.QueryRow(selectItem+" WHERE item_id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting item %s: %w", id, err)
	}
	return rec, nil
}

// Set inserts or replaces an item record. When id is empty the record's
// ItemID is used, and when that is empty too a UUID v7 is generated.
// Zero timestamps are set to the current time.
func (it *itemsTable) Set(id string, data any) (string, error) {
	rec, ok := data.(*types.ItemRecord)
	if !ok || rec == nil {
		return "", types.ErrInvalidData
	}
	if rec.Type == "" {
		return "", fmt.Errorf("%w: item type is required", types.ErrInvalidData)
	}
	if id == "" {
		id = rec.ItemID
	}
	if id == "" {
		var err error
		if id, err = generateUUID(); err != nil {
			return "", err
		}
	}
	if rec.ItemID != "" && rec.ItemID != id {
		return "", fmt.Errorf("%w: record id %s does not match %s", types.ErrInvalidID, rec.ItemID, id)
	}
	rec.ItemID = id

	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = now
	}

	db, release, err := it.backend.conn()
	if err != nil {
		return "", err
	}
	defer release()

	_, err = db.Exec(
		`INSERT INTO items (item_id, type, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(item_id) DO UPDATE SET type = excluded.type, name = excluded.name,
		 created_at = excluded.created_at, updated_at = excluded.updated_at`,
		rec.ItemID, rec.Type, rec.Name, formatTime(rec.CreatedAt), formatTime(rec.UpdatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("persisting item: %w", err)
	}
	return id, nil
}

// Delete removes an item and every stratum value recorded for it.
func (it *itemsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, release, err := it.backend.conn()
	if err != nil {
		return err
	}
	defer release()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM items WHERE item_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	if _, err := tx.Exec("DELETE FROM strata WHERE item_id = ?", id); err != nil {
		return fmt.Errorf("deleting item strata: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item deletion: %w", err)
	}
	return nil
}

// Fetch returns item records ordered by item_id. The only supported filter
// key is "type" (string).
func (it *itemsTable) Fetch(filter map[string]any) ([]any, error) {
	query := selectItem
	var conditions []string
	var args []any
	for key, v := range filter {
		switch key {
		case "type":
			s, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, "type = ?")
			args = append(args, s)
		default:
			return nil, fmt.Errorf("%w: unknown key %q", types.ErrInvalidFilter, key)
		}
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY item_id"

	db, release, err := it.backend.conn()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching items: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		rec, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating item: %w", err)
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return results, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*types.ItemRecord, error) {
	var rec types.ItemRecord
	var created, updated string
	if err := s.Scan(&rec.ItemID, &rec.Type, &rec.Name, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if rec.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &rec, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
