package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

var _ types.Table = (*strataTable)(nil)

// strataTable stores *types.StratumRecord values. Record IDs are the
// composite keys built by types.StratumKey.
type strataTable struct {
	backend *Backend
}

const selectStratum = "SELECT item_id, stratum_id, trait, value, updated_at FROM strata"

// Get retrieves a stratum value by composite key.
func (st *strataTable) Get(id string) (any, error) {
	itemID, stratumID, trait, ok := types.SplitStratumKey(id)
	if !ok {
		return nil, types.ErrInvalidID
	}
	db, release, err := st.backend.conn()
	if err != nil {
		return nil, err
	}
	defer release()

	rec, err := scanStratum(db.QueryRow(
		selectStratum+" WHERE item_id = ? AND stratum_id = ? AND trait = ?",
		itemID, stratumID, trait,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting stratum value %s: %w", id, err)
	}
	return rec, nil
}

// Set inserts or replaces a stratum value. id must be empty or equal to the
// record's key. Returns the record's key.
func (st *strataTable) Set(id string, data any) (string, error) {
	rec, ok := data.(*types.StratumRecord)
	if !ok || rec == nil {
		return "", types.ErrInvalidData
	}
	if rec.ItemID == "" || rec.StratumID == "" || rec.Trait == "" {
		return "", fmt.Errorf("%w: item, stratum and trait are required", types.ErrInvalidData)
	}
	key := rec.Key()
	if id != "" && id != key {
		return "", fmt.Errorf("%w: %q does not match the record", types.ErrInvalidID, id)
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}

	db, release, err := st.backend.conn()
	if err != nil {
		return "", err
	}
	defer release()

	_, err = db.Exec(
		`INSERT INTO strata (item_id, stratum_id, trait, value, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(item_id, stratum_id, trait) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		rec.ItemID, rec.StratumID, rec.Trait, rec.Value, formatTime(rec.UpdatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("persisting stratum value: %w", err)
	}
	return key, nil
}

// Delete removes a stratum value by composite key.
func (st *strataTable) Delete(id string) error {
	itemID, stratumID, trait, ok := types.SplitStratumKey(id)
	if !ok {
		return types.ErrInvalidID
	}
	db, release, err := st.backend.conn()
	if err != nil {
		return err
	}
	defer release()

	res, err := db.Exec(
		"DELETE FROM strata WHERE item_id = ? AND stratum_id = ? AND trait = ?",
		itemID, stratumID, trait,
	)
	if err != nil {
		return fmt.Errorf("deleting stratum value: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch returns stratum values ordered by item, stratum and trait. Supported
// filter keys are "item_id" and "stratum_id" (strings).
func (st *strataTable) Fetch(filter map[string]any) ([]any, error) {
	query := selectStratum
	var conditions []string
	var args []any
	for _, key := range []string{"item_id", "stratum_id"} {
		v, ok := filter[key]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, key+" = ?")
		args = append(args, s)
	}
	for key := range filter {
		if key != "item_id" && key != "stratum_id" {
			return nil, fmt.Errorf("%w: unknown key %q", types.ErrInvalidFilter, key)
		}
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY item_id, stratum_id, trait"

	db, release, err := st.backend.conn()
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching strata: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		rec, err := scanStratum(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating stratum value: %w", err)
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating strata: %w", err)
	}
	return results, nil
}

func scanStratum(s scanner) (*types.StratumRecord, error) {
	var rec types.StratumRecord
	var updated string
	if err := s.Scan(&rec.ItemID, &rec.StratumID, &rec.Trait, &rec.Value, &updated); err != nil {
		return nil, err
	}
	var err error
	if rec.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &rec, nil
}
