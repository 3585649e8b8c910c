package iocollections

import (
	"context"
	"database/sql"

	"github.com/gnames/tsbrowse/pkg/collections"
)

// Add implements collections.Store.
func (s *store) Add(ctx context.Context, id, code string) (bool, error) {
	ok, err := s.exists(ctx, id)
	if err != nil || !ok {
		return false, err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT OR IGNORE INTO collection_standards (collection_id, code, position)
SELECT ?, ?, COALESCE(MAX(position), -1) + 1
  FROM collection_standards WHERE collection_id = ?`, id, code, id)
	if err != nil {
		return false, QueryError("add standard", err)
	}
	return true, nil
}

// Remove implements collections.Store.
func (s *store) Remove(ctx context.Context, id, code string) (bool, error) {
	ok, err := s.exists(ctx, id)
	if err != nil || !ok {
		return false, err
	}
	_, err = s.db.ExecContext(ctx,
		"DELETE FROM collection_standards WHERE collection_id = ? AND code = ?",
		id, code)
	if err != nil {
		return false, QueryError("remove standard", err)
	}
	return true, nil
}

// Reorder implements collections.Store.
func (s *store) Reorder(
	ctx context.Context,
	id, code string,
	newIndex int,
) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, QueryError("reorder standards", err)
	}
	defer tx.Rollback()

	list, err := codes(ctx, tx, id)
	if err != nil {
		return false, err
	}
	list, ok := collections.Move(list, code, newIndex)
	if !ok {
		return false, nil
	}
	if err = writePositions(ctx, tx, id, list); err != nil {
		return false, err
	}
	if err = tx.Commit(); err != nil {
		return false, QueryError("reorder standards", err)
	}
	return true, nil
}

func writePositions(ctx context.Context, tx *sql.Tx, id string, list []string) error {
	stmt, err := tx.PrepareContext(ctx, `
UPDATE collection_standards SET position = ?
 WHERE collection_id = ? AND code = ?`)
	if err != nil {
		return QueryError("reorder standards", err)
	}
	defer stmt.Close()

	for i, code := range list {
		if _, err = stmt.ExecContext(ctx, i, id, code); err != nil {
			return QueryError("reorder standards", err)
		}
	}
	return nil
}

// IsFavorited implements collections.Store.
func (s *store) IsFavorited(ctx context.Context, code string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM collection_standards WHERE code = ?", code).Scan(&n)
	if err != nil {
		return false, QueryError("check standard", err)
	}
	return n > 0, nil
}

// CollectionsFor implements collections.Store.
func (s *store) CollectionsFor(ctx context.Context, code string) ([]string, error) {
	cols, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	res := []string{}
	for _, v := range cols {
		if v.Has(code) {
			res = append(res, v.ID)
		}
	}
	return res, nil
}

func (s *store) exists(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM collections WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, QueryError("find collection", err)
	}
	return n > 0, nil
}
