package iocollections

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gnames/tsbrowse/pkg/collections"
)

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// List implements collections.Store.
func (s *store) List(ctx context.Context) ([]collections.Collection, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM collections")
	if err != nil {
		return nil, QueryError("list collections", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			rows.Close()
			return nil, QueryError("list collections", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, QueryError("list collections", err)
	}

	res := make([]collections.Collection, 0, len(ids))
	for _, id := range ids {
		col, err := get(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		if col != nil {
			res = append(res, *col)
		}
	}
	collections.SortList(res)
	return res, nil
}

// Get implements collections.Store.
func (s *store) Get(ctx context.Context, id string) (*collections.Collection, error) {
	return get(ctx, s.db, id)
}

func get(ctx context.Context, q querier, id string) (*collections.Collection, error) {
	var res collections.Collection
	var created string
	var imported sql.NullString
	err := q.QueryRowContext(ctx, `
SELECT id, name, description, created_at, imported_at, imported_from
  FROM collections WHERE id = ?`, id).
		Scan(&res.ID, &res.Name, &res.Description, &created,
			&imported, &res.ImportedFrom)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, QueryError("get collection", err)
	}
	res.CreatedAt = parseTime(created)
	if imported.Valid {
		t := parseTime(imported.String)
		res.ImportedAt = &t
	}

	res.StandardCodes, err = codes(ctx, q, id)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func codes(ctx context.Context, q querier, id string) ([]string, error) {
	rows, err := q.QueryContext(ctx, `
SELECT code FROM collection_standards
 WHERE collection_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, QueryError("get codes", err)
	}
	defer rows.Close()

	res := []string{}
	for rows.Next() {
		var code string
		if err = rows.Scan(&code); err != nil {
			return nil, QueryError("get codes", err)
		}
		res = append(res, code)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("get codes", err)
	}
	return res, nil
}

// Create implements collections.Store.
func (s *store) Create(
	ctx context.Context,
	name, description string,
) (*collections.Collection, error) {
	id := newID()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO collections (id, name, description, created_at)
VALUES (?, ?, ?, ?)`, id, name, description, formatTime(s.now()))
	if err != nil {
		return nil, QueryError("create collection", err)
	}
	return s.Get(ctx, id)
}

// Update implements collections.Store.
func (s *store) Update(
	ctx context.Context,
	id string,
	upd collections.Update,
) (*collections.Collection, error) {
	col, err := s.Get(ctx, id)
	if err != nil || col == nil {
		return nil, err
	}
	if upd.Name != nil {
		col.Name = *upd.Name
	}
	if upd.Description != nil {
		col.Description = *upd.Description
	}
	_, err = s.db.ExecContext(ctx,
		"UPDATE collections SET name = ?, description = ? WHERE id = ?",
		col.Name, col.Description, id)
	if err != nil {
		return nil, QueryError("update collection", err)
	}
	return col, nil
}

// Delete implements collections.Store.
func (s *store) Delete(ctx context.Context, id string) (bool, error) {
	if id == collections.DefaultID {
		return false, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, QueryError("delete collection", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM collection_standards WHERE collection_id = ?", id)
	if err != nil {
		return false, QueryError("delete collection", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM collections WHERE id = ?", id)
	if err != nil {
		return false, QueryError("delete collection", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, QueryError("delete collection", err)
	}
	if err = tx.Commit(); err != nil {
		return false, QueryError("delete collection", err)
	}
	return n > 0, nil
}
