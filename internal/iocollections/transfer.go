package iocollections

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/gnames/tsbrowse/pkg/collections"
)

// Export implements collections.Store.
func (s *store) Export(ctx context.Context, id string) (*collections.Envelope, error) {
	col, err := s.Get(ctx, id)
	if err != nil || col == nil {
		return nil, err
	}
	res := collections.NewEnvelope(*col, s.now())
	return &res, nil
}

// Import implements collections.Store.
func (s *store) Import(
	ctx context.Context,
	env collections.Envelope,
) (*collections.Collection, error) {
	if err := env.Validate(); err != nil {
		return nil, ImportError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, ImportError(err)
	}
	defer tx.Rollback()

	id := newID()
	now := formatTime(s.now())
	col := env.Collection
	_, err = tx.ExecContext(ctx, `
INSERT INTO collections
       (id, name, description, created_at, imported_at, imported_from)
VALUES (?, ?, ?, ?, ?, ?)`,
		id, col.Name, col.Description, now, now, env.ExportedAt)
	if err != nil {
		return nil, ImportError(err)
	}
	if err = insertCodes(ctx, tx, id, col.StandardCodes); err != nil {
		return nil, ImportError(err)
	}
	if err = tx.Commit(); err != nil {
		return nil, ImportError(err)
	}

	slog.Info("Imported collection", "id", id, "name", col.Name,
		"standards", len(col.StandardCodes))
	return s.Get(ctx, id)
}

func insertCodes(ctx context.Context, tx *sql.Tx, id string, list []string) error {
	stmt, err := tx.PrepareContext(ctx, `
INSERT OR IGNORE INTO collection_standards (collection_id, code, position)
VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, code := range list {
		if _, err = stmt.ExecContext(ctx, id, code, i); err != nil {
			return err
		}
	}
	return nil
}
