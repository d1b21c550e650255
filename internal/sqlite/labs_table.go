package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// LabsTable is the typed repository for labs.
type LabsTable struct {
	store *Store
}

// FindOrCreate resolves a lab name to its surrogate id, creating the lab
// on first sighting. Lookup is case-insensitive. A soft-deleted lab seen
// again in source data is reactivated. A race with a concurrent insert is
// recovered by re-reading rather than surfaced.
func (t *LabsTable) FindOrCreate(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", types.ErrEmptyName
	}

	id, deleted, err := t.findByName(ctx, name)
	if err == nil {
		if deleted {
			if err := t.reactivate(ctx, id); err != nil {
				return "", err
			}
		}
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("looking up lab %q: %w", name, err)
	}

	id = newID()
	now := nowUTC()
	res, err := t.store.q.ExecContext(ctx,
		`INSERT INTO labs (lab_id, lab_name, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (lab_name) DO NOTHING`,
		id, name, now, now,
	)
	if err != nil {
		return "", fmt.Errorf("inserting lab %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// A concurrent insert won; the existing row is the answer.
		id, deleted, err = t.findByName(ctx, name)
		if err != nil {
			return "", fmt.Errorf("re-reading lab %q after conflict: %w", name, err)
		}
		if deleted {
			if err := t.reactivate(ctx, id); err != nil {
				return "", err
			}
		}
	}
	return id, nil
}

func (t *LabsTable) findByName(ctx context.Context, name string) (string, bool, error) {
	var (
		id        string
		deletedAt sql.NullString
	)
	err := t.store.q.QueryRowContext(ctx,
		`SELECT lab_id, deleted_at FROM labs WHERE lab_name = ? LIMIT 1`, name,
	).Scan(&id, &deletedAt)
	return id, deletedAt.Valid, err
}

func (t *LabsTable) reactivate(ctx context.Context, id string) error {
	_, err := t.store.q.ExecContext(ctx,
		`UPDATE labs SET deleted_at = NULL, updated_at = ? WHERE lab_id = ?`,
		nowUTC(), id,
	)
	if err != nil {
		return fmt.Errorf("reactivating lab %s: %w", id, err)
	}
	return nil
}

// Get returns a lab by id. Soft-deleted labs are not visible; both a
// missing row and a soft-deleted one return ErrNotFound.
func (t *LabsTable) Get(ctx context.Context, id string) (*types.Lab, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	var (
		lab       types.Lab
		createdAt string
		updatedAt string
	)
	err := t.store.q.QueryRowContext(ctx,
		`SELECT lab_id, lab_name, created_at, updated_at
		 FROM labs WHERE lab_id = ? AND deleted_at IS NULL`, id,
	).Scan(&lab.LabID, &lab.LabName, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting lab %s: %w", id, err)
	}
	lab.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	lab.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &lab, nil
}

// SoftDelete marks a lab deleted. The pipeline never calls this; it
// exists for external administration. Queries exclude soft-deleted labs
// unconditionally.
func (t *LabsTable) SoftDelete(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	res, err := t.store.q.ExecContext(ctx,
		`UPDATE labs SET deleted_at = ?, updated_at = ? WHERE lab_id = ? AND deleted_at IS NULL`,
		nowUTC(), nowUTC(), id,
	)
	if err != nil {
		return fmt.Errorf("soft-deleting lab %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return types.ErrNotFound
	}
	return nil
}
