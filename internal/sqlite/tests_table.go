package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// TestsTable is the typed repository for tests.
type TestsTable struct {
	store *Store
}

// FindOrCreate resolves a test name to its surrogate id, creating the
// test on first sighting with a null family. Lookup is case-insensitive;
// insert races are recovered by re-reading.
func (t *TestsTable) FindOrCreate(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", types.ErrEmptyName
	}

	id, err := t.findByName(ctx, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("looking up test %q: %w", name, err)
	}

	id = newID()
	res, err := t.store.q.ExecContext(ctx,
		`INSERT INTO tests (test_id, test_name, family_id)
		 VALUES (?, ?, NULL)
		 ON CONFLICT (test_name) DO NOTHING`,
		id, name,
	)
	if err != nil {
		return "", fmt.Errorf("inserting test %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		id, err = t.findByName(ctx, name)
		if err != nil {
			return "", fmt.Errorf("re-reading test %q after conflict: %w", name, err)
		}
	}
	return id, nil
}

func (t *TestsTable) findByName(ctx context.Context, name string) (string, error) {
	var id string
	err := t.store.q.QueryRowContext(ctx,
		`SELECT test_id FROM tests WHERE test_name = ? LIMIT 1`, name,
	).Scan(&id)
	return id, err
}
