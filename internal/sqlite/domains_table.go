package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// DomainsTable is the typed repository for domains.
type DomainsTable struct {
	store *Store
}

// FindOrCreate resolves a domain name to its surrogate id, creating the
// domain on first sighting. Lookup is case-insensitive; insert races are
// recovered by re-reading. New domains appear when the rule file defines
// categories beyond the built-in set.
func (t *DomainsTable) FindOrCreate(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", types.ErrEmptyName
	}

	id, err := t.findByName(ctx, name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("looking up domain %q: %w", name, err)
	}

	id = newID()
	res, err := t.store.q.ExecContext(ctx,
		`INSERT INTO domains (domain_id, domain_name)
		 VALUES (?, ?)
		 ON CONFLICT (domain_name) DO NOTHING`,
		id, name,
	)
	if err != nil {
		return "", fmt.Errorf("inserting domain %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		id, err = t.findByName(ctx, name)
		if err != nil {
			return "", fmt.Errorf("re-reading domain %q after conflict: %w", name, err)
		}
	}
	return id, nil
}

func (t *DomainsTable) findByName(ctx context.Context, name string) (string, error) {
	var id string
	err := t.store.q.QueryRowContext(ctx,
		`SELECT domain_id FROM domains WHERE domain_name = ? LIMIT 1`, name,
	).Scan(&id)
	return id, err
}
