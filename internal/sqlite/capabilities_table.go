package sqlite

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// CapabilitiesTable is the typed repository for capability edges.
type CapabilitiesTable struct {
	store *Store
}

// Insert writes one capability edge with do-nothing-on-conflict semantics
// keyed on (lab_id, test_id, standard_id). Domain is not part of the key:
// the first-seen classification for a given edge wins, and later duplicate
// rows are silently absorbed. Returns whether a new edge was written.
func (t *CapabilitiesTable) Insert(ctx context.Context, c types.Capability) (bool, error) {
	if c.LabID == "" || c.DomainID == "" || c.TestID == "" || c.StandardID == "" {
		return false, types.ErrInvalidID
	}
	res, err := t.store.q.ExecContext(ctx,
		`INSERT INTO lab_capabilities (lab_id, domain_id, discipline_id, family_id, test_id, standard_id)
		 VALUES (?, ?, NULL, NULL, ?, ?)
		 ON CONFLICT (lab_id, test_id, standard_id) DO NOTHING`,
		c.LabID, c.DomainID, c.TestID, c.StandardID,
	)
	if err != nil {
		return false, fmt.Errorf("inserting capability: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inserting capability: %w", err)
	}
	return n > 0, nil
}

// Count returns the total number of capability edges.
func (t *CapabilitiesTable) Count(ctx context.Context) (int, error) {
	var n int
	err := t.store.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lab_capabilities`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting capabilities: %w", err)
	}
	return n, nil
}
