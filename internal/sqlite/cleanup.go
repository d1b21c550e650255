package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// Cleanup repairs structural defects left by historical data or partial
// runs: capability edges referencing null-coded standards, and the
// null-coded standard rows themselves. The whole pass runs in a single
// transaction and is idempotent, safe to run before and after any build.
//
// The order of operations is load-bearing. Conflicting duplicates must go
// before reassignment, or moving a null-coded edge onto the sentinel
// would violate the (lab, test, standard) uniqueness constraint:
//
//  1. ensure the sentinel standard exists
//  2. delete null-coded edges whose (lab, test) already has a sentinel edge
//  3. among remaining null-coded edges, keep one per (lab, test)
//  4. reassign the survivors to the sentinel
//  5. delete all standards whose code is still null
func (s *Store) Cleanup(ctx context.Context) (types.CleanupResult, error) {
	var result types.CleanupResult
	err := s.WithTx(ctx, func(tx *Store) error {
		sentinelID, err := tx.Standards.EnsureSentinel(ctx)
		if err != nil {
			return err
		}

		result.ConflictingEdgesDeleted, err = execCount(ctx, tx.q,
			`DELETE FROM lab_capabilities
			 WHERE rowid IN (
			     SELECT lc1.rowid
			     FROM lab_capabilities lc1
			     JOIN standards s1 ON s1.standard_id = lc1.standard_id
			     WHERE s1.standard_code IS NULL
			       AND EXISTS (
			           SELECT 1 FROM lab_capabilities lc2
			           WHERE lc2.standard_id = ?
			             AND lc2.lab_id = lc1.lab_id
			             AND lc2.test_id = lc1.test_id
			       )
			 )`, sentinelID)
		if err != nil {
			return fmt.Errorf("deleting conflicting edges: %w", err)
		}

		result.DuplicateEdgesDeleted, err = execCount(ctx, tx.q,
			`DELETE FROM lab_capabilities
			 WHERE rowid IN (
			     SELECT lc.rowid
			     FROM lab_capabilities lc
			     JOIN standards s ON s.standard_id = lc.standard_id
			     WHERE s.standard_code IS NULL
			       AND lc.rowid NOT IN (
			           SELECT MIN(lc2.rowid)
			           FROM lab_capabilities lc2
			           JOIN standards s2 ON s2.standard_id = lc2.standard_id
			           WHERE s2.standard_code IS NULL
			           GROUP BY lc2.lab_id, lc2.test_id
			       )
			 )`)
		if err != nil {
			return fmt.Errorf("deleting duplicate null-coded edges: %w", err)
		}

		result.EdgesReassigned, err = execCount(ctx, tx.q,
			`UPDATE lab_capabilities
			 SET standard_id = ?
			 WHERE standard_id IN (
			     SELECT standard_id FROM standards WHERE standard_code IS NULL
			 )`, sentinelID)
		if err != nil {
			return fmt.Errorf("reassigning null-coded edges: %w", err)
		}

		result.StandardsDeleted, err = execCount(ctx, tx.q,
			`DELETE FROM standards WHERE standard_code IS NULL`)
		if err != nil {
			return fmt.Errorf("deleting null-coded standards: %w", err)
		}
		return nil
	})
	if err != nil {
		return types.CleanupResult{}, err
	}
	return result, nil
}

// execCount executes a statement and returns its affected row count.
func execCount(ctx context.Context, q dbtx, query string, args ...any) (int, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Validate runs the read-only integrity checks: null-coded standards,
// edges referencing them, and genuine duplicate (lab, test, standard)
// combinations that could only come from out-of-band writes. It reports,
// never mutates, and never fails on a violation.
func (s *Store) Validate(ctx context.Context) (*types.ValidationReport, error) {
	if s.db == nil {
		return nil, types.ErrStoreClosed
	}
	report := &types.ValidationReport{}

	err := s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM standards WHERE standard_code IS NULL`,
	).Scan(&report.NullCodeStandards)
	if err != nil {
		return nil, fmt.Errorf("counting null-coded standards: %w", err)
	}

	err = s.q.QueryRowContext(ctx,
		`SELECT COUNT(*)
		 FROM lab_capabilities lc
		 JOIN standards st ON st.standard_id = lc.standard_id
		 WHERE st.standard_code IS NULL`,
	).Scan(&report.NullCodeEdges)
	if err != nil {
		return nil, fmt.Errorf("counting null-coded edges: %w", err)
	}

	rows, err := s.q.QueryContext(ctx,
		`SELECT l.lab_name, t.test_name, st.standard_code, COUNT(*) AS n
		 FROM lab_capabilities lc
		 JOIN labs l ON l.lab_id = lc.lab_id
		 JOIN tests t ON t.test_id = lc.test_id
		 JOIN standards st ON st.standard_id = lc.standard_id
		 GROUP BY lc.lab_id, lc.test_id, lc.standard_id
		 HAVING COUNT(*) > 1
		 LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("finding duplicate edges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			dup  types.DuplicateEdge
			code sql.NullString
		)
		if err := rows.Scan(&dup.LabName, &dup.TestName, &code, &dup.Count); err != nil {
			return nil, fmt.Errorf("scanning duplicate edge: %w", err)
		}
		dup.StandardCode = code.String
		report.DuplicateEdges = append(report.DuplicateEdges, dup)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate edges: %w", err)
	}
	return report, nil
}
