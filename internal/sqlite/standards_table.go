package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// StandardsTable is the typed repository for standards. full_code is the
// durable identity key and is never mutated; body, code, and year are
// derived fields that may be repaired in place on later sightings.
type StandardsTable struct {
	store *Store
}

// FindOrCreate resolves a raw standard string to its surrogate id. The
// string is parsed into (body, code, year); an existing row found by
// full_code (case-insensitive) has its derived body and code repaired when
// they differ from the freshly parsed values — year is only ever filled
// when previously null, never overwritten. Unparseable input resolves to
// the sentinel standard.
func (t *StandardsTable) FindOrCreate(ctx context.Context, raw string) (string, error) {
	parsed := types.ParseStandard(raw)

	existing, err := t.findByFullCode(ctx, parsed.FullCode)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("looking up standard %q: %w", parsed.FullCode, err)
	}
	if err == nil {
		if err := t.repair(ctx, existing, parsed); err != nil {
			return "", err
		}
		return existing.StandardID, nil
	}

	id := newID()
	res, err := t.store.q.ExecContext(ctx,
		`INSERT INTO standards (standard_id, standard_body, standard_code, year, full_code)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (full_code) DO NOTHING`,
		id, parsed.Body, parsed.Code, nullable(parsed.Year), parsed.FullCode,
	)
	if err != nil {
		return "", fmt.Errorf("inserting standard %q: %w", parsed.FullCode, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		existing, err := t.findByFullCode(ctx, parsed.FullCode)
		if err != nil {
			return "", fmt.Errorf("re-reading standard %q after conflict: %w", parsed.FullCode, err)
		}
		return existing.StandardID, nil
	}
	return id, nil
}

// repair updates derived fields in place when they drifted from the
// parse, typically rows whose code was left null by historical ingestion.
func (t *StandardsTable) repair(ctx context.Context, existing *types.Standard, parsed types.ParsedStandard) error {
	if existing.Code == parsed.Code && existing.Body == parsed.Body {
		return nil
	}
	_, err := t.store.q.ExecContext(ctx,
		`UPDATE standards
		 SET standard_body = ?, standard_code = ?, year = COALESCE(year, ?)
		 WHERE standard_id = ?`,
		parsed.Body, parsed.Code, nullable(parsed.Year), existing.StandardID,
	)
	if err != nil {
		return fmt.Errorf("repairing standard %q: %w", existing.FullCode, err)
	}
	return nil
}

// findByFullCode returns the standard identified by full_code,
// case-insensitively.
func (t *StandardsTable) findByFullCode(ctx context.Context, fullCode string) (*types.Standard, error) {
	var (
		std  types.Standard
		body sql.NullString
		code sql.NullString
		year sql.NullString
	)
	err := t.store.q.QueryRowContext(ctx,
		`SELECT standard_id, standard_body, standard_code, year, full_code
		 FROM standards WHERE full_code = ? LIMIT 1`, fullCode,
	).Scan(&std.StandardID, &body, &code, &year, &std.FullCode)
	if err != nil {
		return nil, err
	}
	std.Body = body.String
	std.Code = code.String
	if year.Valid {
		std.Year = &year.String
	}
	return &std, nil
}

// EnsureSentinel guarantees the single UNSPECIFIED standard exists and
// returns its id. Idempotent.
func (t *StandardsTable) EnsureSentinel(ctx context.Context) (string, error) {
	existing, err := t.findByFullCode(ctx, types.SentinelFullCode)
	if err == nil {
		return existing.StandardID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("looking up sentinel standard: %w", err)
	}

	id := newID()
	if _, err := t.store.q.ExecContext(ctx,
		`INSERT INTO standards (standard_id, standard_body, standard_code, year, full_code)
		 VALUES (?, ?, ?, NULL, ?)
		 ON CONFLICT (full_code) DO NOTHING`,
		id, types.SentinelBody, types.SentinelCode, types.SentinelFullCode,
	); err != nil {
		return "", fmt.Errorf("inserting sentinel standard: %w", err)
	}
	existing, err = t.findByFullCode(ctx, types.SentinelFullCode)
	if err != nil {
		return "", fmt.Errorf("re-reading sentinel standard: %w", err)
	}
	return existing.StandardID, nil
}

// nullable converts an optional string to its sql value.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
