// Package sqlite implements the relational store for the capability
// graph: typed repositories with idempotent find-or-create resolution,
// the capability edge builder, the integrity cleanup and validation
// passes, and the search and recommendation read path.
//
// Concurrency protection is the database's own: unique constraints plus
// "insert, and on conflict re-read" make resolution converge under
// concurrent or repeated runs without external locking.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// dbFileName is the sqlite database file inside the data directory.
const dbFileName = "labgraph.db"

// dbtx is the subset of *sql.DB and *sql.Tx the repositories use, so the
// same table code runs both directly and inside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the capability graph store. The exported tables are the typed
// repositories, one per entity kind; query, cleanup, and validation
// methods live on the Store itself.
type Store struct {
	db *sql.DB
	q  dbtx

	Labs         *LabsTable
	Tests        *TestsTable
	Domains      *DomainsTable
	Standards    *StandardsTable
	Capabilities *CapabilitiesTable
}

// Open creates the data directory if needed, opens (or creates) the
// database, and applies the schema. The schema is idempotent; opening an
// existing store never disturbs resolved entities.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dbPath, err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying pragma: %w", err)
		}
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
	}

	s := &Store{db: db}
	s.attachTables(db)
	return s, nil
}

// attachTables wires the typed repositories to the given query target.
func (s *Store) attachTables(q dbtx) {
	s.q = q
	s.Labs = &LabsTable{store: s}
	s.Tests = &TestsTable{store: s}
	s.Domains = &DomainsTable{store: s}
	s.Standards = &StandardsTable{store: s}
	s.Capabilities = &CapabilitiesTable{store: s}
}

// Close releases the database. Further operations return ErrStoreClosed.
func (s *Store) Close() error {
	if s.db == nil {
		return types.ErrStoreClosed
	}
	err := s.db.Close()
	s.db = nil
	s.q = nil
	return err
}

// WithTx runs fn against a transaction-scoped view of the store. The
// view's repositories and queries all execute inside the transaction; an
// error from fn rolls the whole transaction back.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.db == nil {
		return types.ErrStoreClosed
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	view := &Store{db: s.db}
	view.attachTables(tx)

	if err := fn(view); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// newID generates a UUID v7 string, the surrogate key scheme for all
// entities.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// nowUTC returns the current UTC time formatted for storage.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
