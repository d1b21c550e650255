package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// setupStore opens a store in a fresh temp directory, closed on cleanup.
func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	t.Run("creates the database file", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Open(dir)
		require.NoError(t, err)
		defer s.Close()

		_, err = os.Stat(filepath.Join(dir, dbFileName))
		assert.NoError(t, err)
	})

	t.Run("creates missing data dir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		s, err := Open(dir)
		require.NoError(t, err)
		defer s.Close()

		_, err = os.Stat(dir)
		assert.NoError(t, err)
	})

	t.Run("reopening preserves entities", func(t *testing.T) {
		dir := t.TempDir()
		ctx := context.Background()

		s, err := Open(dir)
		require.NoError(t, err)
		id, err := s.Labs.FindOrCreate(ctx, "Acme Labs")
		require.NoError(t, err)
		require.NoError(t, s.Close())

		s, err = Open(dir)
		require.NoError(t, err)
		defer s.Close()

		again, err := s.Labs.FindOrCreate(ctx, "Acme Labs")
		require.NoError(t, err)
		assert.Equal(t, id, again)
	})
}

func TestClose(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Close(), types.ErrStoreClosed)

	_, err := s.Search(context.Background(), types.Filter{Domain: "Safety"})
	assert.ErrorIs(t, err, types.ErrStoreClosed)

	err = s.WithTx(context.Background(), func(tx *Store) error { return nil })
	assert.ErrorIs(t, err, types.ErrStoreClosed)
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	t.Run("error rolls everything back", func(t *testing.T) {
		s := setupStore(t)

		err := s.WithTx(ctx, func(tx *Store) error {
			if _, err := tx.Labs.FindOrCreate(ctx, "Doomed Lab"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		var n int
		require.NoError(t, s.q.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM labs`).Scan(&n))
		assert.Zero(t, n)
	})

	t.Run("success commits", func(t *testing.T) {
		s := setupStore(t)

		var id string
		err := s.WithTx(ctx, func(tx *Store) error {
			var err error
			id, err = tx.Labs.FindOrCreate(ctx, "Committed Lab")
			return err
		})
		require.NoError(t, err)

		again, err := s.Labs.FindOrCreate(ctx, "Committed Lab")
		require.NoError(t, err)
		assert.Equal(t, id, again)
	})
}
