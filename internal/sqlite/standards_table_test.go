package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

func TestStandardsFindOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("parses and stores derived fields", func(t *testing.T) {
		s := setupStore(t)

		id, err := s.Standards.FindOrCreate(ctx, "IEC 60335-1")
		require.NoError(t, err)

		std, err := s.Standards.findByFullCode(ctx, "IEC 60335-1")
		require.NoError(t, err)
		assert.Equal(t, id, std.StandardID)
		assert.Equal(t, "IEC", std.Body)
		assert.Equal(t, "IEC 60335-1", std.Code)
	})

	t.Run("repeated resolution returns the same id", func(t *testing.T) {
		s := setupStore(t)

		first, err := s.Standards.FindOrCreate(ctx, "IEC 60068-2-78")
		require.NoError(t, err)
		second, err := s.Standards.FindOrCreate(ctx, "IEC 60068-2-78")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("full code lookup is case-insensitive", func(t *testing.T) {
		s := setupStore(t)

		first, err := s.Standards.FindOrCreate(ctx, "IEC 60335-1")
		require.NoError(t, err)
		second, err := s.Standards.FindOrCreate(ctx, "iec 60335-1")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("blank input resolves to the sentinel", func(t *testing.T) {
		s := setupStore(t)

		blank, err := s.Standards.FindOrCreate(ctx, "")
		require.NoError(t, err)
		nan, err := s.Standards.FindOrCreate(ctx, "nan")
		require.NoError(t, err)
		assert.Equal(t, blank, nan)

		sentinel, err := s.Standards.EnsureSentinel(ctx)
		require.NoError(t, err)
		assert.Equal(t, blank, sentinel)
	})
}

func TestStandardsRepair(t *testing.T) {
	ctx := context.Background()

	t.Run("drifted derived fields are repaired", func(t *testing.T) {
		s := setupStore(t)

		// Simulate a historical row whose code was never derived.
		_, err := s.q.ExecContext(ctx,
			`INSERT INTO standards (standard_id, standard_body, standard_code, year, full_code)
			 VALUES ('legacy-1', NULL, NULL, NULL, 'IEC 60335-1')`)
		require.NoError(t, err)

		id, err := s.Standards.FindOrCreate(ctx, "IEC 60335-1")
		require.NoError(t, err)
		assert.Equal(t, "legacy-1", id)

		std, err := s.Standards.findByFullCode(ctx, "IEC 60335-1")
		require.NoError(t, err)
		assert.Equal(t, "IEC", std.Body)
		assert.Equal(t, "IEC 60335-1", std.Code)
	})

	t.Run("existing year is never overwritten", func(t *testing.T) {
		s := setupStore(t)

		_, err := s.q.ExecContext(ctx,
			`INSERT INTO standards (standard_id, standard_body, standard_code, year, full_code)
			 VALUES ('legacy-2', NULL, NULL, '1999', 'IS 302:1979')`)
		require.NoError(t, err)

		_, err = s.Standards.FindOrCreate(ctx, "IS 302:1979")
		require.NoError(t, err)

		std, err := s.Standards.findByFullCode(ctx, "IS 302:1979")
		require.NoError(t, err)
		require.NotNil(t, std.Year)
		assert.Equal(t, "1999", *std.Year)
	})

	t.Run("null year is filled during repair", func(t *testing.T) {
		s := setupStore(t)

		_, err := s.q.ExecContext(ctx,
			`INSERT INTO standards (standard_id, standard_body, standard_code, year, full_code)
			 VALUES ('legacy-3', NULL, NULL, NULL, 'IS 302:1979')`)
		require.NoError(t, err)

		_, err = s.Standards.FindOrCreate(ctx, "IS 302:1979")
		require.NoError(t, err)

		std, err := s.Standards.findByFullCode(ctx, "IS 302:1979")
		require.NoError(t, err)
		require.NotNil(t, std.Year)
		assert.Equal(t, "1979", *std.Year)
	})

	t.Run("matching fields leave the row untouched", func(t *testing.T) {
		s := setupStore(t)

		id, err := s.Standards.FindOrCreate(ctx, "IEC 60335-1")
		require.NoError(t, err)
		again, err := s.Standards.FindOrCreate(ctx, "IEC 60335-1")
		require.NoError(t, err)
		assert.Equal(t, id, again)

		var n int
		require.NoError(t, s.q.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM standards WHERE full_code = 'IEC 60335-1'`).Scan(&n))
		assert.Equal(t, 1, n)
	})
}

func TestEnsureSentinel(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	first, err := s.Standards.EnsureSentinel(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := s.Standards.EnsureSentinel(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	std, err := s.Standards.findByFullCode(ctx, types.SentinelFullCode)
	require.NoError(t, err)
	assert.Equal(t, types.SentinelBody, std.Body)
	assert.Equal(t, types.SentinelCode, std.Code)
	assert.Nil(t, std.Year)
}
