package normalize

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// writeCSV writes a raw source file into dir and returns its path.
func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("header on second physical row", func(t *testing.T) {
		path := writeCSV(t, t.TempDir(), "Acme Labs.csv",
			"Scope of Accreditation,,,\n"+
				"S.No,Discipline / Group,Specific Test Performed,Test Standard\n"+
				"1,Electrical,Dielectric strength,IEC 60335-1\n"+
				"2,Electrical,Leakage current,IEC 60335-1\n")

		ds, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "Acme Labs", ds.LabName)
		assert.Equal(t, []string{ColSerialNo, ColDiscipline, ColTestName, ColTestStandard, ColLabName}, ds.Columns)
		require.Len(t, ds.Rows, 2)
		assert.Equal(t, "Dielectric strength", ds.Get(0, ColTestName))
		assert.Equal(t, "IEC 60335-1", ds.Get(0, ColTestStandard))
		assert.Equal(t, "Acme Labs", ds.Get(1, ColLabName))
	})

	t.Run("ragged rows pad with empty cells", func(t *testing.T) {
		path := writeCSV(t, t.TempDir(), "short.csv",
			"meta\n"+
				"Test Name,Test Standard\n"+
				"Damp heat\n")

		ds, err := LoadFile(path)
		require.NoError(t, err)
		require.Len(t, ds.Rows, 1)
		assert.Equal(t, "Damp heat", ds.Get(0, ColTestName))
		assert.Equal(t, "", ds.Get(0, ColTestStandard))
	})

	t.Run("missing required column", func(t *testing.T) {
		path := writeCSV(t, t.TempDir(), "bad.csv",
			"meta\n"+
				"S.No,Remarks\n"+
				"1,fine\n")

		_, err := LoadFile(path)
		assert.ErrorIs(t, err, types.ErrMissingColumns)
	})

	t.Run("header row absent", func(t *testing.T) {
		path := writeCSV(t, t.TempDir(), "empty.csv", "only one row\n")

		_, err := LoadFile(path)
		assert.ErrorIs(t, err, types.ErrMissingColumns)
	})

	t.Run("unreadable path", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.csv"))
		assert.Error(t, err)
	})
}

func TestDatasetGet(t *testing.T) {
	ds := &Dataset{Rows: []map[string]string{{ColTestName: "x"}}}
	assert.Equal(t, "x", ds.Get(0, ColTestName))
	assert.Equal(t, "", ds.Get(0, "missing"))
	assert.Equal(t, "", ds.Get(-1, ColTestName))
	assert.Equal(t, "", ds.Get(5, ColTestName))
}

func TestWriteCSV(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "Roundtrip Lab.csv",
		"meta\n"+
			"Test Name,Test Standard\n"+
			"Damp heat,IEC 60068-2-78\n")

	ds, err := LoadFile(path)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, ds.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "test_name,test_standard,lab_name", lines[0])
	assert.Equal(t, "Damp heat,IEC 60068-2-78,Roundtrip Lab", lines[1])
}

func TestLoadFileErrorNamesFile(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "noisy.csv",
		"meta\n"+
			"Remarks\n"+
			"x\n")

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrMissingColumns))
	assert.Contains(t, err.Error(), "noisy.csv")
}
