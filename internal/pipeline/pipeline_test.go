package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/labgraph/internal/classify"
	"github.com/mesh-intelligence/labgraph/internal/sqlite"
	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// setupRunner creates a runner over a fresh store and an empty raw
// directory, both cleaned up with the test.
func setupRunner(t *testing.T) (*Runner, string) {
	t.Helper()

	store, err := sqlite.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	rawDir := t.TempDir()
	return &Runner{
		Store:      store,
		Classifier: classify.New(classify.DefaultRules()),
		RawDir:     rawDir,
	}, rawDir
}

func writeRaw(t *testing.T, rawDir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(rawDir, name), []byte(content), 0o644))
}

const alphaCSV = "Scope of Accreditation,,,\n" +
	"S.No,Discipline / Group,Specific Test Performed,Test Standard\n" +
	"1,Electrical,Leakage current,IEC 60335-1\n" +
	"2,Electrical,Earthing continuity,IEC 60335-1\n" +
	"3,Environmental,Damp heat,IEC 60068-2-78\n"

func TestRunIngestsFiles(t *testing.T) {
	ctx := context.Background()
	r, rawDir := setupRunner(t)
	writeRaw(t, rawDir, "Alpha Labs.csv", alphaCSV)

	report, err := r.Run(ctx)
	require.NoError(t, err)

	require.Len(t, report.Files, 1)
	fr := report.Files[0]
	assert.Equal(t, "Alpha Labs.csv", fr.File)
	assert.Equal(t, "Alpha Labs", fr.Lab)
	assert.Equal(t, 3, fr.RowsProcessed)
	assert.Zero(t, fr.RowsSkipped)
	assert.Equal(t, 3, fr.EdgesInserted)
	assert.Equal(t, 3, report.EdgesInserted())

	require.NotNil(t, report.Validation)
	assert.True(t, report.Validation.Clean())

	n, err := r.Store.Capabilities.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	results, err := r.Store.Search(ctx, types.Filter{TestName: "damp heat"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Alpha Labs", results[0].LabName)
	assert.Equal(t, types.DomainEnvironmental, results[0].DomainName)
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r, rawDir := setupRunner(t)
	writeRaw(t, rawDir, "Alpha Labs.csv", alphaCSV)

	first, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, first.EdgesInserted())

	second, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.EdgesInserted())
	assert.Equal(t, 3, second.Files[0].EdgesAbsorbed)

	n, err := r.Store.Capabilities.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRunGrownSourceAddsOnlyNewEdges(t *testing.T) {
	ctx := context.Background()
	r, rawDir := setupRunner(t)
	writeRaw(t, rawDir, "Alpha Labs.csv", alphaCSV)

	_, err := r.Run(ctx)
	require.NoError(t, err)

	grown := alphaCSV + "4,Safety,Glow wire,IEC 60695-2-10\n"
	writeRaw(t, rawDir, "Alpha Labs.csv", grown)

	report, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.EdgesInserted())

	n, err := r.Store.Capabilities.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestRunSkipsPlaceholderRows(t *testing.T) {
	ctx := context.Background()
	r, rawDir := setupRunner(t)
	writeRaw(t, rawDir, "Gappy Labs.csv",
		"meta\n"+
			"Test Name,Test Standard\n"+
			"Leakage current,IEC 60335-1\n"+
			",IEC 60335-1\n"+
			"Damp heat,nan\n"+
			"None,IEC 60068\n"+
			"  ,  \n")

	report, err := r.Run(ctx)
	require.NoError(t, err)

	fr := report.Files[0]
	assert.Equal(t, 1, fr.RowsProcessed)
	assert.Equal(t, 4, fr.RowsSkipped)

	n, err := r.Store.Capabilities.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRunSkipsDefectiveFiles(t *testing.T) {
	ctx := context.Background()
	r, rawDir := setupRunner(t)
	writeRaw(t, rawDir, "Good Labs.csv",
		"meta\n"+
			"Test Name,Test Standard\n"+
			"Leakage current,IEC 60335-1\n")
	writeRaw(t, rawDir, "Bad Labs.csv",
		"meta\n"+
			"S.No,Remarks\n"+
			"1,nothing useful\n")

	report, err := r.Run(ctx)
	require.NoError(t, err)

	require.Len(t, report.Files, 2)
	assert.Equal(t, 1, report.FilesSkipped())

	// Files are processed in sorted order; the defective one comes first.
	assert.Equal(t, "Bad Labs.csv", report.Files[0].File)
	assert.True(t, report.Files[0].Skipped)
	assert.Contains(t, report.Files[0].Reason, "missing required columns")

	assert.Equal(t, "Good Labs.csv", report.Files[1].File)
	assert.Equal(t, 1, report.Files[1].EdgesInserted)
}

func TestRunEmptyRawDir(t *testing.T) {
	ctx := context.Background()
	r, _ := setupRunner(t)

	report, err := r.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, report.Files)
	assert.NotNil(t, report.Validation)
	assert.True(t, report.Validation.Clean())
}

func TestReportRender(t *testing.T) {
	ctx := context.Background()
	r, rawDir := setupRunner(t)
	writeRaw(t, rawDir, "Alpha Labs.csv", alphaCSV)

	report, err := r.Run(ctx)
	require.NoError(t, err)

	var buf strings.Builder
	report.Render(&buf)
	out := buf.String()
	assert.Contains(t, out, "Ingestion report")
	assert.Contains(t, out, "Alpha Labs.csv")
	assert.Contains(t, out, "validation: all checks passed")
}
