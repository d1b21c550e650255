package normalize

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// headerRow is the zero-based physical row holding the true header. Source
// files carry metadata in the rows above it; everything up to and
// including the header row is discarded from the data.
const headerRow = 1

// Dataset is a normalized tabular file: canonical column names in source
// order plus lab_name, and the data rows keyed by canonical column. Cell
// values are exactly as read; only the header is transformed.
type Dataset struct {
	LabName string
	Columns []string
	Rows    []map[string]string
}

// Get returns the named column of row i, or "" when absent.
func (d *Dataset) Get(i int, column string) string {
	if i < 0 || i >= len(d.Rows) {
		return ""
	}
	return d.Rows[i][column]
}

// LoadFile reads one source CSV, normalizes its header, and attaches the
// lab name derived from the file stem. A file whose normalized header
// lacks a required column returns an error wrapping
// types.ErrMissingColumns; such files are skipped entirely by the caller,
// never partially ingested.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) <= headerRow {
		return nil, fmt.Errorf("%s has no header row: %w", filepath.Base(path), types.ErrMissingColumns)
	}

	labName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ds, err := fromRecords(labName, records[headerRow], records[headerRow+1:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return ds, nil
}

// fromRecords builds a Dataset from a raw header and data rows.
func fromRecords(labName string, header []string, data [][]string) (*Dataset, error) {
	columns := NormalizeColumns(header)

	ds := &Dataset{
		LabName: labName,
		Columns: append(append([]string{}, columns...), ColLabName),
		Rows:    make([]map[string]string, 0, len(data)),
	}

	for _, record := range data {
		row := make(map[string]string, len(columns)+1)
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		row[ColLabName] = labName
		ds.Rows = append(ds.Rows, row)
	}

	if missing := ds.missingRequired(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", types.ErrMissingColumns, strings.Join(missing, ", "))
	}
	return ds, nil
}

// missingRequired returns the required columns absent from the dataset.
func (d *Dataset) missingRequired() []string {
	present := make(map[string]bool, len(d.Columns))
	for _, c := range d.Columns {
		present[c] = true
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// WriteCSV writes the dataset with its canonical header, the shape the
// rest of the pipeline (and external consumers of the cleaned files)
// expects.
func (d *Dataset) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	record := make([]string, len(d.Columns))
	for _, row := range d.Rows {
		for i, col := range d.Columns {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
