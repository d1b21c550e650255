package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// FileResult is the per-file outcome of a pipeline run.
type FileResult struct {
	File    string `json:"file"`
	Lab     string `json:"lab,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
	Reason  string `json:"reason,omitempty"`

	RowsProcessed int `json:"rows_processed"`
	RowsSkipped   int `json:"rows_skipped"`
	EdgesInserted int `json:"edges_inserted"`
	EdgesAbsorbed int `json:"edges_absorbed"`
}

// Report is the structured phase-by-phase result of a pipeline run.
type Report struct {
	StartedAt   time.Time               `json:"started_at"`
	FinishedAt  time.Time               `json:"finished_at"`
	PreCleanup  types.CleanupResult     `json:"pre_cleanup"`
	Files       []FileResult            `json:"files"`
	PostCleanup types.CleanupResult     `json:"post_cleanup"`
	Validation  *types.ValidationReport `json:"validation,omitempty"`
}

// EdgesInserted sums the new edges written across all files.
func (r *Report) EdgesInserted() int {
	var n int
	for _, f := range r.Files {
		n += f.EdgesInserted
	}
	return n
}

// FilesSkipped counts the files rejected for input defects.
func (r *Report) FilesSkipped() int {
	var n int
	for _, f := range r.Files {
		if f.Skipped {
			n++
		}
	}
	return n
}

// Render writes the human-readable phase report.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintln(w, "Ingestion report")
	fmt.Fprintf(w, "  started:  %s\n", r.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "  finished: %s\n", r.FinishedAt.Format(time.RFC3339))

	renderCleanup(w, "pre-cleanup", r.PreCleanup)
	fmt.Fprintf(w, "  files: %d processed, %d skipped\n", len(r.Files)-r.FilesSkipped(), r.FilesSkipped())
	for _, f := range r.Files {
		if f.Skipped {
			fmt.Fprintf(w, "    %s: skipped (%s)\n", f.File, f.Reason)
			continue
		}
		fmt.Fprintf(w, "    %s (%s): %d rows, %d skipped, %d edges inserted, %d absorbed\n",
			f.File, f.Lab, f.RowsProcessed, f.RowsSkipped, f.EdgesInserted, f.EdgesAbsorbed)
	}
	renderCleanup(w, "post-cleanup", r.PostCleanup)

	if r.Validation != nil {
		if r.Validation.Clean() {
			fmt.Fprintln(w, "  validation: all checks passed")
		} else {
			fmt.Fprintf(w, "  validation: %d null-coded standards, %d null-coded edges, %d duplicate edges\n",
				r.Validation.NullCodeStandards, r.Validation.NullCodeEdges, len(r.Validation.DuplicateEdges))
			for _, d := range r.Validation.DuplicateEdges {
				fmt.Fprintf(w, "    duplicate: %s / %s / %s (%d)\n", d.LabName, d.TestName, d.StandardCode, d.Count)
			}
		}
	}
}

func renderCleanup(w io.Writer, phase string, c types.CleanupResult) {
	fmt.Fprintf(w, "  %s: %d conflicting edges deleted, %d duplicates deleted, %d edges reassigned, %d standards deleted\n",
		phase, c.ConflictingEdgesDeleted, c.DuplicateEdgesDeleted, c.EdgesReassigned, c.StandardsDeleted)
}
