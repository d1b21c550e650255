// Package pipeline orchestrates the capability ingestion run: an
// integrity cleanup, then per-file normalization, classification, entity
// resolution, and edge building, then a second cleanup and a read-only
// validation. The run is a single-threaded batch; files are processed
// fully or skipped fully, and a store failure aborts the whole run.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/labgraph/internal/classify"
	"github.com/mesh-intelligence/labgraph/internal/normalize"
	"github.com/mesh-intelligence/labgraph/internal/sqlite"
	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// Runner executes the ingestion pipeline. All fields except Log are
// required; a nil Log disables logging.
type Runner struct {
	Store      *sqlite.Store
	Classifier *classify.Classifier
	RawDir     string
	Log        *zap.Logger
}

// Run executes the full pipeline and returns its report. Input defects
// (missing columns, unreadable files, empty cells) are skipped and
// logged; store and transaction failures abort the run with the store in
// its last committed state.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	report := &Report{StartedAt: time.Now().UTC()}

	pre, err := r.Store.Cleanup(ctx)
	if err != nil {
		return nil, fmt.Errorf("pre-ingestion cleanup: %w", err)
	}
	report.PreCleanup = pre
	log.Info("cleanup complete",
		zap.Int("edges_reassigned", pre.EdgesReassigned),
		zap.Int("standards_deleted", pre.StandardsDeleted))

	paths, err := filepath.Glob(filepath.Join(r.RawDir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.RawDir, err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		name := filepath.Base(path)

		ds, err := normalize.LoadFile(path)
		if err != nil {
			// Input defect: skip the whole file, never ingest it partially.
			log.Warn("skipping file", zap.String("file", name), zap.Error(err))
			report.Files = append(report.Files, FileResult{File: name, Skipped: true, Reason: err.Error()})
			continue
		}

		fr, err := r.buildFile(ctx, ds)
		fr.File = name
		if err != nil {
			return nil, fmt.Errorf("building capabilities from %s: %w", name, err)
		}
		report.Files = append(report.Files, fr)
		log.Info("file ingested",
			zap.String("file", name),
			zap.String("lab", fr.Lab),
			zap.Int("rows", fr.RowsProcessed),
			zap.Int("skipped", fr.RowsSkipped),
			zap.Int("edges", fr.EdgesInserted))
	}

	post, err := r.Store.Cleanup(ctx)
	if err != nil {
		return nil, fmt.Errorf("post-ingestion cleanup: %w", err)
	}
	report.PostCleanup = post

	validation, err := r.Store.Validate(ctx)
	if err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	report.Validation = validation
	if !validation.Clean() {
		log.Warn("validation found residual defects",
			zap.Int("null_code_standards", validation.NullCodeStandards),
			zap.Int("null_code_edges", validation.NullCodeEdges),
			zap.Int("duplicate_edges", len(validation.DuplicateEdges)))
	}

	report.FinishedAt = time.Now().UTC()
	return report, nil
}

// buildFile ingests one normalized dataset inside a single transaction:
// the build either lands completely or not at all.
func (r *Runner) buildFile(ctx context.Context, ds *normalize.Dataset) (FileResult, error) {
	fr := FileResult{Lab: ds.LabName}

	err := r.Store.WithTx(ctx, func(tx *sqlite.Store) error {
		labID, err := tx.Labs.FindOrCreate(ctx, ds.LabName)
		if err != nil {
			return fmt.Errorf("resolving lab %q: %w", ds.LabName, err)
		}

		for _, row := range ds.Rows {
			test := strings.TrimSpace(row[normalize.ColTestName])
			standard := strings.TrimSpace(row[normalize.ColTestStandard])
			if placeholder(test) || placeholder(standard) {
				fr.RowsSkipped++
				continue
			}

			cl := r.Classifier.Classify(test, standard)

			domainID, err := tx.Domains.FindOrCreate(ctx, cl.Domain)
			if err != nil {
				return fmt.Errorf("resolving domain %q: %w", cl.Domain, err)
			}
			testID, err := tx.Tests.FindOrCreate(ctx, test)
			if err != nil {
				return fmt.Errorf("resolving test %q: %w", test, err)
			}
			standardID, err := tx.Standards.FindOrCreate(ctx, standard)
			if err != nil {
				return fmt.Errorf("resolving standard %q: %w", standard, err)
			}

			inserted, err := tx.Capabilities.Insert(ctx, types.Capability{
				LabID:      labID,
				DomainID:   domainID,
				TestID:     testID,
				StandardID: standardID,
			})
			if err != nil {
				return err
			}
			if inserted {
				fr.EdgesInserted++
			} else {
				fr.EdgesAbsorbed++
			}
			fr.RowsProcessed++
		}
		return nil
	})
	return fr, err
}

// placeholder reports whether a cell is empty or one of the placeholder
// strings spreadsheet exports produce for blank cells.
func placeholder(v string) bool {
	switch strings.ToLower(v) {
	case "", "nan", "none":
		return true
	}
	return false
}
