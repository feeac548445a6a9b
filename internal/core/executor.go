package core

import (
	"context"
	"fmt"

	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/excel"
	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/logging"
)

// Importer executes imports against a store. Rows are processed strictly
// in sheet order, each as an independent unit of work; there is no
// whole-file transaction, so a failure on a late row never rolls back
// earlier rows.
type Importer struct {
	store Store
}

// NewImporter creates an Importer backed by the given store.
func NewImporter(st Store) *Importer {
	return &Importer{store: st}
}

// Execute imports every row of the table as the given dataset, using the
// caller-supplied mapping verbatim. The mapping is trusted as-is: it may
// have been edited by a human after parsing and is never re-inferred.
//
// Per-row failures accumulate into the outcome and never abort the batch.
// Only three conditions surface as an error: an unknown dataset, a nil
// table, and a cancelled context, which aborts as a fatal pipeline error
// rather than a partial outcome.
func (im *Importer) Execute(ctx context.Context, dataset Dataset, table *excel.RawTable, mappings []ColumnMapping) (*ImportOutcome, error) {
	def, ok := Get(dataset)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, dataset)
	}
	if table == nil {
		return nil, fmt.Errorf("no table to import")
	}

	// Last-mapped column wins when two columns resolve to the same field.
	fieldCol := make(map[string]string, len(mappings))
	for _, m := range mappings {
		if m.CanonicalField != "" {
			fieldCol[m.CanonicalField] = m.ExcelColumn
		}
	}

	outcome := &ImportOutcome{Details: []string{}}

	clients := ClientResolver{Policy: FindOrCreate, Store: im.store}
	products := ProductResolver{Policy: FindOnly, Store: im.store}

	for i, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("import aborted at line %d: %w", i+2, err)
		}

		rc := &RowContext{
			Line:     i + 2,
			row:      row,
			fieldCol: fieldCol,
			Store:    im.store,
			Clients:  clients,
			Products: products,
		}

		if missingRequired(rc, def.Required) {
			outcome.Skipped++
			continue
		}

		res, err := def.ImportRow(ctx, rc)
		if err != nil {
			outcome.Errors++
			outcome.addDetail(fmt.Sprintf("row %d: %v", rc.Line, err))
			continue
		}

		switch res.Status {
		case RowSkipped:
			outcome.Skipped++
			if res.Detail != "" {
				outcome.addDetail(res.Detail)
			}
		default:
			outcome.Imported++
		}
	}

	logging.WithFields(ctx, "dataset", dataset).Info("import executed",
		"rows", len(table.Rows),
		"imported", outcome.Imported,
		"errors", outcome.Errors,
		"skipped", outcome.Skipped,
	)

	return outcome, nil
}

func missingRequired(rc *RowContext, required []string) bool {
	for _, field := range required {
		if rc.Field(field) == "" {
			return true
		}
	}
	return false
}
