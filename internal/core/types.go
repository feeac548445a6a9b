// Package core implements the spreadsheet reconciliation pipeline: header
// matching against the canonical field table, dataset classification, and
// the row-granular import executor. It has no HTTP dependencies.
package core

import (
	"context"
	"errors"

	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/excel"
	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/store"
)

// ErrUnknownDataset is returned for a dataset key outside the registry.
var ErrUnknownDataset = errors.New("unknown dataset")

// Dataset identifies which of the four record families a sheet feeds.
type Dataset string

const (
	DatasetClients    Dataset = "clients"
	DatasetOrders     Dataset = "orders"
	DatasetProduction Dataset = "production"
	DatasetStocks     Dataset = "stocks"
)

// ParseDataset validates a dataset key received at the system boundary.
func ParseDataset(s string) (Dataset, error) {
	switch Dataset(s) {
	case DatasetClients, DatasetOrders, DatasetProduction, DatasetStocks:
		return Dataset(s), nil
	}
	return "", ErrUnknownDataset
}

// ColumnMapping ties one spreadsheet column to a canonical field. An empty
// CanonicalField means the column is ignored. The mapping returned from
// parsing is advisory; the mapping submitted with an import request is
// authoritative and used verbatim, never re-inferred.
type ColumnMapping struct {
	ExcelColumn    string   `json:"excelColumn"`
	CanonicalField string   `json:"canonicalField"`
	SampleValues   []string `json:"sampleValues"`
	Confidence     float64  `json:"confidence"`
}

// MaxDetails caps the diagnostics retained in an ImportOutcome. The
// counters stay exact over every row regardless.
const MaxDetails = 20

// ImportOutcome accumulates the result of one import run.
type ImportOutcome struct {
	Imported int      `json:"imported"`
	Errors   int      `json:"errors"`
	Skipped  int      `json:"skipped"`
	Details  []string `json:"details"`
}

func (o *ImportOutcome) addDetail(s string) {
	if len(o.Details) < MaxDetails {
		o.Details = append(o.Details, s)
	}
}

// Total returns the number of rows accounted for.
func (o *ImportOutcome) Total() int {
	return o.Imported + o.Errors + o.Skipped
}

// Store is the persistence surface the executor needs. Product is
// read-only to the pipeline: there is deliberately no CreateProduct.
type Store interface {
	FindClientByName(ctx context.Context, name string) (*store.Client, error)
	CreateClient(ctx context.Context, c *store.Client) error
	FindProductByName(ctx context.Context, name string) (*store.Product, error)
	CreateOrder(ctx context.Context, o *store.Order) error
	CreateProductionEntry(ctx context.Context, e *store.ProductionEntry) error
	CreateStockEntry(ctx context.Context, e *store.StockEntry) error
}

// RowStatus says how the executor should count a handled row.
type RowStatus int

const (
	// RowImported counts the row as successfully imported.
	RowImported RowStatus = iota
	// RowSkipped counts the row as skipped; Detail may carry a diagnostic.
	RowSkipped
)

// RowResult is a dataset handler's verdict for one row.
type RowResult struct {
	Status RowStatus
	Detail string
}

// RowHandler converts one spreadsheet row into store operations. A
// returned error counts the row under Errors and never aborts the batch.
type RowHandler func(ctx context.Context, rc *RowContext) (RowResult, error)

// DatasetInfo describes a dataset for listing and template generation.
type DatasetInfo struct {
	Key             Dataset  `json:"key"`
	Label           string   `json:"label"`
	TemplateHeaders []string `json:"templateHeaders"`
	ExampleRow      []string `json:"-"`
}

// DatasetDefinition contains everything needed to import one dataset type.
type DatasetDefinition struct {
	Info DatasetInfo
	// Required lists canonical fields that must be non-empty for a row to
	// be processed; rows failing the check are skipped without diagnostic.
	Required  []string
	ImportRow RowHandler
}

// RowContext gives a handler access to one row's cells by canonical field,
// plus the entity resolvers configured for the dataset.
type RowContext struct {
	// Line is the 1-based spreadsheet line number of this row: data row i
	// is line i+2, the header occupying line 1.
	Line int

	row      excel.Row
	fieldCol map[string]string

	Store    Store
	Clients  ClientResolver
	Products ProductResolver
}

// Field returns the trimmed cell text for a canonical field, or "" when
// the field is unmapped, the column is absent, or the cell is blank.
func (rc *RowContext) Field(name string) string {
	col, ok := rc.fieldCol[name]
	if !ok {
		return ""
	}
	return CleanCell(rc.row[col])
}

// Float parses a canonical field as an amount; absent or unparsable cells
// yield the fallback.
func (rc *RowContext) Float(name string, fallback float64) float64 {
	if v, ok := ParseAmount(rc.Field(name)); ok {
		return v
	}
	return fallback
}
