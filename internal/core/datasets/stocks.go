package datasets

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/core"
	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/store"
)

func init() {
	core.Register(core.DatasetDefinition{
		Info: core.DatasetInfo{
			Key:             core.DatasetStocks,
			Label:           "Stocks",
			TemplateHeaders: []string{"Produit", "Quantité stock", "Type de mouvement", "Motif", "Date mouvement"},
			ExampleRow:      []string{"CARUMA", "300", "entrée", "réception usine", "2026-01-15"},
		},
		Required:  []string{core.FieldProductName},
		ImportRow: importStockRow,
	})
}

// importStockRow records one stock movement. Stock sheets are routinely
// exported with catalog leftovers, so an unknown product is skipped
// silently rather than flagged.
func importStockRow(ctx context.Context, rc *core.RowContext) (core.RowResult, error) {
	product, err := rc.Products.Resolve(ctx, rc.Field(core.FieldProductName))
	if err != nil {
		return core.RowResult{}, err
	}
	if product == nil {
		return core.RowResult{Status: core.RowSkipped}, nil
	}

	entry := &store.StockEntry{
		ID:        uuid.New(),
		ProductID: product.ID,
		Quantity:  rc.Float(core.FieldStockQuantity, 0),
		Type:      store.ParseMovementType(rc.Field(core.FieldStockType)),
		Reason:    rc.Field(core.FieldStockReason),
		Date:      dateOr(rc, core.FieldStockDate, time.Now()),
	}

	if err := rc.Store.CreateStockEntry(ctx, entry); err != nil {
		return core.RowResult{}, err
	}
	return core.RowResult{Status: core.RowImported}, nil
}
