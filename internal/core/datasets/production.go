package datasets

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/core"
	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/store"
)

func init() {
	core.Register(core.DatasetDefinition{
		Info: core.DatasetInfo{
			Key:             core.DatasetProduction,
			Label:           "Production",
			TemplateHeaders: []string{"Produit", "Quantité produite", "Date de production", "Équipe", "Qualité"},
			ExampleRow:      []string{"CARUMA", "1200", "2026-01-15", "Matin", "A"},
		},
		Required:  []string{core.FieldProductName},
		ImportRow: importProductionRow,
	})
}

// importProductionRow records one production entry. The product must
// exist; an unknown name skips the row with a diagnostic.
func importProductionRow(ctx context.Context, rc *core.RowContext) (core.RowResult, error) {
	productName := rc.Field(core.FieldProductName)
	product, err := rc.Products.Resolve(ctx, productName)
	if err != nil {
		return core.RowResult{}, err
	}
	if product == nil {
		return core.RowResult{
			Status: core.RowSkipped,
			Detail: fmt.Sprintf("row %d: unknown product %q", rc.Line, productName),
		}, nil
	}

	entry := &store.ProductionEntry{
		ID:        uuid.New(),
		ProductID: product.ID,
		Quantity:  rc.Float(core.FieldProductionQuantity, 0),
		Date:      dateOr(rc, core.FieldProductionDate, time.Now()),
		Shift:     rc.Field(core.FieldProductionShift),
		Quality:   rc.Field(core.FieldProductionQuality),
	}

	if err := rc.Store.CreateProductionEntry(ctx, entry); err != nil {
		return core.RowResult{}, err
	}
	return core.RowResult{Status: core.RowImported}, nil
}
