package datasets

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/core"
	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/store"
)

const (
	defaultOrderStatus   = "pending"
	defaultOrderCurrency = "EUR"
)

func init() {
	core.Register(core.DatasetDefinition{
		Info: core.DatasetInfo{
			Key:             core.DatasetOrders,
			Label:           "Commandes",
			TemplateHeaders: []string{"Client", "Produit", "Quantité", "Prix unitaire", "Date commande", "Statut", "Devise"},
			ExampleRow:      []string{"Carob Trading GmbH", "CARUMA", "500", "2.40", "2026-01-15", "pending", "EUR"},
		},
		Required:  []string{core.FieldClientName, core.FieldProductName},
		ImportRow: importOrderRow,
	})
}

// importOrderRow creates one order with a single line. The client is
// found or created from the row's client.* fields; the product must
// already exist in the catalog, and an unknown name skips the row with a
// diagnostic so the operator can fix the sheet.
func importOrderRow(ctx context.Context, rc *core.RowContext) (core.RowResult, error) {
	client, err := rc.Clients.Resolve(ctx, rc)
	if err != nil {
		return core.RowResult{}, err
	}

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

	quantity := rc.Float(core.FieldLineQuantity, 0)
	unitPrice := rc.Float(core.FieldLineUnitPrice, product.PricePerKg)

	order := &store.Order{
		ID:          uuid.New(),
		ClientID:    client.ID,
		Status:      rc.Field(core.FieldOrderStatus),
		TotalAmount: quantity * unitPrice,
		Currency:    rc.Field(core.FieldOrderCurrency),
		CreatedAt:   dateOr(rc, core.FieldOrderDate, time.Now()),
		Lines: []store.OrderLine{{
			ProductID: product.ID,
			Quantity:  quantity,
			UnitPrice: unitPrice,
		}},
	}
	if order.Status == "" {
		order.Status = defaultOrderStatus
	}
	if order.Currency == "" {
		order.Currency = defaultOrderCurrency
	}

	if err := rc.Store.CreateOrder(ctx, order); err != nil {
		return core.RowResult{}, err
	}
	return core.RowResult{Status: core.RowImported}, nil
}
