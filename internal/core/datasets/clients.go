package datasets

import (
	"context"

	"github.com/google/uuid"

	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/core"
	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/store"
)

func init() {
	core.Register(core.DatasetDefinition{
		Info: core.DatasetInfo{
			Key:             core.DatasetClients,
			Label:           "Clients",
			TemplateHeaders: []string{"Client", "Pays", "Ville", "Email", "Téléphone"},
			ExampleRow:      []string{"Carob Trading GmbH", "Allemagne", "Hambourg", "contact@carobtrading.de", "+49 40 1234567"},
		},
		Required:  []string{core.FieldClientName},
		ImportRow: importClientRow,
	})
}

// importClientRow inserts one client per row. The clients sheet is a
// straight load: every row becomes a new record, duplicates included.
// Deduplication by name is the orders path's concern, not this one's.
func importClientRow(ctx context.Context, rc *core.RowContext) (core.RowResult, error) {
	c := &store.Client{
		ID:      uuid.New(),
		Name:    rc.Field(core.FieldClientName),
		Country: rc.Field(core.FieldClientCountry),
		City:    rc.Field(core.FieldClientCity),
		Email:   rc.Field(core.FieldClientEmail),
		Phone:   rc.Field(core.FieldClientPhone),
	}
	if c.Country == "" {
		c.Country = store.CountryUnspecified
	}
	if err := rc.Store.CreateClient(ctx, c); err != nil {
		return core.RowResult{}, err
	}
	return core.RowResult{Status: core.RowImported}, nil
}
