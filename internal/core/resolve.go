package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/store"
)

// Resolution tags how an entity reference in a row is resolved against the
// store. The policy differs by entity kind and is fixed per dataset, which
// keeps the four dataset handlers structurally parallel.
type Resolution int

const (
	// FindOnly accepts only pre-existing records; no match is a skip.
	FindOnly Resolution = iota
	// FindOrCreate creates the record when no exact-name match exists.
	FindOrCreate
)

// ClientResolver resolves a client name against the store. Lookups are
// by exact name. Under FindOrCreate the remaining client.* fields of the
// row fill the created record.
type ClientResolver struct {
	Policy Resolution
	Store  Store
}

// Resolve returns the client for the row, creating it when the policy
// allows. A nil client with nil error means no match under FindOnly.
func (r ClientResolver) Resolve(ctx context.Context, rc *RowContext) (*store.Client, error) {
	name := rc.Field(FieldClientName)
	if name == "" {
		return nil, nil
	}

	found, err := r.Store.FindClientByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find client %q: %w", name, err)
	}
	if found != nil {
		return found, nil
	}
	if r.Policy != FindOrCreate {
		return nil, nil
	}

	c := &store.Client{
		ID:      uuid.New(),
		Name:    name,
		Country: rc.Field(FieldClientCountry),
		City:    rc.Field(FieldClientCity),
		Email:   rc.Field(FieldClientEmail),
		Phone:   rc.Field(FieldClientPhone),
	}
	if c.Country == "" {
		c.Country = store.CountryUnspecified
	}
	if err := r.Store.CreateClient(ctx, c); err != nil {
		return nil, fmt.Errorf("create client %q: %w", name, err)
	}
	return c, nil
}

// ProductResolver resolves a product name against the catalog. Products
// are never created by the import pipeline, so the policy is always
// FindOnly; the tag exists to make that explicit at the wiring site.
type ProductResolver struct {
	Policy Resolution
	Store  Store
}

// Resolve returns the product by exact name, or nil when absent.
func (r ProductResolver) Resolve(ctx context.Context, name string) (*store.Product, error) {
	if name == "" {
		return nil, nil
	}
	p, err := r.Store.FindProductByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find product %q: %w", name, err)
	}
	return p, nil
}
