package core

// DetectDataset infers the dataset type from the set of matched canonical
// fields. The precedence is fixed and checks the specific production and
// stock signals before the generic order signal:
//
//  1. any production.* field and no order.*/orderline.* field -> production
//  2. any stock.* field and no order.*/orderline.*/production.* -> stocks
//  3. any order.*/orderline.* field -> orders
//  4. otherwise -> clients
//
// A sheet with product, quantity and date columns but zero order fields
// therefore classifies as production, not orders. Confidence scores play
// no part; a field counts as matched as soon as one column maps to it.
func DetectDataset(mappings []ColumnMapping) Dataset {
	matched := make(map[string]bool)
	for _, m := range mappings {
		if m.CanonicalField != "" {
			matched[fieldEntity(m.CanonicalField)] = true
		}
	}

	hasOrder := matched["order"] || matched["orderline"]

	if matched["production"] && !hasOrder {
		return DatasetProduction
	}
	if matched["stock"] && !hasOrder && !matched["production"] {
		return DatasetStocks
	}
	if hasOrder {
		return DatasetOrders
	}
	return DatasetClients
}
