package datasets_test

import (
	"testing"

	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/core"
	_ "github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/core/datasets"
	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/excel"
)

func TestAllDatasetsRegistered(t *testing.T) {
	want := []core.Dataset{core.DatasetClients, core.DatasetOrders, core.DatasetProduction, core.DatasetStocks}

	defs := core.All()
	if len(defs) != len(want) {
		t.Fatalf("got %d datasets, want %d", len(defs), len(want))
	}
	for i, key := range want {
		if defs[i].Info.Key != key {
			t.Errorf("dataset %d = %q, want %q", i, defs[i].Info.Key, key)
		}
		if len(defs[i].Info.TemplateHeaders) == 0 {
			t.Errorf("dataset %q has no template headers", key)
		}
		if len(defs[i].Info.ExampleRow) != len(defs[i].Info.TemplateHeaders) {
			t.Errorf("dataset %q example row length %d != header count %d",
				key, len(defs[i].Info.ExampleRow), len(defs[i].Info.TemplateHeaders))
		}
		if defs[i].ImportRow == nil {
			t.Errorf("dataset %q has no row handler", key)
		}
	}
}

// A downloaded template, re-uploaded untouched, must classify back to the
// dataset it was generated for.
func TestTemplateHeadersClassifyToOwnDataset(t *testing.T) {
	m := core.NewMatcher(core.DefaultSynonyms())

	for _, def := range core.All() {
		def := def
		t.Run(string(def.Info.Key), func(t *testing.T) {
			table := &excel.RawTable{Headers: def.Info.TemplateHeaders}
			mapping := m.MatchHeaders(table)

			if got := core.DetectDataset(mapping); got != def.Info.Key {
				t.Errorf("template for %q classifies as %q", def.Info.Key, got)
			}

			for _, col := range mapping {
				if col.Confidence != core.ConfidenceExact {
					t.Errorf("template header %q matched with confidence %v, want exact", col.ExcelColumn, col.Confidence)
				}
			}
		})
	}
}
