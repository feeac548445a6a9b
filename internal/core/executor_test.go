package core_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/core"
	_ "github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/core/datasets"
	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/excel"
	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/store"
)

// fakeStore is an in-memory core.Store for executor tests.
type fakeStore struct {
	clients    []*store.Client
	products   map[string]*store.Product
	orders     []*store.Order
	production []*store.ProductionEntry
	stocks     []*store.StockEntry

	failOrders bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: make(map[string]*store.Product)}
}

func (f *fakeStore) addProduct(name string, pricePerKg float64) {
	f.products[name] = &store.Product{ID: uuid.New(), Name: name, PricePerKg: pricePerKg}
}

func (f *fakeStore) FindClientByName(_ context.Context, name string) (*store.Client, error) {
	for _, c := range f.clients {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateClient(_ context.Context, c *store.Client) error {
	f.clients = append(f.clients, c)
	return nil
}

func (f *fakeStore) FindProductByName(_ context.Context, name string) (*store.Product, error) {
	return f.products[name], nil
}

func (f *fakeStore) CreateOrder(_ context.Context, o *store.Order) error {
	if f.failOrders {
		return errors.New("connection reset")
	}
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeStore) CreateProductionEntry(_ context.Context, e *store.ProductionEntry) error {
	f.production = append(f.production, e)
	return nil
}

func (f *fakeStore) CreateStockEntry(_ context.Context, e *store.StockEntry) error {
	f.stocks = append(f.stocks, e)
	return nil
}

func ordersTable(rows ...excel.Row) (*excel.RawTable, []core.ColumnMapping) {
	headers := []string{"Client", "Produit", "Quantité", "Prix unitaire", "Date commande", "Statut", "Devise"}
	table := &excel.RawTable{Headers: headers, Rows: rows}
	mapping := core.NewMatcher(core.DefaultSynonyms()).MatchHeaders(table)
	return table, mapping
}

func TestExecuteOrders(t *testing.T) {
	st := newFakeStore()
	st.addProduct("CARUMA", 2.4)

	table, mapping := ordersTable(
		excel.Row{"Client": "Carob Trading GmbH", "Produit": "CARUMA", "Quantité": "500", "Prix unitaire": "2.00", "Date commande": "2026-01-15", "Statut": "confirmed", "Devise": "USD"},
		excel.Row{"Client": "Carob Trading GmbH", "Produit": "CARUMA", "Quantité": "100"},
	)

	outcome, err := core.NewImporter(st).Execute(context.Background(), core.DatasetOrders, table, mapping)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if outcome.Imported != 2 || outcome.Errors != 0 || outcome.Skipped != 0 {
		t.Fatalf("outcome = %+v, want 2 imported", outcome)
	}
	if len(st.orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(st.orders))
	}

	first := st.orders[0]
	if first.TotalAmount != 1000 {
		t.Errorf("TotalAmount = %v, want 1000", first.TotalAmount)
	}
	if first.Status != "confirmed" || first.Currency != "USD" {
		t.Errorf("status/currency = %q/%q, want confirmed/USD", first.Status, first.Currency)
	}
	if len(first.Lines) != 1 || first.Lines[0].Quantity != 500 || first.Lines[0].UnitPrice != 2 {
		t.Errorf("lines = %+v", first.Lines)
	}

	// Row 2 has no unit price: the catalog price fills in, and the order
	// defaults apply.
	second := st.orders[1]
	if second.TotalAmount != 240 {
		t.Errorf("TotalAmount = %v, want 240", second.TotalAmount)
	}
	if second.Status != "pending" || second.Currency != "EUR" {
		t.Errorf("status/currency = %q/%q, want pending/EUR", second.Status, second.Currency)
	}

	// Both rows name the same client: created once, reused after.
	if len(st.clients) != 1 {
		t.Fatalf("got %d clients, want 1", len(st.clients))
	}
	if first.ClientID != second.ClientID {
		t.Error("orders reference different clients")
	}
}

func TestExecuteOrdersUnknownProduct(t *testing.T) {
	st := newFakeStore()
	st.addProduct("CARUMA", 2.4)

	table, mapping := ordersTable(
		excel.Row{"Client": "Acme", "Produit": "CARUMA", "Quantité": "10"},
		excel.Row{"Client": "Acme", "Produit": "FARINE", "Quantité": "10"},
	)

	outcome, err := core.NewImporter(st).Execute(context.Background(), core.DatasetOrders, table, mapping)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if outcome.Imported != 1 || outcome.Skipped != 1 {
		t.Fatalf("outcome = %+v, want 1 imported 1 skipped", outcome)
	}
	if len(outcome.Details) != 1 {
		t.Fatalf("details = %v, want one entry", outcome.Details)
	}
	// Data row 2 sits on spreadsheet line 3.
	if want := `row 3: unknown product "FARINE"`; outcome.Details[0] != want {
		t.Errorf("detail = %q, want %q", outcome.Details[0], want)
	}
}

func TestExecuteOrdersRowFailureIsolation(t *testing.T) {
	st := newFakeStore()
	st.addProduct("CARUMA", 2.4)
	st.failOrders = true

	table, mapping := ordersTable(
		excel.Row{"Client": "Acme", "Produit": "CARUMA", "Quantité": "10"},
		excel.Row{"Client": "Acme", "Produit": "CARUMA", "Quantité": "20"},
	)

	outcome, err := core.NewImporter(st).Execute(context.Background(), core.DatasetOrders, table, mapping)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if outcome.Errors != 2 || outcome.Imported != 0 {
		t.Fatalf("outcome = %+v, want 2 errors", outcome)
	}
	for i, d := range outcome.Details {
		if !strings.HasPrefix(d, fmt.Sprintf("row %d:", i+2)) {
			t.Errorf("detail %d = %q, want row %d prefix", i, d, i+2)
		}
	}
}

func TestExecuteClients(t *testing.T) {
	st := newFakeStore()

	headers := []string{"Client", "Pays", "Ville", "Email", "Téléphone"}
	table := &excel.RawTable{Headers: headers, Rows: []excel.Row{
		{"Client": "Acme", "Pays": "France", "Ville": "Lyon", "Email": "a@acme.fr", "Téléphone": "+33 1 00 00 00 00"},
		{"Client": "Acme"},
		{"Pays": "Espagne"},
	}}
	mapping := core.NewMatcher(core.DefaultSynonyms()).MatchHeaders(table)

	outcome, err := core.NewImporter(st).Execute(context.Background(), core.DatasetClients, table, mapping)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// The clients sheet inserts every named row, duplicates included; the
	// nameless row is skipped without a diagnostic.
	if outcome.Imported != 2 || outcome.Skipped != 1 || outcome.Errors != 0 {
		t.Fatalf("outcome = %+v, want 2 imported 1 skipped", outcome)
	}
	if len(outcome.Details) != 0 {
		t.Errorf("details = %v, want none", outcome.Details)
	}
	if len(st.clients) != 2 {
		t.Fatalf("got %d clients, want 2", len(st.clients))
	}
	if st.clients[0].Country != "France" {
		t.Errorf("Country = %q, want France", st.clients[0].Country)
	}
	if st.clients[1].Country != store.CountryUnspecified {
		t.Errorf("Country = %q, want %q", st.clients[1].Country, store.CountryUnspecified)
	}
}

func TestExecuteProduction(t *testing.T) {
	st := newFakeStore()
	st.addProduct("CARUMA", 2.4)

	headers := []string{"Produit", "Quantité produite", "Date de production", "Équipe", "Qualité"}
	table := &excel.RawTable{Headers: headers, Rows: []excel.Row{
		{"Produit": "CARUMA", "Quantité produite": "1200", "Date de production": "15/01/2026", "Équipe": "Matin", "Qualité": "A"},
		{"Produit": "INCONNU", "Quantité produite": "300"},
	}}
	mapping := core.NewMatcher(core.DefaultSynonyms()).MatchHeaders(table)

	outcome, err := core.NewImporter(st).Execute(context.Background(), core.DatasetProduction, table, mapping)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if outcome.Imported != 1 || outcome.Skipped != 1 {
		t.Fatalf("outcome = %+v, want 1 imported 1 skipped", outcome)
	}
	if len(outcome.Details) != 1 || !strings.Contains(outcome.Details[0], `"INCONNU"`) {
		t.Errorf("details = %v, want unknown product diagnostic", outcome.Details)
	}

	entry := st.production[0]
	if entry.Quantity != 1200 || entry.Shift != "Matin" || entry.Quality != "A" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Date.Day() != 15 || entry.Date.Month() != 1 || entry.Date.Year() != 2026 {
		t.Errorf("Date = %v, want 2026-01-15", entry.Date)
	}
}

func TestExecuteStocksSilentSkip(t *testing.T) {
	st := newFakeStore()
	st.addProduct("CARUMA", 2.4)

	headers := []string{"Produit", "Quantité stock", "Type de mouvement", "Motif", "Date mouvement"}
	table := &excel.RawTable{Headers: headers, Rows: []excel.Row{
		{"Produit": "CARUMA", "Quantité stock": "300", "Type de mouvement": "sortie", "Motif": "expédition"},
		{"Produit": "INCONNU", "Quantité stock": "50"},
	}}
	mapping := core.NewMatcher(core.DefaultSynonyms()).MatchHeaders(table)

	outcome, err := core.NewImporter(st).Execute(context.Background(), core.DatasetStocks, table, mapping)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// Stock sheets carry catalog leftovers routinely; unknown products
	// skip without a diagnostic.
	if outcome.Imported != 1 || outcome.Skipped != 1 {
		t.Fatalf("outcome = %+v, want 1 imported 1 skipped", outcome)
	}
	if len(outcome.Details) != 0 {
		t.Errorf("details = %v, want none", outcome.Details)
	}

	entry := st.stocks[0]
	if entry.Type != store.MovementOut {
		t.Errorf("Type = %q, want %q", entry.Type, store.MovementOut)
	}
	if entry.Quantity != 300 || entry.Reason != "expédition" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestExecuteDetailCap(t *testing.T) {
	st := newFakeStore()

	rows := make([]excel.Row, 0, 30)
	for i := 0; i < 30; i++ {
		rows = append(rows, excel.Row{"Client": "Acme", "Produit": fmt.Sprintf("UNKNOWN-%d", i), "Quantité": "1"})
	}
	table, mapping := ordersTable(rows...)

	outcome, err := core.NewImporter(st).Execute(context.Background(), core.DatasetOrders, table, mapping)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// The counters stay exact past the diagnostic cap.
	if outcome.Skipped != 30 {
		t.Errorf("Skipped = %d, want 30", outcome.Skipped)
	}
	if len(outcome.Details) != core.MaxDetails {
		t.Errorf("got %d details, want %d", len(outcome.Details), core.MaxDetails)
	}
	if outcome.Total() != len(table.Rows) {
		t.Errorf("Total() = %d, want %d", outcome.Total(), len(table.Rows))
	}
}

// Importing the same order file twice must create an order per run while
// the client, found by exact name, is created only on the first pass.
func TestExecuteOrdersReimport(t *testing.T) {
	st := newFakeStore()
	st.addProduct("CARUMA", 2.4)

	importer := core.NewImporter(st)
	for run := 0; run < 2; run++ {
		table, mapping := ordersTable(
			excel.Row{"Client": "Carob Trading GmbH", "Produit": "CARUMA", "Quantité": "500"},
		)
		outcome, err := importer.Execute(context.Background(), core.DatasetOrders, table, mapping)
		if err != nil {
			t.Fatalf("run %d: %v", run+1, err)
		}
		if outcome.Imported != 1 {
			t.Fatalf("run %d outcome = %+v, want 1 imported", run+1, outcome)
		}
	}

	if len(st.orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(st.orders))
	}
	if st.orders[0].ID == st.orders[1].ID {
		t.Error("re-imported orders share an ID")
	}
	if len(st.clients) != 1 {
		t.Fatalf("got %d clients, want 1", len(st.clients))
	}
	if st.orders[0].ClientID != st.clients[0].ID || st.orders[1].ClientID != st.clients[0].ID {
		t.Error("orders do not both reference the deduplicated client")
	}
}

func TestExecuteLogsSummary(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	st := newFakeStore()
	st.addProduct("CARUMA", 2.4)
	table, mapping := ordersTable(excel.Row{"Client": "Acme", "Produit": "CARUMA", "Quantité": "10"})

	if _, err := core.NewImporter(st).Execute(context.Background(), core.DatasetOrders, table, mapping); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	logged := buf.String()
	for _, want := range []string{"import executed", "dataset=orders", "imported=1"} {
		if !strings.Contains(logged, want) {
			t.Errorf("log output %q missing %q", logged, want)
		}
	}
}

func TestExecuteUnknownDataset(t *testing.T) {
	st := newFakeStore()
	table := &excel.RawTable{Headers: []string{"Client"}, Rows: []excel.Row{{"Client": "Acme"}}}

	_, err := core.NewImporter(st).Execute(context.Background(), core.Dataset("fournisseurs"), table, nil)
	if !errors.Is(err, core.ErrUnknownDataset) {
		t.Fatalf("err = %v, want ErrUnknownDataset", err)
	}
}

func TestExecuteCancelledContext(t *testing.T) {
	st := newFakeStore()
	table, mapping := ordersTable(excel.Row{"Client": "Acme", "Produit": "CARUMA", "Quantité": "1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := core.NewImporter(st).Execute(ctx, core.DatasetOrders, table, mapping)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
