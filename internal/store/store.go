package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the PostgreSQL persistence layer. All operations are single
// statements or a single short transaction; the import pipeline holds no
// lock across rows.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store over an existing connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema creates the tables this service owns if they do not exist.
// Products are included so a fresh database accepts catalog seeding, even
// though the import pipeline never writes to the table.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS clients (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	country    TEXT NOT NULL,
	city       TEXT,
	email      TEXT,
	phone      TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS clients_name_idx ON clients (name);

CREATE TABLE IF NOT EXISTS products (
	id           UUID PRIMARY KEY,
	name         TEXT NOT NULL UNIQUE,
	price_per_kg NUMERIC(12,2) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS orders (
	id           UUID PRIMARY KEY,
	client_id    UUID NOT NULL REFERENCES clients (id),
	status       TEXT NOT NULL,
	total_amount NUMERIC(14,2) NOT NULL,
	currency     TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS order_lines (
	order_id   UUID NOT NULL REFERENCES orders (id),
	product_id UUID NOT NULL REFERENCES products (id),
	quantity   NUMERIC(12,2) NOT NULL,
	unit_price NUMERIC(12,2) NOT NULL
);

CREATE TABLE IF NOT EXISTS production_entries (
	id         UUID PRIMARY KEY,
	product_id UUID NOT NULL REFERENCES products (id),
	quantity   NUMERIC(12,2) NOT NULL,
	date       TIMESTAMPTZ NOT NULL,
	shift      TEXT,
	quality    TEXT
);

CREATE TABLE IF NOT EXISTS stock_entries (
	id         UUID PRIMARY KEY,
	product_id UUID NOT NULL REFERENCES products (id),
	quantity   NUMERIC(12,2) NOT NULL,
	type       TEXT NOT NULL,
	reason     TEXT,
	date       TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS import_log (
	id          UUID PRIMARY KEY,
	dataset     TEXT NOT NULL,
	file_name   TEXT NOT NULL,
	imported    INT NOT NULL,
	errors      INT NOT NULL,
	skipped     INT NOT NULL,
	duration_ms BIGINT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// FindClientByName returns the client with the exact name, or nil when no
// such client exists.
func (s *Store) FindClientByName(ctx context.Context, name string) (*Client, error) {
	var (
		c     Client
		city  pgtype.Text
		email pgtype.Text
		phone pgtype.Text
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, country, city, email, phone FROM clients WHERE name = $1 LIMIT 1`,
		name,
	).Scan(&c.ID, &c.Name, &c.Country, &city, &email, &phone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	c.City = city.String
	c.Email = email.String
	c.Phone = phone.String
	return &c, nil
}

// CreateClient inserts a client record.
func (s *Store) CreateClient(ctx context.Context, c *Client) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO clients (id, name, country, city, email, phone) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Country, textOrNull(c.City), textOrNull(c.Email), textOrNull(c.Phone),
	)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

// FindProductByName returns the catalog product with the exact name, or
// nil when absent.
func (s *Store) FindProductByName(ctx context.Context, name string) (*Product, error) {
	var p Product
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, price_per_kg FROM products WHERE name = $1 LIMIT 1`,
		name,
	).Scan(&p.ID, &p.Name, &p.PricePerKg)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &p, nil
}

// CreateOrder inserts an order and its lines in one transaction. The
// transaction spans a single spreadsheet row, never the whole file.
func (s *Store) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, client_id, status, total_amount, currency, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.ClientID, o.Status, o.TotalAmount, o.Currency, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, line := range o.Lines {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_lines (order_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4)`,
			o.ID, line.ProductID, line.Quantity, line.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

// CreateProductionEntry inserts a production record.
func (s *Store) CreateProductionEntry(ctx context.Context, e *ProductionEntry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO production_entries (id, product_id, quantity, date, shift, quality) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.ProductID, e.Quantity, e.Date, textOrNull(e.Shift), textOrNull(e.Quality),
	)
	if err != nil {
		return fmt.Errorf("create production entry: %w", err)
	}
	return nil
}

// CreateStockEntry inserts a stock movement record.
func (s *Store) CreateStockEntry(ctx context.Context, e *StockEntry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO stock_entries (id, product_id, quantity, type, reason, date) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.ProductID, e.Quantity, string(e.Type), textOrNull(e.Reason), e.Date,
	)
	if err != nil {
		return fmt.Errorf("create stock entry: %w", err)
	}
	return nil
}

// RecordImport appends one line to the import log.
func (s *Store) RecordImport(ctx context.Context, rec *ImportRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO import_log (id, dataset, file_name, imported, errors, skipped, duration_ms) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.Dataset, rec.FileName, rec.Imported, rec.Errors, rec.Skipped, rec.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("record import: %w", err)
	}
	return nil
}

// RecentImports returns the newest import-log entries, newest first.
func (s *Store) RecentImports(ctx context.Context, limit int) ([]ImportRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, dataset, file_name, imported, errors, skipped, duration_ms, created_at
		 FROM import_log ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent imports: %w", err)
	}
	defer rows.Close()

	var records []ImportRecord
	for rows.Next() {
		var rec ImportRecord
		var createdAt time.Time
		if err := rows.Scan(&rec.ID, &rec.Dataset, &rec.FileName, &rec.Imported, &rec.Errors, &rec.Skipped, &rec.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan import record: %w", err)
		}
		rec.CreatedAt = createdAt
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent imports rows: %w", err)
	}
	return records, nil
}

// textOrNull maps "" to SQL NULL for optional text columns.
func textOrNull(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
