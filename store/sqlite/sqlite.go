/*
Package sqlite provides a SQLite-backed implementation of the document store.

PURPOSE:
  Persists the four collections in SQLite while preserving the engine's
  whole-document semantics: Save replaces every row of every table inside
  ONE SQL transaction, and Load reads all rows back into one snapshot.
  The single transaction keeps the snapshot the sole consistency boundary;
  there is deliberately no row-level persistence path.

KEY TABLES:
  books:     inventory items (price stored as decimal text, never float)
  sellers:   immutable sale parties
  movements: append-only stock history
  sales:     append-only sales history

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): readers don't block the
  single writer, and crash recovery is cleaner.

USAGE:
  store, err := sqlite.New("./data/bookledger.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  engine := ledger.New(store, logger)

SEE ALSO:
  - ledger/store.go: the DocumentStore contract
  - store/jsonfile: the flat-file alternative
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/bookledger/ledger"
)

// Store implements ledger.DocumentStore on SQLite.
type Store struct {
	db *sql.DB
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS books (
		id INTEGER PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		author TEXT NOT NULL DEFAULT '',
		publisher TEXT NOT NULL DEFAULT '',
		shelf TEXT NOT NULL DEFAULT '',
		price TEXT NOT NULL,
		initial_qty INTEGER NOT NULL,
		current_qty INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sellers (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		code TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	);

	-- Append-only stock history. The ledger never updates or deletes rows
	-- here; Save rewrites the table only as part of replacing the whole
	-- document.
	CREATE TABLE IF NOT EXISTS movements (
		id INTEGER PRIMARY KEY,
		direction TEXT NOT NULL CHECK (direction IN ('in', 'out')),
		book_code TEXT NOT NULL,
		qty INTEGER NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_movements_book_code ON movements(book_code);

	CREATE TABLE IF NOT EXISTS sales (
		id INTEGER PRIMARY KEY,
		book_code TEXT NOT NULL,
		seller_code TEXT NOT NULL,
		qty INTEGER NOT NULL,
		total TEXT NOT NULL,
		at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sales_book_code ON sales(book_code);
	CREATE INDEX IF NOT EXISTS idx_sales_seller_code ON sales(seller_code);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LOAD - Read all four collections into one snapshot
// =============================================================================

func (s *Store) Load(ctx context.Context) (*ledger.Snapshot, error) {
	snap := ledger.NewSnapshot()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, code, title, author, publisher, shelf, price, initial_qty, current_qty, created_at
		FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	for rows.Next() {
		var b ledger.Book
		var price, createdAt string
		if err := rows.Scan(&b.ID, &b.Code, &b.Title, &b.Author, &b.Publisher, &b.Shelf,
			&price, &b.InitialQty, &b.CurrentQty, &createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan book: %w", err)
		}
		if b.Price, err = decimal.NewFromString(price); err != nil {
			rows.Close()
			return nil, fmt.Errorf("parse book price %q: %w", price, err)
		}
		if b.CreatedAt, err = parseTime(createdAt); err != nil {
			rows.Close()
			return nil, err
		}
		snap.Books = append(snap.Books, b)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT id, name, code, created_at FROM sellers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load sellers: %w", err)
	}
	for rows.Next() {
		var sl ledger.Seller
		var createdAt string
		if err := rows.Scan(&sl.ID, &sl.Name, &sl.Code, &createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan seller: %w", err)
		}
		if sl.CreatedAt, err = parseTime(createdAt); err != nil {
			rows.Close()
			return nil, err
		}
		snap.Sellers = append(snap.Sellers, sl)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT id, direction, book_code, qty, note, at FROM movements ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load movements: %w", err)
	}
	for rows.Next() {
		var m ledger.Movement
		var dir, at string
		if err := rows.Scan(&m.ID, &dir, &m.BookCode, &m.Qty, &m.Note, &at); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Direction = ledger.Direction(dir)
		if m.At, err = parseTime(at); err != nil {
			rows.Close()
			return nil, err
		}
		snap.Movements = append(snap.Movements, m)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT id, book_code, seller_code, qty, total, at FROM sales ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}
	for rows.Next() {
		var sa ledger.Sale
		var total, at string
		if err := rows.Scan(&sa.ID, &sa.BookCode, &sa.SellerCode, &sa.Qty, &total, &at); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if sa.Total, err = decimal.NewFromString(total); err != nil {
			rows.Close()
			return nil, fmt.Errorf("parse sale total %q: %w", total, err)
		}
		if sa.At, err = parseTime(at); err != nil {
			rows.Close()
			return nil, err
		}
		snap.Sales = append(snap.Sales, sa)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	return snap, nil
}

// =============================================================================
// SAVE - Replace the whole document in one transaction
// =============================================================================

func (s *Store) Save(ctx context.Context, snap *ledger.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"books", "sellers", "movements", "sales"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, b := range snap.Books {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO books (id, code, title, author, publisher, shelf, price, initial_qty, current_qty, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.Code, b.Title, b.Author, b.Publisher, b.Shelf,
			b.Price.String(), b.InitialQty, b.CurrentQty, formatTime(b.CreatedAt)); err != nil {
			return fmt.Errorf("insert book %s: %w", b.Code, err)
		}
	}
	for _, sl := range snap.Sellers {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO sellers (id, name, code, created_at) VALUES (?, ?, ?, ?)`,
			sl.ID, sl.Name, sl.Code, formatTime(sl.CreatedAt)); err != nil {
			return fmt.Errorf("insert seller %s: %w", sl.Code, err)
		}
	}
	for _, m := range snap.Movements {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO movements (id, direction, book_code, qty, note, at) VALUES (?, ?, ?, ?, ?, ?)`,
			m.ID, string(m.Direction), m.BookCode, m.Qty, m.Note, formatTime(m.At)); err != nil {
			return fmt.Errorf("insert movement %d: %w", m.ID, err)
		}
	}
	for _, sa := range snap.Sales {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO sales (id, book_code, seller_code, qty, total, at) VALUES (?, ?, ?, ?, ?, ?)`,
			sa.ID, sa.BookCode, sa.SellerCode, sa.Qty, sa.Total.String(), formatTime(sa.At)); err != nil {
			return fmt.Errorf("insert sale %d: %w", sa.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}
