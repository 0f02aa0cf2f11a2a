package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Receipts reference sellers loosely: deleting a seller nulls seller_id and
// keeps the denormalized seller name.
const schema = `
CREATE TABLE IF NOT EXISTS sellers (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    start_range INTEGER NOT NULL,
    end_range INTEGER NOT NULL,
    active INTEGER NOT NULL DEFAULT 1,
    commission REAL NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS receipts (
    id TEXT PRIMARY KEY,
    receipt_number INTEGER NOT NULL,
    date TEXT NOT NULL,
    seller TEXT NOT NULL,
    seller_id TEXT,
    total_amount REAL NOT NULL,
    created_at INTEGER NOT NULL,
    FOREIGN KEY (seller_id) REFERENCES sellers(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS line_items (
    receipt_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    order_label TEXT NOT NULL,
    description TEXT NOT NULL,
    quantity REAL NOT NULL,
    unit_price REAL NOT NULL,
    total REAL NOT NULL,
    PRIMARY KEY (receipt_id, position),
    FOREIGN KEY (receipt_id) REFERENCES receipts(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS last_receipt_numbers (
    seller TEXT PRIMARY KEY,
    receipt_number INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_receipts_seller ON receipts(seller, receipt_number);
CREATE INDEX IF NOT EXISTS idx_receipts_seller_id ON receipts(seller_id);
CREATE INDEX IF NOT EXISTS idx_receipts_date ON receipts(date);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
