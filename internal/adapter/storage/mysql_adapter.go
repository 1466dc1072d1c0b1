package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/shop-cart/internal/core/domain"
)

// The table lives as long as the connection that created it.
const createLedgerTable = `
	CREATE TEMPORARY TABLE IF NOT EXISTS ledger_entries (
		ledger   VARCHAR(16)     NOT NULL,
		article  VARBINARY(3000) NOT NULL,
		quantity BIGINT          NOT NULL,
		PRIMARY KEY (ledger, article)
	)`

// MySQLAdapter pins a single connection so every statement sees the
// session's temporary table.
type MySQLAdapter struct {
	conn *sql.Conn
}

func NewMySQLAdapter(ctx context.Context, db *sql.DB) (*MySQLAdapter, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire conn: %w", err)
	}

	if _, err := conn.ExecContext(ctx, createLedgerTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create ledger table: %w", err)
	}

	return &MySQLAdapter{conn: conn}, nil
}

func (m *MySQLAdapter) Quantity(ctx context.Context, ledger domain.LedgerKind, article string) (int, bool, error) {
	var quantity int
	err := m.conn.QueryRowContext(ctx, `
		SELECT quantity FROM ledger_entries
		WHERE ledger = ? AND article = ?`, ledger, article,
	).Scan(&quantity)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query %s quantity: %w", ledger, err)
	}

	return quantity, true, nil
}

func (m *MySQLAdapter) Stock(ctx context.Context, article string, quantity int) (bool, error) {
	result, err := m.conn.ExecContext(ctx, `
		INSERT IGNORE INTO ledger_entries (ledger, article, quantity)
		VALUES (?, ?, ?)`,
		domain.LedgerInventory, article, quantity,
	)
	if err != nil {
		return false, fmt.Errorf("insert inventory: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows == 1, nil
}

func (m *MySQLAdapter) Transfer(ctx context.Context, from, to domain.LedgerKind, article string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("transfer %d of %s: %w", quantity, article, domain.ErrInvalidQuantity)
	}

	tx, err := m.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE ledger_entries
		SET quantity = quantity - ?
		WHERE ledger = ? AND article = ? AND quantity >= ?`,
		quantity, from, article, quantity,
	)
	if err != nil {
		return fmt.Errorf("debit %s: %w", from, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrInsufficientQuantity
	}

	if !from.KeepsEmpty() {
		_, err = tx.ExecContext(ctx, `
			DELETE FROM ledger_entries
			WHERE ledger = ? AND article = ? AND quantity = 0`,
			from, article,
		)
		if err != nil {
			return fmt.Errorf("prune %s: %w", from, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ledger_entries (ledger, article, quantity)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)`,
		to, article, quantity,
	)
	if err != nil {
		return fmt.Errorf("credit %s: %w", to, err)
	}

	return tx.Commit()
}

func (m *MySQLAdapter) Entries(ctx context.Context, ledger domain.LedgerKind) ([]domain.Entry, error) {
	rows, err := m.conn.QueryContext(ctx, `
		SELECT article, quantity FROM ledger_entries
		WHERE ledger = ?
		ORDER BY article`, ledger,
	)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", ledger, err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.Article, &e.Quantity); err != nil {
			return nil, fmt.Errorf("scan %s entry: %w", ledger, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", ledger, err)
	}

	return entries, nil
}

func (m *MySQLAdapter) Close(ctx context.Context) error {
	if _, err := m.conn.ExecContext(ctx, `DROP TEMPORARY TABLE IF EXISTS ledger_entries`); err != nil {
		m.conn.Close()
		return fmt.Errorf("drop ledger table: %w", err)
	}
	return m.conn.Close()
}
