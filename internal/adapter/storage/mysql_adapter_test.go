package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/rl1809/shop-cart/internal/core/domain"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/shopcart?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	return db
}

func newTestMySQLAdapter(t *testing.T) *MySQLAdapter {
	db := getMySQLDB(t)

	adapter, err := NewMySQLAdapter(context.Background(), db)
	if err != nil {
		db.Close()
		t.Fatalf("NewMySQLAdapter failed: %v", err)
	}
	t.Cleanup(func() {
		adapter.Close(context.Background())
		db.Close()
	})
	return adapter
}

func TestMySQLStock_InsertIfAbsent(t *testing.T) {
	adapter := newTestMySQLAdapter(t)
	ctx := context.Background()

	ok, err := adapter.Stock(ctx, "A1", 10)
	if err != nil {
		t.Fatalf("Stock failed: %v", err)
	}
	if !ok {
		t.Error("expected first insert to succeed")
	}

	ok, err = adapter.Stock(ctx, "A1", 99)
	if err != nil {
		t.Fatalf("Stock failed: %v", err)
	}
	if ok {
		t.Error("expected duplicate insert to be ignored")
	}

	stock, found, err := adapter.Quantity(ctx, domain.LedgerInventory, "A1")
	if err != nil {
		t.Fatalf("Quantity failed: %v", err)
	}
	if !found || stock != 10 {
		t.Errorf("expected A1=10, got %d (found=%v)", stock, found)
	}
}

func TestMySQLQuantity_NotFound(t *testing.T) {
	adapter := newTestMySQLAdapter(t)

	_, found, err := adapter.Quantity(context.Background(), domain.LedgerCart, "nonexistent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected nonexistent article to be absent")
	}
}

func TestMySQLTransfer_RoundTrip(t *testing.T) {
	adapter := newTestMySQLAdapter(t)
	ctx := context.Background()
	adapter.Stock(ctx, "A1", 10)

	if err := adapter.Transfer(ctx, domain.LedgerInventory, domain.LedgerCart, "A1", 3); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if err := adapter.Transfer(ctx, domain.LedgerInventory, domain.LedgerCart, "A1", 2); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}

	stock, _, _ := adapter.Quantity(ctx, domain.LedgerInventory, "A1")
	if stock != 5 {
		t.Errorf("expected stock 5, got %d", stock)
	}
	inCart, _, _ := adapter.Quantity(ctx, domain.LedgerCart, "A1")
	if inCart != 5 {
		t.Errorf("expected cart 5, got %d", inCart)
	}

	if err := adapter.Transfer(ctx, domain.LedgerCart, domain.LedgerInventory, "A1", 5); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if _, found, _ := adapter.Quantity(ctx, domain.LedgerCart, "A1"); found {
		t.Error("expected cart entry to be removed")
	}
	stock, _, _ = adapter.Quantity(ctx, domain.LedgerInventory, "A1")
	if stock != 10 {
		t.Errorf("expected stock 10, got %d", stock)
	}
}

func TestMySQLTransfer_InsufficientQuantity(t *testing.T) {
	adapter := newTestMySQLAdapter(t)
	ctx := context.Background()
	adapter.Stock(ctx, "A1", 1)

	err := adapter.Transfer(ctx, domain.LedgerInventory, domain.LedgerCart, "A1", 2)
	if !errors.Is(err, ErrInsufficientQuantity) {
		t.Errorf("expected ErrInsufficientQuantity, got: %v", err)
	}

	if _, found, _ := adapter.Quantity(ctx, domain.LedgerCart, "A1"); found {
		t.Error("expected cart untouched after rollback")
	}
}

func TestMySQLEntries_Sorted(t *testing.T) {
	adapter := newTestMySQLAdapter(t)
	ctx := context.Background()
	adapter.Stock(ctx, "b2", 2)
	adapter.Stock(ctx, "a1", 3)
	adapter.Stock(ctx, "A1", 1)

	entries, err := adapter.Entries(ctx, domain.LedgerInventory)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}

	want := []domain.Entry{{Article: "A1", Quantity: 1}, {Article: "a1", Quantity: 3}, {Article: "b2", Quantity: 2}}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d: expected %v, got %v", i, want[i], entries[i])
		}
	}

	cart, err := adapter.Entries(ctx, domain.LedgerCart)
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(cart) != 0 {
		t.Errorf("expected empty cart, got %v", cart)
	}
}

func TestMySQLStock_WideValues(t *testing.T) {
	adapter := newTestMySQLAdapter(t)
	ctx := context.Background()
	article := strings.Repeat("k", 2048)
	quantity := 5_000_000_000

	if _, err := adapter.Stock(ctx, article, quantity); err != nil {
		t.Fatalf("Stock failed: %v", err)
	}
	if err := adapter.Transfer(ctx, domain.LedgerInventory, domain.LedgerCart, article, quantity-1); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}

	inCart, found, err := adapter.Quantity(ctx, domain.LedgerCart, article)
	if err != nil {
		t.Fatalf("Quantity failed: %v", err)
	}
	if !found || inCart != quantity-1 {
		t.Errorf("expected cart %d, got %d (found=%v)", quantity-1, inCart, found)
	}
}
