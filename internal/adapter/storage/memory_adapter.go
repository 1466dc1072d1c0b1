package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rl1809/shop-cart/internal/core/domain"
)

// ErrInsufficientQuantity is returned by Transfer when the source ledger
// does not hold the article in the requested quantity.
var ErrInsufficientQuantity = errors.New("insufficient quantity in source ledger")

type MemoryAdapter struct {
	mu      sync.Mutex
	ledgers map[domain.LedgerKind]map[string]int
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{ledgers: newLedgers()}
}

func newLedgers() map[domain.LedgerKind]map[string]int {
	return map[domain.LedgerKind]map[string]int{
		domain.LedgerInventory: {},
		domain.LedgerCart:      {},
	}
}

func (m *MemoryAdapter) ledger(kind domain.LedgerKind) (map[string]int, error) {
	l, ok := m.ledgers[kind]
	if !ok {
		return nil, fmt.Errorf("unknown ledger %q", kind)
	}
	return l, nil
}

func (m *MemoryAdapter) Quantity(ctx context.Context, ledger domain.LedgerKind, article string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, err := m.ledger(ledger)
	if err != nil {
		return 0, false, err
	}
	quantity, ok := l[article]
	return quantity, ok, nil
}

func (m *MemoryAdapter) Stock(ctx context.Context, article string, quantity int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inventory := m.ledgers[domain.LedgerInventory]
	if _, exists := inventory[article]; exists {
		return false, nil
	}
	inventory[article] = quantity
	return true, nil
}

func (m *MemoryAdapter) Transfer(ctx context.Context, from, to domain.LedgerKind, article string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("transfer %d of %s: %w", quantity, article, domain.ErrInvalidQuantity)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	src, err := m.ledger(from)
	if err != nil {
		return err
	}
	dst, err := m.ledger(to)
	if err != nil {
		return err
	}

	current, ok := src[article]
	if !ok || current < quantity {
		return ErrInsufficientQuantity
	}

	if left := current - quantity; left == 0 && !from.KeepsEmpty() {
		delete(src, article)
	} else {
		src[article] = left
	}
	dst[article] += quantity

	return nil
}

func (m *MemoryAdapter) Entries(ctx context.Context, ledger domain.LedgerKind) ([]domain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, err := m.ledger(ledger)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.Entry, 0, len(l))
	for article, quantity := range l {
		entries = append(entries, domain.Entry{Article: article, Quantity: quantity})
	}
	sortEntries(entries)
	return entries, nil
}

func (m *MemoryAdapter) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ledgers = newLedgers()
	return nil
}

func sortEntries(entries []domain.Entry) {
	slices.SortFunc(entries, func(a, b domain.Entry) int {
		return strings.Compare(a.Article, b.Article)
	})
}
