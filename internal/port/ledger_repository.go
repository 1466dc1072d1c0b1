package port

import (
	"context"

	"github.com/rl1809/shop-cart/internal/core/domain"
)

type LedgerRepository interface {
	// Quantity returns an article's quantity in a ledger, ok is false if absent
	Quantity(ctx context.Context, ledger domain.LedgerKind, article string) (quantity int, ok bool, err error)

	// Stock inserts an article into the inventory, returns false if it already exists
	Stock(ctx context.Context, article string, quantity int) (bool, error)

	// Transfer atomically moves quantity of an article from one ledger to the other,
	// fails without changes if the source holds less than quantity
	Transfer(ctx context.Context, from, to domain.LedgerKind, article string, quantity int) error

	// Entries lists a ledger ordered by article
	Entries(ctx context.Context, ledger domain.LedgerKind) ([]domain.Entry, error)

	// Close discards both ledgers
	Close(ctx context.Context) error
}
