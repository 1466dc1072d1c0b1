package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rl1809/shop-cart/internal/core/domain"
	"github.com/rl1809/shop-cart/internal/port"
)

// CartService validates data entry against the ledgers and moves stock
// between the inventory and the cart.
type CartService struct {
	ledgers port.LedgerRepository
	logger  *zap.Logger
}

func NewCartService(ledgers port.LedgerRepository, logger *zap.Logger) *CartService {
	return &CartService{
		ledgers: ledgers,
		logger:  logger,
	}
}

// Stock records an article in the inventory during setup. An article that
// is already stocked keeps its first quantity and false is returned.
func (s *CartService) Stock(ctx context.Context, article string, quantity int) (bool, error) {
	inserted, err := s.ledgers.Stock(ctx, article, quantity)
	if err != nil {
		return false, fmt.Errorf("stock failed: %w", err)
	}

	if inserted {
		s.logger.Debug("article stocked", zap.String("article", article), zap.Int("quantity", quantity))
	} else {
		s.logger.Info("duplicate article ignored", zap.String("article", article), zap.Int("quantity", quantity))
	}
	return inserted, nil
}

// CheckArticle is the first validation phase: the article must exist in the
// ledger the mode draws from.
func (s *CartService) CheckArticle(ctx context.Context, mode domain.ValidationMode, article string) error {
	if mode == domain.ModeNone {
		return nil
	}

	_, ok, err := s.ledgers.Quantity(ctx, mode.Source(), article)
	if err != nil {
		return fmt.Errorf("article check failed: %w", err)
	}
	if !ok {
		return domain.NewUnknownArticleError(mode)
	}
	return nil
}

// CheckQuantity is the second validation phase.
func (s *CartService) CheckQuantity(ctx context.Context, mode domain.ValidationMode, article string, quantity int) error {
	if mode == domain.ModeNone {
		return nil
	}
	if quantity <= 0 {
		return domain.NewInvalidQuantityError()
	}

	available, ok, err := s.ledgers.Quantity(ctx, mode.Source(), article)
	if err != nil {
		return fmt.Errorf("quantity check failed: %w", err)
	}
	if !ok {
		return domain.NewUnknownArticleError(mode)
	}
	if quantity > available {
		return domain.NewInsufficientQuantityError(mode)
	}
	return nil
}

func (s *CartService) Validate(ctx context.Context, mode domain.ValidationMode, article string, quantity int) error {
	if err := s.CheckArticle(ctx, mode, article); err != nil {
		return err
	}
	return s.CheckQuantity(ctx, mode, article, quantity)
}

// Add moves quantity of article from the inventory into the cart.
func (s *CartService) Add(ctx context.Context, article string, quantity int) error {
	return s.move(ctx, domain.ModeAdd, article, quantity)
}

// Remove moves quantity of article from the cart back to the inventory.
func (s *CartService) Remove(ctx context.Context, article string, quantity int) error {
	return s.move(ctx, domain.ModeRemove, article, quantity)
}

func (s *CartService) move(ctx context.Context, mode domain.ValidationMode, article string, quantity int) error {
	if err := s.Validate(ctx, mode, article, quantity); err != nil {
		return err
	}

	from, to := domain.LedgerInventory, domain.LedgerCart
	if mode == domain.ModeRemove {
		from, to = to, from
	}

	if err := s.ledgers.Transfer(ctx, from, to, article, quantity); err != nil {
		return fmt.Errorf("%s transfer failed: %w", mode, err)
	}

	s.logger.Debug("stock moved",
		zap.Stringer("mode", mode),
		zap.String("article", article),
		zap.Int("quantity", quantity),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return nil
}

// Lists returns both ledgers ordered by article.
func (s *CartService) Lists(ctx context.Context) (inventory, cart []domain.Entry, err error) {
	inventory, err = s.ledgers.Entries(ctx, domain.LedgerInventory)
	if err != nil {
		return nil, nil, fmt.Errorf("list inventory failed: %w", err)
	}
	cart, err = s.ledgers.Entries(ctx, domain.LedgerCart)
	if err != nil {
		return nil, nil, fmt.Errorf("list cart failed: %w", err)
	}
	return inventory, cart, nil
}
