package checkout

import (
	"fmt"
	"time"

	"marketplace/internal/cart"
	"marketplace/internal/domain"
	"marketplace/internal/store"

	"go.uber.org/zap"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Rater supplies one rating attempt for a settled product. Settle keeps
// asking until the answer lands in [MinRating, MaxRating], so
// implementations may return whatever the user typed.
type Rater interface {
	Rate(product *domain.Product) int
}

// RaterFunc adapts a plain function to the Rater interface.
type RaterFunc func(product *domain.Product) int

func (f RaterFunc) Rate(product *domain.Product) int {
	return f(product)
}

// Saver persists the marketplace state once settlement mutations are
// applied.
type Saver interface {
	Save(st *store.Store) error
}

// Processor settles customer carts against the record store.
type Processor struct {
	store  *store.Store
	rater  Rater
	saver  Saver
	logger *zap.Logger
}

// NewProcessor creates a checkout processor.
func NewProcessor(st *store.Store, rater Rater, saver Saver, logger *zap.Logger) *Processor {
	return &Processor{
		store:  st,
		rater:  rater,
		saver:  saver,
		logger: logger,
	}
}

// Settle drains the customer's cart in arrival order, decrementing stock
// and capturing a rating for every line that clears, then persists the
// result before returning the receipt.
//
// Draining is committed: once settlement starts, staged items do not
// return to the ledger even when some lines fail. A line fails, without
// aborting its siblings, when the live product is gone or its stock is
// short; only an empty cart aborts the whole settlement, with nothing
// mutated and nothing written.
func (p *Processor) Settle(customerID int) (*domain.Receipt, error) {
	ledger := p.store.CartOf(customerID)
	if ledger.Len() == 0 {
		return nil, cart.ErrEmptyCart
	}

	receipt := &domain.Receipt{Timestamp: time.Now()}

	for _, item := range ledger.DrainToArrivalOrder() {
		live, err := p.store.FindProductByID(item.Product.ID)
		if err != nil {
			receipt.Failures = append(receipt.Failures, domain.LineFailure{
				ProductName: item.Product.Name,
				Reason:      "product no longer exists",
			})
			continue
		}
		if live.Quantity < item.BuyQty {
			receipt.Failures = append(receipt.Failures, domain.LineFailure{
				ProductName: item.Product.Name,
				Reason:      fmt.Sprintf("insufficient stock, %d available", live.Quantity),
			})
			continue
		}

		live.Quantity -= item.BuyQty
		lineTotal := item.Product.Price * float64(item.BuyQty)
		receipt.Lines = append(receipt.Lines, domain.ReceiptLine{
			ProductName: item.Product.Name,
			Qty:         item.BuyQty,
			LineTotal:   lineTotal,
		})
		receipt.Total += lineTotal

		live.AddRating(float64(p.captureRating(live)))
	}

	p.logger.Info("settlement complete",
		zap.Int("customer_id", customerID),
		zap.Int("settled", len(receipt.Lines)),
		zap.Int("failed", len(receipt.Failures)),
		zap.Float64("total", receipt.Total),
	)

	if err := p.saver.Save(p.store); err != nil {
		// Stock and ratings are already applied in memory; hand the
		// caller the receipt together with the persistence failure.
		return receipt, fmt.Errorf("failed to persist settlement: %w", err)
	}

	return receipt, nil
}

// captureRating asks the rater until it produces a value in range. The
// validation loop belongs to the processor, not the collaborator.
func (p *Processor) captureRating(product *domain.Product) int {
	for {
		if r := p.rater.Rate(product); r >= MinRating && r <= MaxRating {
			return r
		}
	}
}
