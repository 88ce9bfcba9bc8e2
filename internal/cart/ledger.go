package cart

import (
	"errors"

	"marketplace/internal/domain"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
)

// Item is one staged purchase. Product is a snapshot copied when the item
// was staged: display and price-at-add-time come from the snapshot, while
// stock checks at checkout re-resolve the live record by ID. Later
// changes to the live product are deliberately not reflected here.
type Item struct {
	Product domain.Product
	BuyQty  int
}

// Ledger is one customer's LIFO staging container. The newest item is
// the only one that can be removed before checkout, which is what makes
// undo unconditional and unambiguous.
type Ledger struct {
	items []Item
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Push stages an item. It always succeeds; stock is validated before
// staging, not here.
func (l *Ledger) Push(item Item) {
	l.items = append(l.items, item)
}

// Undo removes and returns the most recently staged item.
func (l *Ledger) Undo() (Item, error) {
	if len(l.items) == 0 {
		return Item{}, ErrEmptyCart
	}
	last := l.items[len(l.items)-1]
	l.items = l.items[:len(l.items)-1]
	return last, nil
}

// Items returns the staged items newest-first without mutating the
// ledger. This is the traversal used for display and for writing the
// cart file.
func (l *Ledger) Items() []Item {
	out := make([]Item, len(l.items))
	for i, item := range l.items {
		out[len(l.items)-1-i] = item
	}
	return out
}

// DrainToArrivalOrder empties the ledger and returns its items oldest
// first, the order checkout processes them in. Draining is one-way:
// items do not return to the ledger even if settlement partially fails.
func (l *Ledger) DrainToArrivalOrder() []Item {
	items := l.items
	l.items = nil
	return items
}

// Len reports how many items are staged.
func (l *Ledger) Len() int {
	return len(l.items)
}

// Total is the snapshot-price estimate shown when viewing the cart.
func (l *Ledger) Total() float64 {
	var total float64
	for _, item := range l.items {
		total += item.Product.Price * float64(item.BuyQty)
	}
	return total
}
