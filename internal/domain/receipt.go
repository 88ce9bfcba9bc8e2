package domain

import "time"

// ReceiptLine is one successfully settled cart item. LineTotal is priced
// from the snapshot taken when the item was staged.
type ReceiptLine struct {
	ProductName string
	Qty         int
	LineTotal   float64
}

// LineFailure records a cart item that could not be settled. Failures do
// not abort the batch; they ride along on the receipt.
type LineFailure struct {
	ProductName string
	Reason      string
}

// Receipt is the outcome of settling one customer's cart.
type Receipt struct {
	Timestamp time.Time
	Lines     []ReceiptLine
	Failures  []LineFailure
	Total     float64
}
