package domain

// Seller is created at registration and immutable afterwards. Sellers are
// never deleted, so a product's SellerID always resolves.
type Seller struct {
	ID    int
	Name  string
	Email string
}

// Customer is created at registration. The customer's cart ledger lives
// in the record store, keyed by this ID.
type Customer struct {
	ID      int
	Name    string
	Address string
	Phone   string
	Email   string
}
