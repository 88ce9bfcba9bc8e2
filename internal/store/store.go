package store

import (
	"errors"
	"strings"

	"marketplace/internal/cart"
	"marketplace/internal/domain"
)

var (
	ErrSellerNotFound    = errors.New("seller not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

// Store owns the three record collections, the per-entity id counters and
// each customer's cart ledger. It holds no session state: who is logged
// in is the caller's concern, so the store stays reentrant and testable.
// Records are never deleted.
type Store struct {
	sellers   []*domain.Seller
	customers []*domain.Customer
	products  []*domain.Product

	carts map[int]*cart.Ledger

	sellerCounter   int
	customerCounter int
	productCounter  int
}

// New returns an empty store with all id counters at 1.
func New() *Store {
	return &Store{
		carts:           make(map[int]*cart.Ledger),
		sellerCounter:   1,
		customerCounter: 1,
		productCounter:  1,
	}
}

// AddSeller registers a seller under the next free seller id.
func (s *Store) AddSeller(name, email string) *domain.Seller {
	seller := &domain.Seller{ID: s.sellerCounter, Name: name, Email: email}
	s.sellerCounter++
	s.sellers = append(s.sellers, seller)
	return seller
}

// AddCustomer registers a customer under the next free customer id and
// creates their empty cart ledger.
func (s *Store) AddCustomer(name, address, phone, email string) *domain.Customer {
	customer := &domain.Customer{
		ID:      s.customerCounter,
		Name:    name,
		Address: address,
		Phone:   phone,
		Email:   email,
	}
	s.customerCounter++
	s.customers = append(s.customers, customer)
	s.carts[customer.ID] = cart.New()
	return customer
}

// AddProduct lists a product under the next free product id.
func (s *Store) AddProduct(name string, price float64, category string, quantity, sellerID int) *domain.Product {
	product := &domain.Product{
		ID:       s.productCounter,
		Name:     name,
		Price:    price,
		Category: category,
		Quantity: quantity,
		SellerID: sellerID,
	}
	s.productCounter++
	s.products = append(s.products, product)
	return product
}

// FindSellerByEmail returns the first seller whose email matches exactly
// (case-sensitive).
func (s *Store) FindSellerByEmail(email string) (*domain.Seller, error) {
	for _, seller := range s.sellers {
		if seller.Email == email {
			return seller, nil
		}
	}
	return nil, ErrSellerNotFound
}

// FindCustomerByEmail returns the first customer whose email matches
// exactly (case-sensitive).
func (s *Store) FindCustomerByEmail(email string) (*domain.Customer, error) {
	for _, customer := range s.customers {
		if customer.Email == email {
			return customer, nil
		}
	}
	return nil, ErrCustomerNotFound
}

// FindCustomerByID returns the customer with the given id.
func (s *Store) FindCustomerByID(id int) (*domain.Customer, error) {
	for _, customer := range s.customers {
		if customer.ID == id {
			return customer, nil
		}
	}
	return nil, ErrCustomerNotFound
}

// FindProductByID returns the live product record with the given id.
func (s *Store) FindProductByID(id int) (*domain.Product, error) {
	for _, product := range s.products {
		if product.ID == id {
			return product, nil
		}
	}
	return nil, ErrProductNotFound
}

// Sellers returns all sellers in registration order.
func (s *Store) Sellers() []*domain.Seller {
	return s.sellers
}

// Customers returns all customers in registration order.
func (s *Store) Customers() []*domain.Customer {
	return s.customers
}

// Products returns the catalog in listing order.
func (s *Store) Products() []*domain.Product {
	return s.products
}

// ProductsByCategory returns products whose category matches exactly.
func (s *Store) ProductsByCategory(category string) []*domain.Product {
	var matched []*domain.Product
	for _, product := range s.products {
		if product.Category == category {
			matched = append(matched, product)
		}
	}
	return matched
}

// SearchProducts returns products whose name contains the query.
func (s *Store) SearchProducts(query string) []*domain.Product {
	var matched []*domain.Product
	for _, product := range s.products {
		if strings.Contains(product.Name, query) {
			matched = append(matched, product)
		}
	}
	return matched
}

// CartOf returns the customer's ledger, creating it on first use for
// customers restored from disk before their cart lines were read.
func (s *Store) CartOf(customerID int) *cart.Ledger {
	ledger, ok := s.carts[customerID]
	if !ok {
		ledger = cart.New()
		s.carts[customerID] = ledger
	}
	return ledger
}

// AddToCart validates the live product and stages a snapshot of it on the
// customer's ledger. The snapshot freezes name and price as of now; the
// stock check at checkout goes back to the live record.
func (s *Store) AddToCart(customerID, productID, quantity int) (cart.Item, error) {
	if quantity <= 0 {
		return cart.Item{}, ErrInvalidQuantity
	}
	if _, err := s.FindCustomerByID(customerID); err != nil {
		return cart.Item{}, err
	}
	product, err := s.FindProductByID(productID)
	if err != nil {
		return cart.Item{}, err
	}
	if quantity > product.Quantity {
		return cart.Item{}, ErrInsufficientStock
	}
	item := cart.Item{Product: *product, BuyQty: quantity}
	s.CartOf(customerID).Push(item)
	return item, nil
}

// RestoreSeller re-inserts a persisted seller and advances the seller
// counter past its id. Load-time only.
func (s *Store) RestoreSeller(seller *domain.Seller) {
	s.sellers = append(s.sellers, seller)
	if seller.ID >= s.sellerCounter {
		s.sellerCounter = seller.ID + 1
	}
}

// RestoreCustomer re-inserts a persisted customer, advances the customer
// counter past its id and creates the empty ledger. Load-time only.
func (s *Store) RestoreCustomer(customer *domain.Customer) {
	s.customers = append(s.customers, customer)
	if customer.ID >= s.customerCounter {
		s.customerCounter = customer.ID + 1
	}
	if _, ok := s.carts[customer.ID]; !ok {
		s.carts[customer.ID] = cart.New()
	}
}

// RestoreProduct re-inserts a persisted product and advances the product
// counter past its id. Load-time only.
func (s *Store) RestoreProduct(product *domain.Product) {
	s.products = append(s.products, product)
	if product.ID >= s.productCounter {
		s.productCounter = product.ID + 1
	}
}
