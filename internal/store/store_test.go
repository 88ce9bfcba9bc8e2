package store

import (
	"testing"

	"marketplace/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAreIndependentPerEntityType(t *testing.T) {
	st := New()

	seller := st.AddSeller("Alice", "alice@example.com")
	customer := st.AddCustomer("Bob", "12 Road", "555-0101", "bob@example.com")
	first := st.AddProduct("Widget", 10, "Tools", 5, seller.ID)
	second := st.AddProduct("Gadget", 20, "Tools", 3, seller.ID)

	assert.Equal(t, 1, seller.ID)
	assert.Equal(t, 1, customer.ID)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
}

func TestFindByEmailIsCaseSensitiveFirstMatch(t *testing.T) {
	st := New()
	st.AddSeller("Alice", "shared@example.com")
	st.AddSeller("Annie", "shared@example.com")

	seller, err := st.FindSellerByEmail("shared@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", seller.Name)

	_, err = st.FindSellerByEmail("SHARED@example.com")
	assert.ErrorIs(t, err, ErrSellerNotFound)

	_, err = st.FindCustomerByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestFindProductByID(t *testing.T) {
	st := New()
	seller := st.AddSeller("Alice", "alice@example.com")
	product := st.AddProduct("Widget", 10, "Tools", 5, seller.ID)

	found, err := st.FindProductByID(product.ID)
	require.NoError(t, err)
	assert.Same(t, product, found)

	_, err = st.FindProductByID(99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductsByCategoryAndSearch(t *testing.T) {
	st := New()
	seller := st.AddSeller("Alice", "alice@example.com")
	st.AddProduct("Claw Hammer", 12, "Tools", 5, seller.ID)
	st.AddProduct("Hammer Drill", 80, "Power Tools", 2, seller.ID)
	st.AddProduct("Teapot", 9, "Kitchen", 7, seller.ID)

	tools := st.ProductsByCategory("Tools")
	require.Len(t, tools, 1)
	assert.Equal(t, "Claw Hammer", tools[0].Name)

	assert.Empty(t, st.ProductsByCategory("tools"))

	hammers := st.SearchProducts("Hammer")
	require.Len(t, hammers, 2)
	assert.Equal(t, "Claw Hammer", hammers[0].Name)
	assert.Equal(t, "Hammer Drill", hammers[1].Name)
}

func TestAddToCartValidatesBeforeStaging(t *testing.T) {
	st := New()
	seller := st.AddSeller("Alice", "alice@example.com")
	customer := st.AddCustomer("Bob", "12 Road", "555-0101", "bob@example.com")
	product := st.AddProduct("Widget", 10, "Tools", 5, seller.ID)

	_, err := st.AddToCart(99, product.ID, 1)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = st.AddToCart(customer.ID, 99, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = st.AddToCart(customer.ID, product.ID, 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = st.AddToCart(customer.ID, product.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	assert.Equal(t, 0, st.CartOf(customer.ID).Len())

	item, err := st.AddToCart(customer.ID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, item.BuyQty)
	assert.Equal(t, 1, st.CartOf(customer.ID).Len())

	// Staging never reserves stock.
	assert.Equal(t, 5, product.Quantity)
}

func TestStagedSnapshotIsImmuneToLiveMutation(t *testing.T) {
	st := New()
	seller := st.AddSeller("Alice", "alice@example.com")
	customer := st.AddCustomer("Bob", "12 Road", "555-0101", "bob@example.com")
	product := st.AddProduct("Widget", 10, "Tools", 5, seller.ID)

	_, err := st.AddToCart(customer.ID, product.ID, 2)
	require.NoError(t, err)

	product.Price = 99
	product.Name = "Renamed"

	staged := st.CartOf(customer.ID).Items()
	require.Len(t, staged, 1)
	assert.Equal(t, "Widget", staged[0].Product.Name)
	assert.InDelta(t, 10.0, staged[0].Product.Price, 1e-9)
}

func TestRestoreAdvancesCounters(t *testing.T) {
	st := New()

	st.RestoreSeller(&domain.Seller{ID: 4, Name: "Alice", Email: "alice@example.com"})
	st.RestoreCustomer(&domain.Customer{ID: 9, Name: "Bob", Email: "bob@example.com"})
	st.RestoreProduct(&domain.Product{ID: 7, Name: "Widget", Quantity: 5, SellerID: 4})

	assert.Equal(t, 5, st.AddSeller("Sam", "sam@example.com").ID)
	assert.Equal(t, 10, st.AddCustomer("Cleo", "9 Ave", "555", "cleo@example.com").ID)
	assert.Equal(t, 8, st.AddProduct("Gadget", 1, "Misc", 1, 4).ID)

	// Restored customers get a usable empty ledger.
	_, err := st.AddToCart(9, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, st.CartOf(9).Len())
}
