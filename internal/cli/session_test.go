package cli

import (
	"bytes"
	"strings"
	"testing"

	"marketplace/internal/config"
	"marketplace/internal/persist"
	"marketplace/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newScriptedSession(t *testing.T, script string) (*Session, *store.Store, *bytes.Buffer) {
	t.Helper()
	cfg := config.StorageConfig{
		Dir:           t.TempDir(),
		SellersFile:   "sellers.txt",
		CustomersFile: "customers.txt",
		ProductsFile:  "products.txt",
		CartsFile:     "carts.txt",
	}
	st := store.New()
	files := persist.NewFileStore(cfg, zap.NewNop())
	out := &bytes.Buffer{}
	return NewSession(st, files, strings.NewReader(script), out, zap.NewNop()), st, out
}

func TestFullPurchaseFlow(t *testing.T) {
	script := strings.Join([]string{
		"1", "1", "Alice", "alice@example.com", // register seller
		"1", "2", "alice@example.com", // seller login
		"1", "Widget", "Tools", "10", "5", // list product
		"2",                                               // seller logout
		"2", "1", "Bob", "bob@example.com", "12 Road", "555-0101", // register customer
		"2", "2", "bob@example.com", // customer login
		"4", "1", "3", // add 3 x product 1 to cart
		"7", "5", // checkout, rate 5
		"8", // customer logout
		"3", // exit
	}, "\n") + "\n"

	session, st, out := newScriptedSession(t, script)
	require.NoError(t, session.Run())

	seller, err := st.FindSellerByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", seller.Name)

	widget, err := st.FindProductByID(1)
	require.NoError(t, err)
	assert.Equal(t, 2, widget.Quantity)
	assert.InDelta(t, 5.0, widget.RatingSum, 1e-9)
	assert.Equal(t, 1, widget.RatingCount)

	customer, err := st.FindCustomerByEmail("bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, 0, st.CartOf(customer.ID).Len())

	assert.Contains(t, out.String(), "TOTAL PAID: $30.00")
}

func TestUndoAndEmptyCartMessages(t *testing.T) {
	script := strings.Join([]string{
		"1", "1", "Alice", "alice@example.com",
		"2", "1", "Bob", "bob@example.com", "12 Road", "555-0101",
		"1", "2", "alice@example.com", "1", "Widget", "Tools", "10", "5", "2",
		"2", "2", "bob@example.com",
		"6",           // undo with nothing staged
		"7",           // checkout with empty cart
		"4", "1", "2", // stage 2 x widget
		"6", // undo it
		"8",
		"3",
	}, "\n") + "\n"

	session, st, out := newScriptedSession(t, script)
	require.NoError(t, session.Run())

	rendered := out.String()
	assert.Contains(t, rendered, "Cart is already empty.")
	assert.Contains(t, rendered, "Cart is empty. Add items before checking out.")
	assert.Contains(t, rendered, "[REMOVED] Widget removed from cart.")

	widget, err := st.FindProductByID(1)
	require.NoError(t, err)
	assert.Equal(t, 5, widget.Quantity)
}

func TestAddToCartRejections(t *testing.T) {
	script := strings.Join([]string{
		"1", "1", "Alice", "alice@example.com",
		"1", "2", "alice@example.com", "1", "Widget", "Tools", "10", "2", "2",
		"2", "1", "Bob", "bob@example.com", "12 Road", "555-0101",
		"2", "2", "bob@example.com",
		"4", "42", "1", // unknown product
		"4", "1", "3", // more than the 2 in stock
		"8",
		"3",
	}, "\n") + "\n"

	session, _, out := newScriptedSession(t, script)
	require.NoError(t, session.Run())

	rendered := out.String()
	assert.Contains(t, rendered, "[ERROR] Product ID not found.")
	assert.Contains(t, rendered, "Only 2 available.")
}

func TestRunSurvivesInputClosing(t *testing.T) {
	session, _, _ := newScriptedSession(t, "1\n1\nAlice\n")
	require.NoError(t, session.Run())
}
