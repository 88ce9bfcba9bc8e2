// Package cli is the interactive menu surface. It owns all prompting and
// the notion of who is currently logged in; every data decision is
// delegated to the core packages.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"marketplace/internal/cart"
	"marketplace/internal/checkout"
	"marketplace/internal/domain"
	"marketplace/internal/persist"
	"marketplace/internal/store"

	"go.uber.org/zap"
)

// Session drives the interactive menus over one record store.
type Session struct {
	store     *store.Store
	files     *persist.FileStore
	processor *checkout.Processor
	in        *bufio.Reader
	out       io.Writer
	logger    *zap.Logger
}

// NewSession wires a session over the store and file store. The session
// itself acts as the checkout processor's rating prompt.
func NewSession(st *store.Store, files *persist.FileStore, in io.Reader, out io.Writer, logger *zap.Logger) *Session {
	s := &Session{
		store:  st,
		files:  files,
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
	}
	s.processor = checkout.NewProcessor(st, s, files, logger)
	return s
}

// Run loops over the main menu until the user exits or input closes.
func (s *Session) Run() error {
	for {
		fmt.Fprintln(s.out, "\n==== ONLINE MARKETPLACE ====")
		fmt.Fprintln(s.out, "1. Seller menu")
		fmt.Fprintln(s.out, "2. Customer menu")
		fmt.Fprintln(s.out, "3. Exit")

		choice, err := s.readInt("Enter choice: ")
		if err != nil {
			return ignoreEOF(err)
		}

		switch choice {
		case 1:
			if err := s.sellerEntry(); err != nil {
				return ignoreEOF(err)
			}
		case 2:
			if err := s.customerEntry(); err != nil {
				return ignoreEOF(err)
			}
		case 3:
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		}
	}
}

func (s *Session) sellerEntry() error {
	choice, err := s.readInt("\n1. Register new seller\n2. Login\nChoice: ")
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		name, err := s.readLine("Enter name: ")
		if err != nil {
			return err
		}
		email, err := s.readLine("Enter email: ")
		if err != nil {
			return err
		}
		seller := s.store.AddSeller(name, email)
		s.save()
		fmt.Fprintf(s.out, "[SUCCESS] Welcome, %s! You are registered as seller #%d.\n", seller.Name, seller.ID)
	case 2:
		email, err := s.readLine("Enter email: ")
		if err != nil {
			return err
		}
		seller, findErr := s.store.FindSellerByEmail(email)
		if findErr != nil {
			fmt.Fprintln(s.out, "[ERROR] Email not found.")
			return nil
		}
		fmt.Fprintf(s.out, "[SUCCESS] Welcome back, %s!\n", seller.Name)
		return s.sellerMenu(seller)
	}
	return nil
}

func (s *Session) sellerMenu(seller *domain.Seller) error {
	for {
		fmt.Fprintf(s.out, "\n==== SELLER DASHBOARD (%s) ====\n", seller.Name)
		fmt.Fprintln(s.out, "1. Add new product")
		fmt.Fprintln(s.out, "2. Logout")

		choice, err := s.readInt("Enter choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			if err := s.addProduct(seller); err != nil {
				return err
			}
		case 2:
			return nil
		}
	}
}

func (s *Session) addProduct(seller *domain.Seller) error {
	name, err := s.readLine("Enter product name: ")
	if err != nil {
		return err
	}
	category, err := s.readLine("Enter category: ")
	if err != nil {
		return err
	}
	price, err := s.readFloat("Enter price: $")
	if err != nil {
		return err
	}
	quantity, err := s.readInt("Enter quantity: ")
	if err != nil {
		return err
	}

	product := s.store.AddProduct(name, price, category, quantity, seller.ID)
	s.save()
	fmt.Fprintf(s.out, "[SUCCESS] Product '%s' listed with ID %d.\n", product.Name, product.ID)
	return nil
}

func (s *Session) customerEntry() error {
	choice, err := s.readInt("\n1. Register new customer\n2. Login\nChoice: ")
	if err != nil {
		return err
	}

	switch choice {
	case 1:
		name, err := s.readLine("Enter name: ")
		if err != nil {
			return err
		}
		email, err := s.readLine("Enter email: ")
		if err != nil {
			return err
		}
		address, err := s.readLine("Enter address: ")
		if err != nil {
			return err
		}
		phone, err := s.readLine("Enter phone: ")
		if err != nil {
			return err
		}
		customer := s.store.AddCustomer(name, address, phone, email)
		s.save()
		fmt.Fprintf(s.out, "[SUCCESS] Welcome, %s! Registration complete.\n", customer.Name)
	case 2:
		email, err := s.readLine("Enter email: ")
		if err != nil {
			return err
		}
		customer, findErr := s.store.FindCustomerByEmail(email)
		if findErr != nil {
			fmt.Fprintln(s.out, "[ERROR] Email not found.")
			return nil
		}
		fmt.Fprintf(s.out, "[SUCCESS] Welcome back, %s!\n", customer.Name)
		return s.customerMenu(customer)
	}
	return nil
}

func (s *Session) customerMenu(customer *domain.Customer) error {
	for {
		fmt.Fprintf(s.out, "\n==== CUSTOMER DASHBOARD (%s) ====\n", customer.Name)
		fmt.Fprintln(s.out, "1. Browse all products (by rating)")
		fmt.Fprintln(s.out, "2. Filter by category")
		fmt.Fprintln(s.out, "3. Search by name")
		fmt.Fprintln(s.out, "4. Add product to cart")
		fmt.Fprintln(s.out, "5. View cart")
		fmt.Fprintln(s.out, "6. Undo last item")
		fmt.Fprintln(s.out, "7. Checkout")
		fmt.Fprintln(s.out, "8. Logout")

		choice, err := s.readInt("Enter choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			PrintProducts(s.out, TopRatedView(s.store))
		case 2:
			if err := s.filterByCategory(); err != nil {
				return err
			}
		case 3:
			if err := s.searchByName(); err != nil {
				return err
			}
		case 4:
			if err := s.addToCart(customer); err != nil {
				return err
			}
		case 5:
			s.viewCart(customer)
		case 6:
			s.undo(customer)
		case 7:
			s.checkout(customer)
		case 8:
			return nil
		}
	}
}

func (s *Session) filterByCategory() error {
	category, err := s.readLine("Enter category name: ")
	if err != nil {
		return err
	}
	matched := s.store.ProductsByCategory(category)
	if len(matched) == 0 {
		fmt.Fprintln(s.out, "[INFO] No products found in this category.")
		return nil
	}
	PrintProducts(s.out, matched)
	return nil
}

func (s *Session) searchByName() error {
	query, err := s.readLine("Enter product name (partial or full): ")
	if err != nil {
		return err
	}
	matched := s.store.SearchProducts(query)
	if len(matched) == 0 {
		fmt.Fprintf(s.out, "[INFO] No products found matching '%s'.\n", query)
		return nil
	}
	PrintProducts(s.out, matched)
	return nil
}

func (s *Session) addToCart(customer *domain.Customer) error {
	productID, err := s.readInt("Enter product ID: ")
	if err != nil {
		return err
	}
	quantity, err := s.readInt("Enter quantity: ")
	if err != nil {
		return err
	}

	item, addErr := s.store.AddToCart(customer.ID, productID, quantity)
	switch {
	case errors.Is(addErr, store.ErrProductNotFound):
		fmt.Fprintln(s.out, "[ERROR] Product ID not found.")
	case errors.Is(addErr, store.ErrInsufficientStock):
		if product, findErr := s.store.FindProductByID(productID); findErr == nil {
			fmt.Fprintf(s.out, "[ERROR] Insufficient stock! Only %d available.\n", product.Quantity)
		}
	case addErr != nil:
		fmt.Fprintf(s.out, "[ERROR] %v\n", addErr)
	default:
		s.save()
		fmt.Fprintf(s.out, "[SUCCESS] Added %d x %s to cart.\n", item.BuyQty, item.Product.Name)
	}
	return nil
}

func (s *Session) viewCart(customer *domain.Customer) {
	ledger := s.store.CartOf(customer.ID)
	if ledger.Len() == 0 {
		fmt.Fprintln(s.out, "[INFO] Your cart is empty.")
		return
	}

	fmt.Fprintln(s.out, "\n--- Your shopping cart ---")
	for _, item := range ledger.Items() {
		fmt.Fprintf(s.out, "* %s (qty: %d) - $%.2f\n",
			item.Product.Name, item.BuyQty, item.Product.Price*float64(item.BuyQty))
	}
	fmt.Fprintf(s.out, "Total estimate: $%.2f\n", ledger.Total())
}

func (s *Session) undo(customer *domain.Customer) {
	item, err := s.store.CartOf(customer.ID).Undo()
	if err != nil {
		fmt.Fprintln(s.out, "[INFO] Cart is already empty.")
		return
	}
	s.save()
	fmt.Fprintf(s.out, "[REMOVED] %s removed from cart.\n", item.Product.Name)
}

func (s *Session) checkout(customer *domain.Customer) {
	receipt, err := s.processor.Settle(customer.ID)
	if errors.Is(err, cart.ErrEmptyCart) {
		fmt.Fprintln(s.out, "[INFO] Cart is empty. Add items before checking out.")
		return
	}
	if receipt != nil {
		s.printReceipt(receipt)
	}
	if err != nil {
		s.logger.Error("checkout did not persist", zap.Error(err))
		fmt.Fprintln(s.out, "[ERROR] Your order settled but could not be saved.")
	}
}

func (s *Session) printReceipt(receipt *domain.Receipt) {
	fmt.Fprintln(s.out, "\n======== OFFICIAL RECEIPT ========")
	fmt.Fprintf(s.out, "Date: %s\n", receipt.Timestamp.Format("Mon Jan 2 15:04:05 2006"))
	for _, line := range receipt.Lines {
		fmt.Fprintf(s.out, "%-20s x %d = $%.2f\n", line.ProductName, line.Qty, line.LineTotal)
	}
	for _, failure := range receipt.Failures {
		fmt.Fprintf(s.out, "[ERROR] Could not process %s: %s\n", failure.ProductName, failure.Reason)
	}
	fmt.Fprintln(s.out, "----------------------------------")
	fmt.Fprintf(s.out, "TOTAL PAID: $%.2f\n", receipt.Total)
	fmt.Fprintln(s.out, "Thank you for your purchase!")
}

// Rate implements checkout.Rater by prompting on the session's streams.
// The processor re-asks until the answer is in range.
func (s *Session) Rate(product *domain.Product) int {
	n, err := s.readInt(fmt.Sprintf("   -> Rate %s (1-5): ", product.Name))
	if err != nil {
		// Input closed mid-checkout; fall back to the minimum rating.
		return checkout.MinRating
	}
	if n < checkout.MinRating || n > checkout.MaxRating {
		fmt.Fprintln(s.out, "      [Invalid] Please enter 1-5.")
	}
	return n
}

func (s *Session) save() {
	if err := s.files.Save(s.store); err != nil {
		s.logger.Error("failed to save data", zap.Error(err))
		fmt.Fprintln(s.out, "[ERROR] Could not save data.")
	}
}

func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *Session) readInt(prompt string) (int, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		if n, convErr := strconv.Atoi(line); convErr == nil {
			return n, nil
		}
		fmt.Fprintln(s.out, "Invalid input. Please enter a number.")
	}
}

func (s *Session) readFloat(prompt string) (float64, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		if v, convErr := strconv.ParseFloat(line, 64); convErr == nil {
			return v, nil
		}
		fmt.Fprintln(s.out, "Invalid input. Please enter a number.")
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
