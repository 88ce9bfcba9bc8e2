// Package persist reads and writes the marketplace's four flat data
// files. Each file is pipe-delimited, one record per line, no header and
// no escaping: a "|" inside a field corrupts that line, an accepted
// limitation of the format.
package persist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"marketplace/internal/cart"
	"marketplace/internal/config"
	"marketplace/internal/domain"
	"marketplace/internal/store"

	"go.uber.org/zap"
)

// Rejected is a persisted line the loader read but could not reconcile:
// too few fields, or a cart line whose customer or product no longer
// resolves. Rejected lines are dropped from the loaded state; returning
// them lets the caller log or report instead of silently swallowing.
type Rejected struct {
	File   string
	Line   int
	Raw    string
	Reason string
}

// FileStore persists the record store to flat files under one directory.
type FileStore struct {
	cfg    config.StorageConfig
	logger *zap.Logger
}

// NewFileStore creates a file store rooted at cfg.Dir.
func NewFileStore(cfg config.StorageConfig, logger *zap.Logger) *FileStore {
	return &FileStore{cfg: cfg, logger: logger}
}

// Save rewrites all four data files from scratch. Each file is staged to
// a temp file and renamed into place, so no single file is ever left
// half-written; atomicity across the four files is not guaranteed.
func (f *FileStore) Save(st *store.Store) error {
	if err := os.MkdirAll(f.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	if err := f.writeFile(f.cfg.SellersFile, sellerLines(st)); err != nil {
		return err
	}
	if err := f.writeFile(f.cfg.CustomersFile, customerLines(st)); err != nil {
		return err
	}
	if err := f.writeFile(f.cfg.ProductsFile, productLines(st)); err != nil {
		return err
	}
	if err := f.writeFile(f.cfg.CartsFile, cartLines(st)); err != nil {
		return err
	}

	return nil
}

// Load reads the four data files into a fresh store. Sellers, customers
// and products load independently; carts load last because every cart
// line joins a customer id and a product id against the already-loaded
// collections. Missing files mean a first run and are not an error.
func (f *FileStore) Load() (*store.Store, []Rejected, error) {
	st := store.New()
	var rejected []Rejected

	if err := f.loadSellers(st, &rejected); err != nil {
		return nil, nil, err
	}
	if err := f.loadCustomers(st, &rejected); err != nil {
		return nil, nil, err
	}
	if err := f.loadProducts(st, &rejected); err != nil {
		return nil, nil, err
	}
	if err := f.loadCarts(st, &rejected); err != nil {
		return nil, nil, err
	}

	f.logger.Info("data loaded",
		zap.Int("sellers", len(st.Sellers())),
		zap.Int("customers", len(st.Customers())),
		zap.Int("products", len(st.Products())),
		zap.Int("rejected", len(rejected)),
	)

	return st, rejected, nil
}

func (f *FileStore) path(name string) string {
	return filepath.Join(f.cfg.Dir, name)
}

func (f *FileStore) writeFile(name string, lines []string) error {
	tmp, err := os.CreateTemp(f.cfg.Dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), f.path(name)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

// readLines returns the file's lines, or nil if the file does not exist.
func (f *FileStore) readLines(name string) ([]string, error) {
	file, err := os.Open(f.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return lines, nil
}

func sellerLines(st *store.Store) []string {
	var lines []string
	for _, s := range st.Sellers() {
		lines = append(lines, fmt.Sprintf("%d|%s|%s", s.ID, s.Name, s.Email))
	}
	return lines
}

func customerLines(st *store.Store) []string {
	var lines []string
	for _, c := range st.Customers() {
		lines = append(lines, fmt.Sprintf("%d|%s|%s|%s|%s", c.ID, c.Name, c.Address, c.Phone, c.Email))
	}
	return lines
}

func productLines(st *store.Store) []string {
	var lines []string
	for _, p := range st.Products() {
		lines = append(lines, fmt.Sprintf("%d|%s|%s|%s|%d|%d|%s|%d",
			p.ID, p.Name, formatFloat(p.Price), p.Category,
			p.Quantity, p.SellerID, formatFloat(p.RatingSum), p.RatingCount))
	}
	return lines
}

// cartLines walks each customer's ledger newest-first, so the cart file
// is written in ledger-pop order.
func cartLines(st *store.Store) []string {
	var lines []string
	for _, c := range st.Customers() {
		for _, item := range st.CartOf(c.ID).Items() {
			lines = append(lines, fmt.Sprintf("%d|%d|%d", c.ID, item.Product.ID, item.BuyQty))
		}
	}
	return lines
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (f *FileStore) loadSellers(st *store.Store, rejected *[]Rejected) error {
	name := f.cfg.SellersFile
	lines, err := f.readLines(name)
	if err != nil {
		return err
	}
	for i, line := range lines {
		fields := strings.Split(line, "|")
		if len(fields) < 3 {
			*rejected = append(*rejected, Rejected{name, i + 1, line, "expected 3 fields"})
			continue
		}
		id, err := parseInt(name, i+1, "id", fields[0])
		if err != nil {
			return err
		}
		st.RestoreSeller(&domain.Seller{ID: id, Name: fields[1], Email: fields[2]})
	}
	return nil
}

func (f *FileStore) loadCustomers(st *store.Store, rejected *[]Rejected) error {
	name := f.cfg.CustomersFile
	lines, err := f.readLines(name)
	if err != nil {
		return err
	}
	for i, line := range lines {
		fields := strings.Split(line, "|")
		if len(fields) < 5 {
			*rejected = append(*rejected, Rejected{name, i + 1, line, "expected 5 fields"})
			continue
		}
		id, err := parseInt(name, i+1, "id", fields[0])
		if err != nil {
			return err
		}
		st.RestoreCustomer(&domain.Customer{
			ID:      id,
			Name:    fields[1],
			Address: fields[2],
			Phone:   fields[3],
			Email:   fields[4],
		})
	}
	return nil
}

func (f *FileStore) loadProducts(st *store.Store, rejected *[]Rejected) error {
	name := f.cfg.ProductsFile
	lines, err := f.readLines(name)
	if err != nil {
		return err
	}
	for i, line := range lines {
		fields := strings.Split(line, "|")
		if len(fields) < 8 {
			*rejected = append(*rejected, Rejected{name, i + 1, line, "expected 8 fields"})
			continue
		}
		id, err := parseInt(name, i+1, "id", fields[0])
		if err != nil {
			return err
		}
		price, err := parseFloat(name, i+1, "price", fields[2])
		if err != nil {
			return err
		}
		quantity, err := parseInt(name, i+1, "quantity", fields[4])
		if err != nil {
			return err
		}
		sellerID, err := parseInt(name, i+1, "sellerId", fields[5])
		if err != nil {
			return err
		}
		ratingSum, err := parseFloat(name, i+1, "ratingSum", fields[6])
		if err != nil {
			return err
		}
		ratingCount, err := parseInt(name, i+1, "ratingCount", fields[7])
		if err != nil {
			return err
		}
		st.RestoreProduct(&domain.Product{
			ID:          id,
			Name:        fields[1],
			Price:       price,
			Category:    fields[3],
			Quantity:    quantity,
			SellerID:    sellerID,
			RatingSum:   ratingSum,
			RatingCount: ratingCount,
		})
	}
	return nil
}

func (f *FileStore) loadCarts(st *store.Store, rejected *[]Rejected) error {
	name := f.cfg.CartsFile
	lines, err := f.readLines(name)
	if err != nil {
		return err
	}

	// Resolve every line first, keeping file order per customer.
	staged := make(map[int][]cart.Item)
	for i, line := range lines {
		fields := strings.Split(line, "|")
		if len(fields) < 3 {
			*rejected = append(*rejected, Rejected{name, i + 1, line, "expected 3 fields"})
			continue
		}
		customerID, err := parseInt(name, i+1, "customerId", fields[0])
		if err != nil {
			return err
		}
		productID, err := parseInt(name, i+1, "productId", fields[1])
		if err != nil {
			return err
		}
		quantity, err := parseInt(name, i+1, "buyQty", fields[2])
		if err != nil {
			return err
		}
		if _, err := st.FindCustomerByID(customerID); err != nil {
			*rejected = append(*rejected, Rejected{name, i + 1, line, "references unknown customer"})
			continue
		}
		product, err := st.FindProductByID(productID)
		if err != nil {
			*rejected = append(*rejected, Rejected{name, i + 1, line, "references unknown product"})
			continue
		}
		staged[customerID] = append(staged[customerID], cart.Item{Product: *product, BuyQty: quantity})
	}

	// Cart lines were saved in pop order (newest first); pushing them
	// back in reverse restores each ledger's original LIFO order.
	for customerID, items := range staged {
		ledger := st.CartOf(customerID)
		for i := len(items) - 1; i >= 0; i-- {
			ledger.Push(items[i])
		}
	}
	return nil
}

// parseInt surfaces a numeric parse failure on a well-formed line as a
// fatal load error naming the file, line and offending field, rather
// than skipping the record or crashing ambiguously.
func parseInt(file string, line int, field, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s line %d: invalid %s %q: %w", file, line, field, raw, err)
	}
	return v, nil
}

func parseFloat(file string, line int, field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s line %d: invalid %s %q: %w", file, line, field, raw, err)
	}
	return v, nil
}
