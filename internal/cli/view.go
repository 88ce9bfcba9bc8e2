package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"marketplace/internal/domain"
	"marketplace/internal/ranking"
	"marketplace/internal/store"
)

// TopRatedView returns the catalog ordered by rating for display.
func TopRatedView(st *store.Store) []*domain.Product {
	return ranking.TopRated(st.Products())
}

// PrintProducts renders a product table.
func PrintProducts(out io.Writer, products []*domain.Product) {
	if len(products) == 0 {
		fmt.Fprintln(out, "[INFO] No products listed yet.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tCategory\tPrice\tStock\tRating")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t$%.2f\t%d\t%.2f\n",
			p.ID, p.Name, p.Category, p.Price, p.Quantity, p.AverageRating())
	}
	w.Flush()
}
