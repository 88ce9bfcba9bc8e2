// Package ranking orders the catalog by customer rating. The ordering is
// rebuilt from the live collection on every call and never cached or
// persisted, so ratings captured by the latest checkout are always
// reflected and no ranked structure can go stale under mutation.
package ranking

import (
	"sort"

	"marketplace/internal/domain"
)

// TopRated returns the products ordered by descending average rating.
// The sort is stable: products with equal averages keep their catalog
// (listing) order, which makes the output reproducible.
func TopRated(products []*domain.Product) []*domain.Product {
	ranked := make([]*domain.Product, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AverageRating() > ranked[j].AverageRating()
	})
	return ranked
}
