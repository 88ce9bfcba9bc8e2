package domain

// Product is a live catalog record. Stock and the rating aggregate are
// mutated in place by checkout; every other field is fixed at creation.
type Product struct {
	ID          int
	Name        string
	Price       float64
	Category    string
	Quantity    int
	SellerID    int
	RatingSum   float64
	RatingCount int
}

// AverageRating returns the mean of all captured ratings, or 0 for a
// product that has never been rated.
func (p *Product) AverageRating() float64 {
	if p.RatingCount == 0 {
		return 0
	}
	return p.RatingSum / float64(p.RatingCount)
}

// AddRating folds one accepted rating into the running aggregate.
func (p *Product) AddRating(rating float64) {
	p.RatingSum += rating
	p.RatingCount++
}
