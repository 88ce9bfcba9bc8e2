package domain

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestProperty_AverageRatingIsMeanOfAcceptedRatings(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("average equals sum of ratings over their count", prop.ForAll(
		func(ratings []int) bool {
			product := &Product{ID: 1, Name: "Widget"}

			var sum float64
			for _, r := range ratings {
				product.AddRating(float64(r))
				sum += float64(r)
			}

			if len(ratings) == 0 {
				return product.AverageRating() == 0
			}
			want := sum / float64(len(ratings))
			return math.Abs(product.AverageRating()-want) < 1e-9
		},
		gen.SliceOf(gen.IntRange(1, 5)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestAverageRatingOfUnratedProductIsZero(t *testing.T) {
	product := &Product{ID: 1, Name: "Widget"}
	assert.Zero(t, product.AverageRating())
}
