package selector

import (
	"fmt"
	"math"
	"math/rand"

	"storecheck/internal/model"
)

// StockLimit is the exclusive upper bound for synthesized stock quantities.
const StockLimit = 10

// SynthesizeStock assigns each product a uniform random stock quantity in
// [0, StockLimit). The backend does not report inventory, so the suite
// invents one locally before selection rules run.
//
// The generator is passed in explicitly and must be seeded per scenario:
// within one scenario the quantity used for filtering is the quantity
// reported afterwards, while separate runs stay independent of process-wide
// random state.
func SynthesizeStock(rng *rand.Rand, products []model.Product) {
	for i := range products {
		products[i].Stock = rng.Intn(StockLimit)
	}
}

// GenerateProduct builds a catalogue candidate with a distinguishing title
// and randomized price and rating. The title suffix comes from the
// scenario's generator so repeated runs with the same seed produce the
// same candidates.
func GenerateProduct(rng *rand.Rand, baseTitle, category string) model.Product {
	suffix := fmt.Sprintf("%08x", rng.Uint32())
	return model.Product{
		Title:       baseTitle + " " + suffix,
		Price:       float64(20 + rng.Intn(480)),
		Description: "A stylish piece of clothing.",
		Category:    category,
		Image:       "https://fakestoreapi.com/img/71-3HjGNDUL._AC_SY879._SX._UX._SY._UY_t.png",
		Rating: model.Rating{
			Rate:  math.Round(rng.Float64()*5*100) / 100,
			Count: 1 + rng.Intn(999),
		},
	}
}
