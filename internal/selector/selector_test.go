package selector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storecheck/internal/model"
)

func catalog() []model.Product {
	return []model.Product{
		{ID: 1, Title: "Backpack", Price: 109.95, Category: "men's clothing", Rating: model.Rating{Rate: 3.9}, Stock: 4},
		{ID: 9, Title: "Portable Drive", Price: 64, Category: "electronics", Rating: model.Rating{Rate: 3.3}, Stock: 2},
		{ID: 10, Title: "Internal SSD", Price: 109, Category: "Electronics", Rating: model.Rating{Rate: 2.9}, Stock: 5},
		{ID: 12, Title: "Gaming Drive", Price: 114, Category: "electronics", Rating: model.Rating{Rate: 4.8}, Stock: 0},
		{ID: 14, Title: "IPS Monitor", Price: 599, Category: "ELECTRONICS", Rating: model.Rating{Rate: 2.2}, Stock: 1},
	}
}

func TestCheapestInCategory_PicksMinimumPrice(t *testing.T) {
	got, err := CheapestInCategory(catalog(), "electronics", 1)
	require.NoError(t, err)
	assert.Equal(t, 9, got.ID, "cheapest in-stock electronics is the portable drive")
}

func TestCheapestInCategory_CaseInsensitive(t *testing.T) {
	products := []model.Product{
		{ID: 10, Title: "Internal SSD", Price: 109, Category: "Electronics", Stock: 5},
	}
	got, err := CheapestInCategory(products, "eLeCtRoNiCs", 1)
	require.NoError(t, err)
	assert.Equal(t, 10, got.ID)
}

func TestCheapestInCategory_ExcludesOutOfStock(t *testing.T) {
	products := []model.Product{
		{ID: 12, Title: "Gaming Drive", Price: 1, Category: "electronics", Stock: 0},
		{ID: 14, Title: "IPS Monitor", Price: 599, Category: "electronics", Stock: 1},
	}
	got, err := CheapestInCategory(products, "electronics", 1)
	require.NoError(t, err)
	assert.Equal(t, 14, got.ID, "the cheaper product is out of stock and must be skipped")
}

func TestCheapestInCategory_ResultIsMinimumOverCandidates(t *testing.T) {
	products := catalog()
	got, err := CheapestInCategory(products, "electronics", 1)
	require.NoError(t, err)
	for _, p := range products {
		if p.Stock >= 1 && TitleKey(p.Category) == TitleKey("electronics") {
			assert.LessOrEqual(t, got.Price, p.Price)
		}
	}
}

func TestCheapestInCategory_TieBreaksToFirstOccurrence(t *testing.T) {
	products := []model.Product{
		{ID: 7, Title: "First", Price: 50, Category: "electronics", Stock: 3},
		{ID: 8, Title: "Second", Price: 50, Category: "electronics", Stock: 3},
	}
	got, err := CheapestInCategory(products, "electronics", 1)
	require.NoError(t, err)
	assert.Equal(t, 7, got.ID, "equal prices resolve to the first occurrence in input order")
}

func TestCheapestInCategory_NoCandidates(t *testing.T) {
	_, err := CheapestInCategory(catalog(), "groceries", 1)
	require.Error(t, err)

	var nce *NoCandidateError
	require.True(t, errors.As(err, &nce))
	assert.Equal(t, "cheapest-in-category", nce.Rule)
	assert.Equal(t, "groceries", nce.Category)
	assert.Equal(t, len(catalog()), nce.Considered)
	assert.Contains(t, err.Error(), `"groceries"`)
}

func TestCheapestInCategory_AllOutOfStock(t *testing.T) {
	products := []model.Product{
		{ID: 9, Title: "Portable Drive", Price: 64, Category: "electronics", Stock: 0},
	}
	_, err := CheapestInCategory(products, "electronics", 1)
	require.Error(t, err)
}

func TestLowestRated_PicksMinimumRate(t *testing.T) {
	products := catalog()
	got, err := LowestRated(products)
	require.NoError(t, err)
	assert.Equal(t, 14, got.ID, "the monitor has the lowest rating")
	for _, p := range products {
		assert.LessOrEqual(t, got.Rating.Rate, p.Rating.Rate)
	}
}

func TestLowestRated_TieBreaksToFirstOccurrence(t *testing.T) {
	products := []model.Product{
		{ID: 1, Rating: model.Rating{Rate: 2.0}},
		{ID: 2, Rating: model.Rating{Rate: 2.0}},
	}
	got, err := LowestRated(products)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ID)
}

func TestLowestRated_EmptyInput(t *testing.T) {
	_, err := LowestRated(nil)
	require.Error(t, err)

	var nce *NoCandidateError
	require.True(t, errors.As(err, &nce))
	assert.Equal(t, "lowest-rated", nce.Rule)
}

func TestDistinct_AllDistinct(t *testing.T) {
	products := []model.Product{{ID: 1}, {ID: 2}, {ID: 3}}
	ok, _ := Distinct(products, func(p model.Product) int { return p.ID })
	assert.True(t, ok)
}

func TestDistinct_ReportsCollision(t *testing.T) {
	products := []model.Product{{ID: 21}, {ID: 22}, {ID: 21}}
	ok, dup := Distinct(products, func(p model.Product) int { return p.ID })
	assert.False(t, ok)
	assert.Equal(t, 21, dup)
}

func TestDistinct_EmptyAndSingle(t *testing.T) {
	ok, _ := Distinct(nil, func(p model.Product) int { return p.ID })
	assert.True(t, ok)
	ok, _ = Distinct([]model.Product{{ID: 1}}, func(p model.Product) int { return p.ID })
	assert.True(t, ok)
}

func TestTitleKey_FoldsCaseAndNormalization(t *testing.T) {
	// "Café" precomposed vs with a combining acute accent.
	nfc := "Café Shirt"
	nfd := "Café Shirt"
	assert.Equal(t, TitleKey(nfc), TitleKey(nfd))
	assert.Equal(t, TitleKey("SUMMER Dress"), TitleKey("summer dress"))
	assert.NotEqual(t, TitleKey("Summer Dress"), TitleKey("Winter Dress"))
}

func TestDistinct_NormalizedTitles(t *testing.T) {
	products := []model.Product{
		{Title: "Café Shirt"},
		{Title: "Café Shirt"},
	}
	ok, dup := Distinct(products, func(p model.Product) string { return TitleKey(p.Title) })
	assert.False(t, ok, "titles that render identically must collide")
	assert.Equal(t, TitleKey("Café Shirt"), dup)
}
