package fakeshop

import "storecheck/internal/model"

// SeedProducts returns the catalog the server starts with: a small cut of
// the public instance's data, enough to exercise every selection rule
// (multiple categories, distinct prices, a clear lowest rating).
func SeedProducts() []model.Product {
	return []model.Product{
		{
			ID:       1,
			Title:    "Fjallraven Foldsack No. 1 Backpack",
			Price:    109.95,
			Category: "men's clothing",
			Rating:   model.Rating{Rate: 3.9, Count: 120},
		},
		{
			ID:       2,
			Title:    "Mens Casual Premium Slim Fit T-Shirt",
			Price:    22.3,
			Category: "men's clothing",
			Rating:   model.Rating{Rate: 4.1, Count: 259},
		},
		{
			ID:       5,
			Title:    "John Hardy Legends Naga Bracelet",
			Price:    695,
			Category: "jewelery",
			Rating:   model.Rating{Rate: 4.6, Count: 400},
		},
		{
			ID:       9,
			Title:    "WD 2TB Elements Portable External Hard Drive",
			Price:    64,
			Category: "electronics",
			Rating:   model.Rating{Rate: 3.3, Count: 203},
		},
		{
			ID:       10,
			Title:    "SanDisk SSD PLUS 1TB Internal SSD",
			Price:    109,
			Category: "electronics",
			Rating:   model.Rating{Rate: 2.9, Count: 470},
		},
		{
			ID:       12,
			Title:    "WD 4TB Gaming Drive",
			Price:    114,
			Category: "electronics",
			Rating:   model.Rating{Rate: 4.8, Count: 400},
		},
		{
			ID:       14,
			Title:    "Acer SB220Q 21.5 inch Full HD IPS Monitor",
			Price:    599,
			Category: "electronics",
			Rating:   model.Rating{Rate: 2.2, Count: 140},
		},
	}
}

// SeedCarts returns the carts the server starts with.
func SeedCarts() []model.Cart {
	return []model.Cart{
		{
			ID:     1,
			UserID: 1,
			Date:   "2020-03-02T00:00:00.000Z",
			Products: []model.CartItem{
				{ProductID: 1, Quantity: 4},
				{ProductID: 2, Quantity: 1},
			},
		},
		{
			ID:     4,
			UserID: 3,
			Date:   "2020-01-01T00:00:00.000Z",
			Products: []model.CartItem{
				{ProductID: 1, Quantity: 4},
			},
		},
	}
}
