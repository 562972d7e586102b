package scenario

import (
	"fmt"

	"storecheck/internal/api"
	"storecheck/internal/model"
	"storecheck/internal/selector"
	"storecheck/internal/verify"
)

// cheapestCheckout fetches the catalogue, synthesizes stock, selects the
// cheapest in-stock electronics product and creates a one-line cart for it.
// The created cart must hold exactly that product with quantity 1.
func cheapestCheckout(env *Env) *verify.Report {
	v := verify.New(env.Client, env.Log)
	rep := v.Report

	products, err := api.Get[[]model.Product](env.Client, "/products")
	if err != nil {
		rep.Fail(err)
		return rep
	}
	rep.AddStep("fetch", "/products", fmt.Sprintf("%d products", len(products)))

	env.Stock(env.RNG, products)

	pick, err := selector.CheapestInCategory(products, "electronics", 1)
	if err != nil {
		rep.Fail(err)
		return rep
	}
	rep.AddStep("select", "cheapest-in-category", fmt.Sprintf("id %d %q at %.2f", pick.ID, pick.Title, pick.Price))
	env.Log.Info("selected cheapest in-stock product",
		"id", pick.ID,
		"title", pick.Title,
		"price", pick.Price,
		"stock", pick.Stock,
	)

	cart := model.Cart{
		UserID:   1,
		Products: []model.CartItem{{ProductID: pick.ID, Quantity: 1}},
	}
	raw, err := env.Client.PostRaw("/carts", cart)
	if err != nil {
		rep.Fail(err)
		return rep
	}
	_ = v.CheckStatus("cart-create-status", raw, 200, 201)

	created := api.Decode[model.Cart](raw)
	_ = v.CheckTrue("cart-created", !created.IsZero(), "default-shaped cart in response")
	if err := v.CheckEqual("cart-line-count", 1, len(created.Products)); err == nil {
		_ = v.CheckEqual("cart-line-product", pick.ID, created.Products[0].ProductID)
		_ = v.CheckEqual("cart-line-quantity", 1, created.Products[0].Quantity)
	}

	return rep
}

// emptyCartCreation creates a cart with no line items; the echo must carry
// zero lines.
func emptyCartCreation(env *Env) *verify.Report {
	v := verify.New(env.Client, env.Log)
	rep := v.Report

	raw, err := env.Client.PostRaw("/carts", model.Cart{UserID: 1, Products: []model.CartItem{}})
	if err != nil {
		rep.Fail(err)
		return rep
	}
	_ = v.CheckStatus("cart-create-status", raw, 200, 201)

	created := api.Decode[model.Cart](raw)
	_ = v.CheckTrue("cart-created", !created.IsZero(), "default-shaped cart in response")
	_ = v.CheckEqual("empty-cart-line-count", 0, len(created.Products))

	return rep
}
