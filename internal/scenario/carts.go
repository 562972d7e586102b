package scenario

import (
	"fmt"

	"storecheck/internal/api"
	"storecheck/internal/model"
	"storecheck/internal/verify"
)

// knownCartID exists in the public instance and the fakeshop seed.
const knownCartID = 4

// cartCRUD exercises the cart surface end-to-end: multi-line create,
// quantity update, read by identifier, and delete with the two-tier
// durability check.
//
// Line items deliberately reference arbitrary product identifiers; the
// backend does not validate referential integrity and the verifier must
// not assume it does.
func cartCRUD(env *Env) *verify.Report {
	v := verify.New(env.Client, env.Log)
	rep := v.Report

	multi := model.Cart{
		UserID: 1,
		Products: []model.CartItem{
			{ProductID: 1, Quantity: 3},
			{ProductID: 2, Quantity: 1},
			{ProductID: 3, Quantity: 5},
		},
	}
	created, err := api.Post[model.Cart](env.Client, "/carts", multi)
	if err != nil {
		rep.Fail(err)
		return rep
	}
	_ = v.CheckTrue("cart-created", !created.IsZero(), "default-shaped cart in response")
	_ = v.CheckEqual("cart-line-count", 3, len(created.Products))

	if len(created.Products) > 0 {
		update := created
		update.Products[0].Quantity = 7
		updated, err := api.Put[model.Cart](env.Client, fmt.Sprintf("/carts/%d", created.ID), update)
		if err != nil {
			rep.Fail(err)
			return rep
		}
		if err := v.CheckEqual("updated-line-count", len(update.Products), len(updated.Products)); err == nil {
			_ = v.CheckEqual("updated-line-quantity", 7, updated.Products[0].Quantity)
		}
	}

	fetched, err := api.Get[model.Cart](env.Client, fmt.Sprintf("/carts/%d", knownCartID))
	if err != nil {
		rep.Fail(err)
		return rep
	}
	_ = v.CheckEqual("cart-id-echo", knownCartID, fetched.ID)

	doomed, err := api.Post[model.Cart](env.Client, "/carts", model.Cart{
		UserID:   1,
		Products: []model.CartItem{{ProductID: 5, Quantity: 1}},
	})
	if err != nil {
		rep.Fail(err)
		return rep
	}
	_ = v.CheckTrue("doomed-cart-created", !doomed.IsZero(), "default-shaped cart in response")

	itemPath := fmt.Sprintf("/carts/%d", doomed.ID)
	raw, err := env.Client.Delete(itemPath)
	if err != nil {
		rep.Fail(err)
		return rep
	}
	_ = v.CheckStatus("delete-status", raw, 200, 204)

	branch, err := verify.ConfirmDeletion[model.Cart](v, itemPath, "/carts", doomed.ID)
	if err != nil && !verify.IsCheckError(err) {
		rep.Fail(err)
		return rep
	}
	env.Log.Info("cart deletion verified", "branch", branch, "pass", rep.Pass)

	return rep
}
