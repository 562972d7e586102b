package scenario

import (
	"fmt"

	"storecheck/internal/api"
	"storecheck/internal/model"
	"storecheck/internal/selector"
	"storecheck/internal/verify"
)

// lowestRatedDeletion selects the product with the lowest customer rating,
// deletes it with a single request, and confirms the deletion through the
// verifier's two-tier check: direct re-fetch first, listing scan on a
// stale echo.
func lowestRatedDeletion(env *Env) *verify.Report {
	v := verify.New(env.Client, env.Log)
	rep := v.Report

	products, err := api.Get[[]model.Product](env.Client, "/products")
	if err != nil {
		rep.Fail(err)
		return rep
	}
	rep.AddStep("fetch", "/products", fmt.Sprintf("%d products", len(products)))

	pick, err := selector.LowestRated(products)
	if err != nil {
		rep.Fail(err)
		return rep
	}
	rep.AddStep("select", "lowest-rated", fmt.Sprintf("id %d %q rated %.1f", pick.ID, pick.Title, pick.Rating.Rate))
	env.Log.Info("selected lowest-rated product",
		"id", pick.ID,
		"title", pick.Title,
		"rate", pick.Rating.Rate,
	)

	itemPath := fmt.Sprintf("/products/%d", pick.ID)
	raw, err := env.Client.Delete(itemPath)
	if err != nil {
		rep.Fail(err)
		return rep
	}
	_ = v.CheckStatus("delete-status", raw, 200, 204)

	branch, err := verify.ConfirmDeletion[model.Product](v, itemPath, "/products", pick.ID)
	if err != nil && !verify.IsCheckError(err) {
		rep.Fail(err)
		return rep
	}
	env.Log.Info("deletion verified", "branch", branch, "pass", rep.Pass)

	return rep
}
