package scenario

import (
	"fmt"

	"storecheck/internal/api"
	"storecheck/internal/model"
	"storecheck/internal/selector"
	"storecheck/internal/verify"
)

// catalogueAddition generates three clothing products with distinguishing
// titles, creates each, and verifies: acceptance status, echoed titles,
// uniqueness of identifiers and titles across the created set, and
// presence in a subsequent listing via the two-tier check.
//
// Against the public instance the identifier-uniqueness and listing checks
// report real findings: every create is acknowledged with the same
// identifier and nothing is persisted.
func catalogueAddition(env *Env) *verify.Report {
	v := verify.New(env.Client, env.Log)
	rep := v.Report

	bases := []string{"Casual T-Shirt", "Formal Shirt", "Jeans Pants"}
	created := make([]model.Product, 0, len(bases))

	for _, base := range bases {
		candidate := selector.GenerateProduct(env.RNG, base, "clothing")
		raw, err := env.Client.PostRaw("/products", candidate)
		if err != nil {
			rep.Fail(err)
			return rep
		}
		_ = v.CheckStatus("create-status", raw, 200, 201)

		got := api.Decode[model.Product](raw)
		_ = v.CheckEqual("created-title-echo", candidate.Title, got.Title)
		created = append(created, got)
	}

	idsDistinct, dupID := selector.Distinct(created, func(p model.Product) int { return p.ID })
	_ = v.CheckTrue("created-ids-distinct", idsDistinct, fmt.Sprintf("duplicate id %d", dupID))

	titlesDistinct, dupTitle := selector.Distinct(created, func(p model.Product) string {
		return selector.TitleKey(p.Title)
	})
	_ = v.CheckTrue("created-titles-distinct", titlesDistinct, fmt.Sprintf("duplicate title %q", dupTitle))

	for _, got := range created {
		key := selector.TitleKey(got.Title)
		branch, err := verify.ConfirmCreation(v,
			fmt.Sprintf("/products/%d", got.ID), "/products",
			func(p model.Product) bool { return selector.TitleKey(p.Title) == key },
		)
		if err != nil && !verify.IsCheckError(err) {
			rep.Fail(err)
			return rep
		}
		env.Log.Info("creation verified", "id", got.ID, "branch", branch, "pass", rep.Pass)
	}

	return rep
}

// duplicateRejection submits the same payload twice. The documented
// behavior is that no uniqueness is enforced: the duplicate is acknowledged
// and echoed back unchanged. The scenario asserts that documented behavior,
// not the idealized rejection.
func duplicateRejection(env *Env) *verify.Report {
	v := verify.New(env.Client, env.Log)
	rep := v.Report

	candidate := selector.GenerateProduct(env.RNG, "Summer Dress", "clothing")

	first, err := env.Client.PostRaw("/products", candidate)
	if err != nil {
		rep.Fail(err)
		return rep
	}
	_ = v.CheckStatus("create-status", first, 200, 201)

	second, err := env.Client.PostRaw("/products", candidate)
	if err != nil {
		rep.Fail(err)
		return rep
	}
	_ = v.CheckStatus("duplicate-create-status", second, 200, 201)

	got := api.Decode[model.Product](second)
	_ = v.CheckEqual("duplicate-title-echo", candidate.Title, got.Title)
	rep.AddStep("note", "duplicate-rejection", "backend enforces no uniqueness; duplicate accepted as documented")

	return rep
}

// missingTitle submits a product with no title. The backend performs no
// validation; the echo must carry the empty title straight back.
func missingTitle(env *Env) *verify.Report {
	v := verify.New(env.Client, env.Log)
	rep := v.Report

	invalid := model.Product{
		Price:       49.99,
		Description: "A stylish piece of clothing.",
		Category:    "clothing",
		Rating:      model.Rating{Rate: 4.5, Count: 150},
	}
	raw, err := env.Client.PostRaw("/products", invalid)
	if err != nil {
		rep.Fail(err)
		return rep
	}
	_ = v.CheckStatus("create-status", raw, 200, 201)

	got := api.Decode[model.Product](raw)
	_ = v.CheckTrue("missing-title-echoed-empty", got.Title == "", fmt.Sprintf("title %q", got.Title))
	rep.AddStep("note", "missing-title", "backend performs no field validation, as documented")

	return rep
}

// negativePrice submits a product priced below zero. The backend performs
// no validation and the suite never normalizes prices, so the echo must
// preserve the negative value.
func negativePrice(env *Env) *verify.Report {
	v := verify.New(env.Client, env.Log)
	rep := v.Report

	invalid := model.Product{
		Title:       "Invalid Price Shirt",
		Price:       -10.00,
		Description: "A stylish piece of clothing.",
		Category:    "clothing",
		Rating:      model.Rating{Rate: 4.5, Count: 150},
	}
	raw, err := env.Client.PostRaw("/products", invalid)
	if err != nil {
		rep.Fail(err)
		return rep
	}
	_ = v.CheckStatus("create-status", raw, 200, 201)

	got := api.Decode[model.Product](raw)
	_ = v.CheckTrue("negative-price-preserved", got.Price < 0, fmt.Sprintf("price %.2f", got.Price))
	rep.AddStep("note", "negative-price", "backend performs no field validation, as documented")

	return rep
}
