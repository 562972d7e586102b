package scenario

import (
	"fmt"

	"storecheck/internal/api"
	"storecheck/internal/model"
	"storecheck/internal/verify"
)

// Known catalogue identifiers on the public instance; the fakeshop seed
// carries the same ones.
const (
	knownProductID  = 9
	absentProductID = 9999
)

// productCRUD reads a known product by identifier, updates it and checks
// the echoed fields, then probes an identifier that does not exist and
// expects the default-shaped not-found signal.
func productCRUD(env *Env) *verify.Report {
	v := verify.New(env.Client, env.Log)
	rep := v.Report

	itemPath := fmt.Sprintf("/products/%d", knownProductID)
	existing, err := api.Get[model.Product](env.Client, itemPath)
	if err != nil {
		rep.Fail(err)
		return rep
	}
	_ = v.CheckTrue("product-found", !existing.IsZero(), fmt.Sprintf("default-shaped product for id %d", knownProductID))
	_ = v.CheckEqual("product-id-echo", knownProductID, existing.ID)

	updated := existing
	updated.Price += 5.00
	updated.Title += " - Updated"

	got, err := api.Put[model.Product](env.Client, itemPath, updated)
	if err != nil {
		rep.Fail(err)
		return rep
	}
	_ = v.CheckEqual("updated-price-echo", updated.Price, got.Price)
	_ = v.CheckEqual("updated-title-echo", updated.Title, got.Title)

	missing, err := api.Get[model.Product](env.Client, fmt.Sprintf("/products/%d", absentProductID))
	if err != nil {
		rep.Fail(err)
		return rep
	}
	_ = v.CheckTrue("absent-id-default-shaped", missing.IsZero(),
		fmt.Sprintf("unexpected product %d for absent id", missing.ID))

	return rep
}
