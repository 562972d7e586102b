// Package scenario composes the client, selectors, and verifier into the
// concrete business workflows the suite runs against the storefront.
//
// Each scenario is self-contained: it builds its own client, fetches what
// it needs, mutates, verifies, and discards all state. Scenarios share
// nothing and may run in any order.
package scenario

import (
	"hash/fnv"
	"log/slog"
	"math/rand"

	"storecheck/internal/api"
	"storecheck/internal/config"
	"storecheck/internal/model"
	"storecheck/internal/selector"
	"storecheck/internal/verify"
)

// Env carries the per-scenario collaborators. A fresh Env is built for
// every scenario execution; in particular the client and the random
// generator are never shared across scenarios.
type Env struct {
	Client *api.Client
	Cfg    config.Session
	RNG    *rand.Rand
	Log    *slog.Logger

	// Stock synthesizes local inventory for a fetched catalog. Defaults to
	// selector.SynthesizeStock; tests override it to pin exact quantities.
	Stock func(*rand.Rand, []model.Product)
}

// NewEnv builds the environment for one scenario execution. The seed is
// folded with the scenario name so every scenario gets an independent,
// reproducible generator from a single session seed.
func NewEnv(cfg config.Session, name string, seed int64, log *slog.Logger) *Env {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return &Env{
		Client: api.New(cfg.BaseURL, cfg.Timeout, log),
		Cfg:    cfg,
		RNG:    rand.New(rand.NewSource(seed ^ int64(h.Sum64()))),
		Log:    log,
		Stock:  selector.SynthesizeStock,
	}
}

// Scenario is one self-contained workflow exercising a business rule
// end-to-end against the remote service.
type Scenario struct {
	Name        string
	Description string
	Run         func(env *Env) *verify.Report
}

// Registry returns all scenarios in their canonical order.
func Registry() []Scenario {
	return []Scenario{
		{
			Name:        "cheapest-electronics-checkout",
			Description: "add the cheapest in-stock electronics product to a new cart",
			Run:         cheapestCheckout,
		},
		{
			Name:        "lowest-rated-deletion",
			Description: "delete the lowest-rated product and verify it is gone",
			Run:         lowestRatedDeletion,
		},
		{
			Name:        "catalogue-addition",
			Description: "add three uniquely named clothing products and verify the catalogue",
			Run:         catalogueAddition,
		},
		{
			Name:        "duplicate-rejection",
			Description: "submit the same product twice; the backend accepts duplicates as documented",
			Run:         duplicateRejection,
		},
		{
			Name:        "missing-title",
			Description: "submit a product without a title; the backend performs no validation",
			Run:         missingTitle,
		},
		{
			Name:        "negative-price",
			Description: "submit a product with a negative price; the backend performs no validation",
			Run:         negativePrice,
		},
		{
			Name:        "auth-login",
			Description: "log in with valid and invalid credentials",
			Run:         authLogin,
		},
		{
			Name:        "product-crud",
			Description: "read and update a catalogue product, and probe an absent identifier",
			Run:         productCRUD,
		},
		{
			Name:        "cart-crud",
			Description: "create, read, update, and delete carts",
			Run:         cartCRUD,
		},
		{
			Name:        "empty-cart-creation",
			Description: "create a cart with no line items",
			Run:         emptyCartCreation,
		},
	}
}
