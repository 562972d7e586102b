// Package selector implements the pure business-rule selections that
// scenarios run over already-fetched collections. No function here
// performs I/O or mutates its input beyond the documented stock synthesis.
package selector

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"storecheck/internal/model"
)

// NoCandidateError is returned when a selection rule filters every product
// out. It names the rule and the inputs so the scenario failure message is
// diagnosable without re-running.
type NoCandidateError struct {
	Rule       string // rule identifier, e.g. "cheapest-in-category"
	Category   string // requested category, if the rule filters by one
	Considered int    // size of the input collection
}

// Error implements the error interface.
func (e *NoCandidateError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("%s: no candidates in category %q (considered %d products)",
			e.Rule, e.Category, e.Considered)
	}
	return fmt.Sprintf("%s: no candidates (considered %d products)", e.Rule, e.Considered)
}

// CheapestInCategory returns the cheapest product whose category equals the
// requested one (case-insensitive) and whose synthesized stock is at least
// minStock. Ties on price resolve to the first occurrence in input order;
// the upstream contract documents no stronger tie-break.
func CheapestInCategory(products []model.Product, category string, minStock int) (model.Product, error) {
	var best model.Product
	found := false

	for _, p := range products {
		if !strings.EqualFold(p.Category, category) || p.Stock < minStock {
			continue
		}
		if !found || p.Price < best.Price {
			best = p
			found = true
		}
	}

	if !found {
		return model.Product{}, &NoCandidateError{
			Rule:       "cheapest-in-category",
			Category:   category,
			Considered: len(products),
		}
	}
	return best, nil
}

// LowestRated returns the product with the minimum rating rate across the
// whole collection, first occurrence on ties.
func LowestRated(products []model.Product) (model.Product, error) {
	if len(products) == 0 {
		return model.Product{}, &NoCandidateError{Rule: "lowest-rated"}
	}

	best := products[0]
	for _, p := range products[1:] {
		if p.Rating.Rate < best.Rating.Rate {
			best = p
		}
	}
	return best, nil
}

// Distinct reports whether the projected values of every item are pairwise
// distinct. On a collision it returns false together with the first value
// seen twice.
func Distinct[T any, K comparable](items []T, project func(T) K) (bool, K) {
	seen := make(map[K]struct{}, len(items))
	for _, item := range items {
		k := project(item)
		if _, dup := seen[k]; dup {
			return false, k
		}
		seen[k] = struct{}{}
	}
	var zero K
	return true, zero
}

// TitleKey folds a product title for uniqueness comparison: NFC
// normalization first, then case folding. Two titles that render
// identically must compare equal even if the backend returns them in
// different Unicode compositions.
func TitleKey(title string) string {
	return strings.ToLower(norm.NFC.String(title))
}
