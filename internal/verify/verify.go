// Package verify implements the mutation verifier: the two-tier check that
// makes assertions meaningful against a backend that acknowledges writes it
// does not persist.
//
// Every mutation is verified in stages. The immediate check asserts the
// write's direct response (status code, echoed fields). The durability
// probe then re-fetches the entity by identifier; if the probe shows the
// pre-mutation state (a stale echo), the verifier falls back to a full
// listing scan before declaring a verdict. Only a mutation that fails both
// tiers is a genuine verification failure.
package verify

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"storecheck/internal/api"
)

// Entity is the contract the verifier needs from a record under
// verification: a remote identifier and default-shape detection.
type Entity interface {
	EntityID() int
	IsZero() bool
}

// CheckError is a business-rule verification failure. It carries the rule
// that was violated with the expected and actual values so the scenario
// failure message is diagnosable on its own.
type CheckError struct {
	Rule     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	return fmt.Sprintf("check failed: %s\n  expected: %s\n  actual: %s", e.Rule, e.Expected, e.Actual)
}

// IsCheckError reports whether err is a CheckError, unwrapping as needed.
func IsCheckError(err error) bool {
	var ce *CheckError
	return errors.As(err, &ce)
}

// Verifier runs the mutate-then-verify sequence for one scenario. It owns
// the scenario's report; all checks append steps and errors to it.
type Verifier struct {
	Client *api.Client
	Report *Report

	log *slog.Logger
}

// New creates a verifier with a fresh report. A nil logger suppresses
// verification logging.
func New(client *api.Client, log *slog.Logger) *Verifier {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Verifier{
		Client: client,
		Report: NewReport(),
		log:    log,
	}
}

// CheckStatus asserts the immediate response status is in the acceptance
// set. Creation accepts {200, 201}; deletion accepts {200, 204}. The
// failure is recorded on the report and returned.
func (v *Verifier) CheckStatus(rule string, raw api.RawResponse, accept ...int) error {
	v.Report.AddStep("immediate-check", rule, fmt.Sprintf("status %d", raw.StatusCode))
	if slices.Contains(accept, raw.StatusCode) {
		return nil
	}
	err := &CheckError{
		Rule:     rule,
		Expected: fmt.Sprintf("status in %v", accept),
		Actual:   fmt.Sprintf("status %d", raw.StatusCode),
	}
	v.Report.Fail(err)
	return err
}

// CheckEqual asserts want and got are deeply equal, recording the outcome.
func (v *Verifier) CheckEqual(rule string, want, got any) error {
	if reflect.DeepEqual(want, got) {
		v.Report.AddStep("immediate-check", rule, "match")
		return nil
	}
	err := &CheckError{
		Rule:     rule,
		Expected: fmt.Sprintf("%v", want),
		Actual:   fmt.Sprintf("%v", got),
	}
	v.Report.Fail(err)
	return err
}

// CheckTrue asserts a named condition holds.
func (v *Verifier) CheckTrue(rule string, ok bool, actual string) error {
	if ok {
		v.Report.AddStep("immediate-check", rule, "holds")
		return nil
	}
	err := &CheckError{Rule: rule, Expected: "condition holds", Actual: actual}
	v.Report.Fail(err)
	return err
}

// probe re-fetches itemPath and decodes the body as T. A 404 status or an
// unparseable body both come back as the zero value: the not-found signal.
func probe[T Entity](v *Verifier, itemPath string) (T, api.RawResponse, error) {
	var echo T
	raw, err := v.Client.GetRaw(itemPath)
	if err != nil {
		return echo, raw, fmt.Errorf("durability probe %s: %w", itemPath, err)
	}
	if raw.StatusCode != 404 {
		// Shape mismatch decodes to the default value, never an error.
		_ = json.Unmarshal([]byte(raw.Body), &echo)
	}
	v.Report.AddStep("probe", itemPath, fmt.Sprintf("status %d", raw.StatusCode))
	return echo, raw, nil
}

// ConfirmDeletion runs the durability probe for a delete of id and, on a
// stale echo, the fallback listing scan. The returned branch tells which
// tier produced the verdict; probing the same identifier twice within one
// scenario resolves through the same branch both times.
func ConfirmDeletion[T Entity](v *Verifier, itemPath, listPath string, id int) (Branch, error) {
	echo, raw, err := probe[T](v, itemPath)
	if err != nil {
		return BranchNone, err
	}

	if raw.StatusCode == 404 || echo.IsZero() {
		// Durable-deletion semantics confirmed directly.
		v.Report.Branch = BranchDurable
		v.Report.AddStep("verdict", itemPath, "not found after delete")
		v.log.Debug("deletion confirmed by probe", "path", itemPath, "id", id)
		return BranchDurable, nil
	}

	// Stale echo: the backend does not persist this class of write.
	// Fall back to scanning the full listing for the identifier.
	v.log.Debug("stale echo on delete probe, scanning listing", "path", itemPath, "id", id)
	items, err := api.Get[[]T](v.Client, listPath)
	if err != nil {
		return BranchNone, fmt.Errorf("listing scan %s: %w", listPath, err)
	}
	v.Report.Branch = BranchStaleEcho
	v.Report.AddStep("listing-scan", listPath, fmt.Sprintf("%d entries", len(items)))

	for _, item := range items {
		if item.EntityID() == id {
			cerr := &CheckError{
				Rule:     "deleted-entity-absent-from-listing",
				Expected: fmt.Sprintf("id %d absent from %s", id, listPath),
				Actual:   fmt.Sprintf("id %d still listed", id),
			}
			v.Report.Fail(cerr)
			return BranchStaleEcho, cerr
		}
	}

	v.Report.AddStep("verdict", listPath, fmt.Sprintf("id %d absent from listing", id))
	return BranchStaleEcho, nil
}

// ConfirmCreation runs the durability probe for a freshly created entity.
// A probe that returns the created fields settles the verdict directly; a
// not-found or default-shaped probe result falls back to scanning the
// listing with the supplied matcher. Failing both tiers is a genuine
// verification failure.
func ConfirmCreation[T Entity](v *Verifier, itemPath, listPath string, match func(T) bool) (Branch, error) {
	echo, raw, err := probe[T](v, itemPath)
	if err != nil {
		return BranchNone, err
	}

	if raw.StatusCode != 404 && !echo.IsZero() && match(echo) {
		v.Report.Branch = BranchDurable
		v.Report.AddStep("verdict", itemPath, "created entity re-fetched")
		return BranchDurable, nil
	}

	v.log.Debug("create probe missed, scanning listing", "path", itemPath)
	items, err := api.Get[[]T](v.Client, listPath)
	if err != nil {
		return BranchNone, fmt.Errorf("listing scan %s: %w", listPath, err)
	}
	v.Report.Branch = BranchStaleEcho
	v.Report.AddStep("listing-scan", listPath, fmt.Sprintf("%d entries", len(items)))

	for _, item := range items {
		if match(item) {
			v.Report.AddStep("verdict", listPath, "created entity present in listing")
			return BranchStaleEcho, nil
		}
	}

	cerr := &CheckError{
		Rule:     "created-entity-present-in-listing",
		Expected: fmt.Sprintf("created entity present in %s", listPath),
		Actual:   "absent from probe and listing",
	}
	v.Report.Fail(cerr)
	return BranchStaleEcho, cerr
}
