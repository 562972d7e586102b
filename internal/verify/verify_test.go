package verify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storecheck/internal/api"
	"storecheck/internal/fakeshop"
	"storecheck/internal/model"
)

func newClient(t *testing.T, h http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return api.New(srv.URL, time.Second, nil)
}

func TestCheckStatus_Accepted(t *testing.T) {
	v := New(nil, nil)
	err := v.CheckStatus("create-status", api.RawResponse{StatusCode: 201}, 200, 201)
	assert.NoError(t, err)
	assert.True(t, v.Report.Pass)
	require.Len(t, v.Report.Steps, 1)
	assert.Equal(t, "immediate-check", v.Report.Steps[0].Kind)
}

func TestCheckStatus_Rejected(t *testing.T) {
	v := New(nil, nil)
	err := v.CheckStatus("delete-status", api.RawResponse{StatusCode: 500}, 200, 204)
	require.Error(t, err)
	assert.True(t, IsCheckError(err))
	assert.False(t, v.Report.Pass)
	assert.Contains(t, err.Error(), "delete-status")
	assert.Contains(t, err.Error(), "status 500")
}

func TestCheckEqual(t *testing.T) {
	v := New(nil, nil)
	assert.NoError(t, v.CheckEqual("line-count", 1, 1))
	assert.True(t, v.Report.Pass)

	err := v.CheckEqual("line-count", 1, 0)
	require.Error(t, err)
	assert.False(t, v.Report.Pass)
	assert.Contains(t, err.Error(), "expected: 1")
	assert.Contains(t, err.Error(), "actual: 0")
}

func TestCheckTrue(t *testing.T) {
	v := New(nil, nil)
	assert.NoError(t, v.CheckTrue("token-not-empty", true, ""))
	err := v.CheckTrue("token-not-empty", false, "empty token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty token")
	assert.False(t, v.Report.Pass)
}

func TestConfirmDeletion_DurableBranch(t *testing.T) {
	shop := fakeshop.New(fakeshop.Durable())
	c := newClient(t, shop.Handler())
	v := New(c, nil)

	raw, err := c.Delete("/products/14")
	require.NoError(t, err)
	require.True(t, raw.OK())

	branch, err := ConfirmDeletion[model.Product](v, "/products/14", "/products", 14)
	require.NoError(t, err)
	assert.Equal(t, BranchDurable, branch)
	assert.True(t, v.Report.Pass)
}

func TestConfirmDeletion_StaleEchoScanPasses(t *testing.T) {
	// The probe still echoes the deleted product, but the listing no
	// longer contains it: the fallback scan settles the verdict.
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/14", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(model.Product{ID: 14, Title: "IPS Monitor", Category: "electronics"})
	})
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]model.Product{{ID: 9, Title: "Portable Drive", Category: "electronics"}})
	})
	c := newClient(t, mux)
	v := New(c, nil)

	branch, err := ConfirmDeletion[model.Product](v, "/products/14", "/products", 14)
	require.NoError(t, err)
	assert.Equal(t, BranchStaleEcho, branch)
	assert.True(t, v.Report.Pass)
}

func TestConfirmDeletion_BothTiersFail(t *testing.T) {
	// Quirk mode never deletes: the probe echoes the product and the
	// listing still carries it. That is a genuine verification failure.
	shop := fakeshop.New()
	c := newClient(t, shop.Handler())
	v := New(c, nil)

	raw, err := c.Delete("/products/14")
	require.NoError(t, err)
	require.True(t, raw.OK(), "the quirky backend acknowledges the delete")

	branch, err := ConfirmDeletion[model.Product](v, "/products/14", "/products", 14)
	require.Error(t, err)
	assert.True(t, IsCheckError(err))
	assert.Equal(t, BranchStaleEcho, branch)
	assert.False(t, v.Report.Pass)
	assert.Contains(t, err.Error(), "still listed")
}

func TestConfirmDeletion_ProbeIdempotence(t *testing.T) {
	for _, durable := range []bool{true, false} {
		opts := []fakeshop.Option{}
		if durable {
			opts = append(opts, fakeshop.Durable())
		}
		shop := fakeshop.New(opts...)
		c := newClient(t, shop.Handler())
		v := New(c, nil)

		_, err := c.Delete("/products/9")
		require.NoError(t, err)

		first, _ := ConfirmDeletion[model.Product](v, "/products/9", "/products", 9)
		second, _ := ConfirmDeletion[model.Product](v, "/products/9", "/products", 9)
		assert.Equal(t, first, second, "durable=%v: probing twice must resolve the same branch", durable)
		assert.NotEqual(t, BranchNone, first)
	}
}

func TestConfirmCreation_DurableBranch(t *testing.T) {
	shop := fakeshop.New(fakeshop.Durable())
	c := newClient(t, shop.Handler())
	v := New(c, nil)

	created, err := api.Post[model.Product](c, "/products", model.Product{Title: "New Drive", Category: "electronics"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	branch, err := ConfirmCreation(v,
		fmt.Sprintf("/products/%d", created.ID), "/products",
		func(p model.Product) bool { return p.Title == "New Drive" },
	)
	require.NoError(t, err)
	assert.Equal(t, BranchDurable, branch)
	assert.True(t, v.Report.Pass)
}

func TestConfirmCreation_ListingScanPasses(t *testing.T) {
	// Probe misses, listing carries the entity: the scan settles it.
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products/21", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	})
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]model.Product{{ID: 99, Title: "New Drive"}})
	})
	c := newClient(t, mux)
	v := New(c, nil)

	branch, err := ConfirmCreation(v, "/products/21", "/products",
		func(p model.Product) bool { return p.Title == "New Drive" })
	require.NoError(t, err)
	assert.Equal(t, BranchStaleEcho, branch)
	assert.True(t, v.Report.Pass)
}

func TestConfirmCreation_BothTiersFail(t *testing.T) {
	shop := fakeshop.New() // quirk mode: creates are never stored
	c := newClient(t, shop.Handler())
	v := New(c, nil)

	created, err := api.Post[model.Product](c, "/products", model.Product{Title: "Ghost Product"})
	require.NoError(t, err)

	branch, err := ConfirmCreation(v,
		"/products/21", "/products",
		func(p model.Product) bool { return p.Title == created.Title },
	)
	require.Error(t, err)
	assert.True(t, IsCheckError(err))
	assert.Equal(t, BranchStaleEcho, branch)
	assert.False(t, v.Report.Pass)
}

func TestConfirmDeletion_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := api.New(srv.URL, time.Second, nil)
	v := New(c, nil)

	branch, err := ConfirmDeletion[model.Product](v, "/products/9", "/products", 9)
	require.Error(t, err)
	assert.False(t, IsCheckError(err), "transport failures are not business-rule violations")
	assert.Equal(t, BranchNone, branch)
}
