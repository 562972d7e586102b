package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storecheck/internal/model"
)

func TestGet_TypedDeserialization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products/9", r.URL.Path)
		_ = json.NewEncoder(w).Encode(model.Product{ID: 9, Title: "Portable Drive", Price: 64, Category: "electronics"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	got, err := Get[model.Product](c, "/products/9")
	require.NoError(t, err)
	assert.Equal(t, 9, got.ID)
	assert.Equal(t, "Portable Drive", got.Title)
	assert.Equal(t, 64.0, got.Price)
}

func TestGet_UnparseableBodyYieldsDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message": ["not", "a", "product"`)) // truncated JSON
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	got, err := Get[model.Product](c, "/products/9999")
	require.NoError(t, err, "shape mismatch must not surface as an error")
	assert.True(t, got.IsZero(), "unparseable body must decode to the default-shaped value")
}

func TestGet_NullBodyYieldsDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	got, err := Get[model.Product](c, "/products/9999")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestGetRaw_ExposesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("gone"))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	raw, err := c.GetRaw("/products/1")
	require.NoError(t, err, "non-2xx is not a transport failure")
	assert.Equal(t, http.StatusNotFound, raw.StatusCode)
	assert.Equal(t, "gone", raw.Body)
	assert.False(t, raw.OK())
}

func TestPost_SerializesBodyAndDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in model.Cart
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		in.ID = 11
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(in)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	cart := model.Cart{UserID: 1, Products: []model.CartItem{{ProductID: 9, Quantity: 1}}}
	got, err := Post[model.Cart](c, "/carts", cart)
	require.NoError(t, err)
	assert.Equal(t, 11, got.ID)
	assert.Equal(t, 1, got.UserID)
	require.Len(t, got.Products, 1)
	assert.Equal(t, 9, got.Products[0].ProductID)
}

func TestPut_SerializesBodyAndDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"title":"Renamed"`)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	got, err := Put[model.Product](c, "/products/10", model.Product{ID: 10, Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
}

func TestDelete_IssuesExactlyOneRequest(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	raw, err := c.Delete("/products/14")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, raw.StatusCode)
	assert.Equal(t, int64(1), calls.Load(), "one logical delete must issue one request")
}

func TestStockNeverSerialized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.NotContains(t, string(body), "Stock")
		assert.NotContains(t, string(body), "stock")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, nil)
	p := model.Product{Title: "Local Inventory", Stock: 7}
	_, err := c.PostRaw("/products", p)
	require.NoError(t, err)
}

func TestTransportFailure_SurfacesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, time.Second, nil)
	_, err := Get[model.Product](c, "/products/1")
	require.Error(t, err)

	_, err = c.Delete("/products/1")
	require.Error(t, err)
}

func TestBaseURLJoining(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Path
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second, nil)
	_, err := c.GetRaw("products")
	require.NoError(t, err)
	assert.Equal(t, "/products", seen)
}
