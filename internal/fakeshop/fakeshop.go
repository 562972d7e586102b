// Package fakeshop is an in-process stand-in for the storefront service.
//
// The default quirk mode reproduces the public backend's documented
// behavior: writes are acknowledged with success statuses and echoed
// bodies but never change the catalog, so a re-fetch after a delete
// returns the pre-mutation value (a stale echo) and a created entity never
// shows up in a listing. Durable mode applies writes for real and answers
// 404 for missing entities, which is what a well-behaved backend would do.
//
// Package tests and the CLI's demo mode both run against this server.
package fakeshop

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"storecheck/internal/model"
)

// IDs the quirk-mode backend hands out for every create, regardless of how
// many creates came before. Matches the public instance.
const (
	quirkProductID = 21
	quirkCartID    = 11
)

// Server holds the in-memory catalog and cart state.
type Server struct {
	mu          sync.Mutex
	durable     bool
	products    []model.Product
	carts       []model.Cart
	accounts    map[string]string
	nextProduct int
	nextCart    int
}

// Option configures a Server.
type Option func(*Server)

// Durable makes writes persist and missing entities answer 404.
func Durable() Option {
	return func(s *Server) { s.durable = true }
}

// WithProducts replaces the seed catalog.
func WithProducts(products []model.Product) Option {
	return func(s *Server) { s.products = products }
}

// WithCarts replaces the seed carts.
func WithCarts(carts []model.Cart) Option {
	return func(s *Server) { s.carts = carts }
}

// New creates a server with the seed catalog and demo account.
func New(opts ...Option) *Server {
	s := &Server{
		products: SeedProducts(),
		carts:    SeedCarts(),
		accounts: map[string]string{"mor_2314": "83r5^_"},
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, p := range s.products {
		if p.ID >= s.nextProduct {
			s.nextProduct = p.ID + 1
		}
	}
	for _, c := range s.carts {
		if c.ID >= s.nextCart {
			s.nextCart = c.ID + 1
		}
	}
	return s
}

// Handler returns the HTTP surface consumed by the suite.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", s.login)
	mux.HandleFunc("GET /products", s.listProducts)
	mux.HandleFunc("GET /products/{id}", s.getProduct)
	mux.HandleFunc("POST /products", s.createProduct)
	mux.HandleFunc("PUT /products/{id}", s.updateProduct)
	mux.HandleFunc("DELETE /products/{id}", s.deleteProduct)
	mux.HandleFunc("GET /carts", s.listCarts)
	mux.HandleFunc("GET /carts/{id}", s.getCart)
	mux.HandleFunc("POST /carts", s.createCart)
	mux.HandleFunc("PUT /carts/{id}", s.updateCart)
	mux.HandleFunc("DELETE /carts/{id}", s.deleteCart)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeAbsent mimics the public backend's answer for an unknown
// identifier: 200 with a null body, not a 404.
func writeAbsent(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("null"))
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	return id, err == nil
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if pw, ok := s.accounts[creds.Username]; !ok || pw != creds.Password {
		http.Error(w, "username or password is incorrect", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, model.LoginResult{
		Token: "eyJhbGciOiJIUzI1NiJ9.fakeshop-session-token",
	})
}

func (s *Server) listProducts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.products)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		for _, p := range s.products {
			if p.ID == id {
				writeJSON(w, http.StatusOK, p)
				return
			}
		}
	}
	if s.durable {
		http.NotFound(w, r)
		return
	}
	writeAbsent(w)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var p model.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.durable {
		p.ID = s.nextProduct
		s.nextProduct++
		s.products = append(s.products, p)
	} else {
		// Acknowledged, echoed, never stored. Every create gets the same ID.
		p.ID = quirkProductID
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var p model.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	p.ID = id
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.durable {
		for i := range s.products {
			if s.products[i].ID == id {
				s.products[i] = p
				writeJSON(w, http.StatusOK, p)
				return
			}
		}
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if ok && p.ID == id {
			if s.durable {
				s.products = append(s.products[:i], s.products[i+1:]...)
			}
			// Both modes answer with the deleted entity, like the public
			// instance; only durable mode actually removes it.
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	if s.durable {
		http.NotFound(w, r)
		return
	}
	writeAbsent(w)
}

func (s *Server) listCarts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.carts)
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		for _, c := range s.carts {
			if c.ID == id {
				writeJSON(w, http.StatusOK, c)
				return
			}
		}
	}
	if s.durable {
		http.NotFound(w, r)
		return
	}
	writeAbsent(w)
}

func (s *Server) createCart(w http.ResponseWriter, r *http.Request) {
	var c model.Cart
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if c.Products == nil {
		c.Products = []model.CartItem{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.durable {
		c.ID = s.nextCart
		s.nextCart++
		s.carts = append(s.carts, c)
	} else {
		c.ID = quirkCartID
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	var c model.Cart
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	c.ID = id
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.durable {
		for i := range s.carts {
			if s.carts[i].ID == id {
				s.carts[i] = c
				writeJSON(w, http.StatusOK, c)
				return
			}
		}
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.carts {
		if ok && c.ID == id {
			if s.durable {
				s.carts = append(s.carts[:i], s.carts[i+1:]...)
			}
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	if s.durable {
		http.NotFound(w, r)
		return
	}
	writeAbsent(w)
}
