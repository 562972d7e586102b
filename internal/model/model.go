// Package model declares the wire records exchanged with the storefront API.
//
// All records are transient: fetched or constructed at the start of a
// scenario and discarded at its end. Nothing here is persisted locally.
// JSON tags match the remote wire format exactly.
package model

// Product is a catalog entry as returned by /products.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`

	// Stock is synthesized locally; the backend does not report inventory.
	// It must never appear in a write payload, hence the json:"-" tag.
	Stock int `json:"-"`
}

// Rating is the customer rating block nested in Product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// EntityID returns the product's remote identifier.
func (p Product) EntityID() int { return p.ID }

// IsZero reports whether p is a default-shaped value, the not-found signal
// produced when the backend returns an absent or unparseable body.
func (p Product) IsZero() bool {
	return p.ID == 0 && p.Title == "" && p.Category == ""
}

// Cart is an order draft as returned by /carts.
//
// Line items are not validated by the backend against real products, so a
// ProductID here may reference nothing at all.
type Cart struct {
	ID       int        `json:"id"`
	UserID   int        `json:"userId"`
	Date     string     `json:"date,omitempty"`
	Products []CartItem `json:"products"`
	V        int        `json:"__v,omitempty"`
}

// CartItem is a single cart line. Quantity 0 is a valid placeholder line
// used by negative-path scenarios.
type CartItem struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// EntityID returns the cart's remote identifier.
func (c Cart) EntityID() int { return c.ID }

// IsZero reports whether c is a default-shaped value.
func (c Cart) IsZero() bool {
	return c.ID == 0 && c.UserID == 0 && len(c.Products) == 0
}

// User is an account record as returned by /users.
type User struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    string  `json:"email"`
	Name     Name    `json:"name"`
	Address  Address `json:"address"`
	Phone    string  `json:"phone"`
	V        int     `json:"__v,omitempty"`
}

// Name is the split name block nested in User.
type Name struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// Address is the postal address block nested in User.
type Address struct {
	City        string      `json:"city"`
	Street      string      `json:"street"`
	Number      int         `json:"number"`
	Zipcode     string      `json:"zipcode"`
	Geolocation Geolocation `json:"geolocation"`
}

// Geolocation holds the coordinates the backend ships as strings.
type Geolocation struct {
	Lat  string `json:"lat"`
	Long string `json:"long"`
}

// Credentials is the login request payload for /auth/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the login response. The token is opaque: the suite checks
// it for non-emptiness and never attaches it to later requests.
type LoginResult struct {
	Token string `json:"token"`
}
