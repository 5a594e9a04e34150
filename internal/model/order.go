package model

import "time"

// CartItem is one line of a user's server-side cart. The cart is keyed by
// the session identity's email; the gateway never persists a second copy of
// "who is logged in" for it.
type CartItem struct {
	ID        string  `json:"_id,omitempty"`
	Email     string  `json:"email"`
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
}

// Order is a checked-out cart with shipping details.
type Order struct {
	ID        string     `json:"_id"`
	Email     string     `json:"email"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	Status    string     `json:"status"`
	PaymentID string     `json:"paymentId,omitempty"`
	PlacedAt  time.Time  `json:"placedAt"`
}

// Payment is a recorded settlement against an order or application.
type Payment struct {
	ID            string    `json:"_id"`
	Email         string    `json:"email"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	TransactionID string    `json:"transactionId"`
	ReferenceID   string    `json:"referenceId"`
	PaidAt        time.Time `json:"paidAt"`
}
