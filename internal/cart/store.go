// Package cart mirrors the server-side cart for the signed-in user. The
// backend owns the cart; after every mutation the full list is refetched
// rather than patched locally, so the mirror always equals the most recent
// server response.
package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/styleshoehub/storefront-gateway/internal/model"
)

// ErrInvalidSelection rejects an add with a missing size or color before
// any network call is made.
var ErrInvalidSelection = errors.New("size and color must be selected")

// ErrEmptyQuantity rejects a non-positive quantity the same way.
var ErrEmptyQuantity = errors.New("quantity must be at least 1")

// ValidateSelection checks a prospective line item. Handlers call it before
// looking anything up so a bad selection costs no upstream request.
func ValidateSelection(size, color string, quantity int) error {
	if strings.TrimSpace(size) == "" || strings.TrimSpace(color) == "" {
		return ErrInvalidSelection
	}
	if quantity < 1 {
		return ErrEmptyQuantity
	}
	return nil
}

// Backend is the transport the store writes through; upstream.CartAPI in
// production, a counter fake in tests.
type Backend interface {
	Items(ctx context.Context, email string) ([]model.CartItem, error)
	Add(ctx context.Context, item model.CartItem) error
	Remove(ctx context.Context, itemID string) error
	Clear(ctx context.Context, email string) error
}

// Store applies selection validation and mirror semantics. The identity is
// passed in from the session context by the handler; there is no second,
// separately stored notion of who is logged in.
type Store struct {
	backend Backend
}

func NewStore(b Backend) *Store { return &Store{backend: b} }

// Items returns the current server-side cart.
func (s *Store) Items(ctx context.Context, id model.Identity) ([]model.CartItem, error) {
	if id.Email == "" {
		return nil, model.ErrNoIdentity
	}
	return s.backend.Items(ctx, id.Email)
}

// Add validates the selection, posts the line item and returns the
// refetched full list. An incomplete selection never reaches the network.
func (s *Store) Add(ctx context.Context, id model.Identity, product model.Policy, size, color string, quantity int) ([]model.CartItem, error) {
	if id.Email == "" {
		return nil, model.ErrNoIdentity
	}
	if err := ValidateSelection(size, color, quantity); err != nil {
		return nil, err
	}
	item := model.CartItem{
		Email:     id.Email,
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price,
		Image:     product.Image,
		Size:      size,
		Color:     color,
		Quantity:  quantity,
	}
	if err := s.backend.Add(ctx, item); err != nil {
		return nil, err
	}
	return s.backend.Items(ctx, id.Email)
}

// Remove deletes one line and returns the refetched list.
func (s *Store) Remove(ctx context.Context, id model.Identity, itemID string) ([]model.CartItem, error) {
	if id.Email == "" {
		return nil, model.ErrNoIdentity
	}
	if err := s.backend.Remove(ctx, itemID); err != nil {
		return nil, err
	}
	return s.backend.Items(ctx, id.Email)
}

// Clear empties the cart and returns the refetched (empty) list.
func (s *Store) Clear(ctx context.Context, id model.Identity) ([]model.CartItem, error) {
	if id.Email == "" {
		return nil, model.ErrNoIdentity
	}
	if err := s.backend.Clear(ctx, id.Email); err != nil {
		return nil, err
	}
	return s.backend.Items(ctx, id.Email)
}
