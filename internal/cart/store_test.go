package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/styleshoehub/storefront-gateway/internal/model"
)

// fakeBackend counts every network-shaped call and keeps a server-side
// cart the way the real backend does.
type fakeBackend struct {
	items []model.CartItem
	calls int
}

func (b *fakeBackend) Items(ctx context.Context, email string) ([]model.CartItem, error) {
	b.calls++
	out := make([]model.CartItem, len(b.items))
	copy(out, b.items)
	return out, nil
}

func (b *fakeBackend) Add(ctx context.Context, item model.CartItem) error {
	b.calls++
	b.items = append(b.items, item)
	return nil
}

func (b *fakeBackend) Remove(ctx context.Context, itemID string) error {
	b.calls++
	if len(b.items) > 0 {
		b.items = b.items[1:]
	}
	return nil
}

func (b *fakeBackend) Clear(ctx context.Context, email string) error {
	b.calls++
	b.items = nil
	return nil
}

var shoe = model.Policy{
	ID:     "p1",
	Title:  "Court Classic",
	Price:  89.5,
	Image:  "https://img.example/p1.png",
	Sizes:  []string{"40", "41", "42"},
	Colors: []string{"black", "white"},
}

func TestAddRejectsIncompleteSelectionWithoutNetwork(t *testing.T) {
	customer := model.Identity{Email: "c@shop.bd"}
	cases := []struct {
		name     string
		size     string
		color    string
		quantity int
		want     error
	}{
		{"missing size", "", "black", 1, ErrInvalidSelection},
		{"missing color", "41", "", 1, ErrInvalidSelection},
		{"blank size", "   ", "black", 1, ErrInvalidSelection},
		{"zero quantity", "41", "black", 0, ErrEmptyQuantity},
		{"negative quantity", "41", "black", -2, ErrEmptyQuantity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &fakeBackend{}
			s := NewStore(b)
			_, err := s.Add(context.Background(), customer, shoe, tc.size, tc.color, tc.quantity)
			require.ErrorIs(t, err, tc.want)
			assert.Zero(t, b.calls, "an invalid selection must make zero backend calls")
		})
	}
}

func TestAddMirrorsServerState(t *testing.T) {
	b := &fakeBackend{}
	s := NewStore(b)
	customer := model.Identity{Email: "c@shop.bd"}

	items, err := s.Add(context.Background(), customer, shoe, "41", "black", 2)
	require.NoError(t, err)
	require.Len(t, items, 1)

	got := items[0]
	assert.Equal(t, "c@shop.bd", got.Email)
	assert.Equal(t, "p1", got.ProductID)
	assert.Equal(t, "Court Classic", got.Title)
	assert.Equal(t, 89.5, got.Price)
	assert.Equal(t, "41", got.Size)
	assert.Equal(t, "black", got.Color)
	assert.Equal(t, 2, got.Quantity)

	// One write plus one refetch: the returned list is the server's, not a
	// local append.
	assert.Equal(t, 2, b.calls)
}

func TestRemoveAndClearRefetch(t *testing.T) {
	b := &fakeBackend{}
	s := NewStore(b)
	customer := model.Identity{Email: "c@shop.bd"}
	ctx := context.Background()

	_, err := s.Add(ctx, customer, shoe, "41", "black", 1)
	require.NoError(t, err)
	_, err = s.Add(ctx, customer, shoe, "42", "white", 1)
	require.NoError(t, err)

	items, err := s.Remove(ctx, customer, "whatever")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	items, err = s.Clear(ctx, customer)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartRequiresIdentity(t *testing.T) {
	b := &fakeBackend{}
	s := NewStore(b)
	ctx := context.Background()
	anon := model.Identity{}

	_, err := s.Items(ctx, anon)
	assert.ErrorIs(t, err, model.ErrNoIdentity)
	_, err = s.Add(ctx, anon, shoe, "41", "black", 1)
	assert.ErrorIs(t, err, model.ErrNoIdentity)
	_, err = s.Remove(ctx, anon, "x")
	assert.ErrorIs(t, err, model.ErrNoIdentity)
	_, err = s.Clear(ctx, anon)
	assert.ErrorIs(t, err, model.ErrNoIdentity)
	assert.Zero(t, b.calls)
}
