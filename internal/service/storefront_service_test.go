package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"mini-storefront/internal/catalog"
	"mini-storefront/internal/model"
	"mini-storefront/internal/store"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore is a mock implementation of store.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Read(ctx context.Context, key string) (model.Cart, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Cart), args.Error(1)
}

func (m *MockStore) Load(ctx context.Context, key string) model.Cart {
	args := m.Called(ctx, key)
	return args.Get(0).(model.Cart)
}

func (m *MockStore) Save(ctx context.Context, key string, c model.Cart) {
	m.Called(ctx, key, c)
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(catalog.DefaultProducts())
	require.NoError(t, err)
	return cat
}

func lookup(t *testing.T, cat *catalog.Catalog, id string) model.Product {
	t.Helper()
	p, ok := cat.Lookup(id)
	require.True(t, ok)
	return p
}

func TestStorefrontService_Browse(t *testing.T) {
	svc := NewStorefrontService(newTestCatalog(t), new(MockStore), zerolog.Nop())

	tests := []struct {
		name     string
		criteria model.FilterCriteria
		expected []string
	}{
		{
			name:     "Default criteria returns everything",
			criteria: svc.DefaultCriteria(),
			expected: []string{"p1", "p2", "p3", "p4", "p5", "p6"},
		},
		{
			name: "Fruits under two with search",
			criteria: model.FilterCriteria{
				SearchTerm: "or",
				MinPrice:   decimal.Zero,
				MaxPrice:   decimal.NewFromInt(2),
				Category:   "fruits",
			},
			expected: []string{"p1"},
		},
		{
			name: "Min above max returns nothing",
			criteria: model.FilterCriteria{
				MinPrice: decimal.NewFromInt(100),
				MaxPrice: decimal.NewFromInt(10),
			},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := svc.Browse(tt.criteria)

			ids := make([]string, 0, len(products))
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestStorefrontService_Categories(t *testing.T) {
	svc := NewStorefrontService(newTestCatalog(t), new(MockStore), zerolog.Nop())

	categories := svc.Categories()
	assert.Equal(t, []string{"fruits", "electronics"}, categories)

	categories[0] = "changed"
	assert.Equal(t, "fruits", svc.Categories()[0])
	assert.Len(t, svc.Products(), 6)
}

func TestStorefrontService_AddAddRemove(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)
	apple := lookup(t, cat, "p2")

	mockStore := new(MockStore)
	mockStore.On("Read", mock.Anything, "cart").Return(model.EmptyCart(), nil).Once()
	mockStore.On("Read", mock.Anything, "cart").Return(model.Cart{model.NewCartLine(apple, 1)}, nil).Once()
	mockStore.On("Read", mock.Anything, "cart").Return(model.Cart{model.NewCartLine(apple, 2)}, nil).Once()
	mockStore.On("Save", mock.Anything, "cart", model.Cart{model.NewCartLine(apple, 1)}).Once()
	mockStore.On("Save", mock.Anything, "cart", model.Cart{model.NewCartLine(apple, 2)}).Once()
	mockStore.On("Save", mock.Anything, "cart", model.Cart{}).Once()

	svc := NewStorefrontService(cat, mockStore, zerolog.Nop())

	c, err := svc.AddToCart(ctx, "cart", "p2")
	require.NoError(t, err)
	assert.Len(t, c, 1)

	c, err = svc.AddToCart(ctx, "cart", "p2")
	require.NoError(t, err)
	if diff := cmp.Diff(model.Cart{model.NewCartLine(apple, 2)}, c); diff != "" {
		t.Errorf("cart mismatch (-want +got):\n%s", diff)
	}

	c, err = svc.RemoveFromCart(ctx, "cart", "p2")
	require.NoError(t, err)
	assert.Empty(t, c)
	assert.NotNil(t, c)

	mockStore.AssertExpectations(t)
}

func TestStorefrontService_Cart(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)
	stored := model.Cart{model.NewCartLine(lookup(t, cat, "p4"), 3)}

	mockStore := new(MockStore)
	mockStore.On("Load", mock.Anything, "cart:abc").Return(stored).Once()

	svc := NewStorefrontService(cat, mockStore, zerolog.Nop())

	if diff := cmp.Diff(stored, svc.Cart(ctx, "cart:abc")); diff != "" {
		t.Errorf("cart mismatch (-want +got):\n%s", diff)
	}
	mockStore.AssertExpectations(t)
}

func TestStorefrontService_NoOps(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		action      func(svc StorefrontService) (model.Cart, error)
		expectError error
	}{
		{
			name: "Add unknown product",
			action: func(svc StorefrontService) (model.Cart, error) {
				return svc.AddToCart(ctx, "cart", "nope")
			},
		},
		{
			name: "Remove product not in cart",
			action: func(svc StorefrontService) (model.Cart, error) {
				return svc.RemoveFromCart(ctx, "cart", "p1")
			},
		},
		{
			name: "Add with empty product ID",
			action: func(svc StorefrontService) (model.Cart, error) {
				return svc.AddToCart(ctx, "cart", "")
			},
			expectError: model.ErrMissingProductID,
		},
		{
			name: "Remove with empty product ID",
			action: func(svc StorefrontService) (model.Cart, error) {
				return svc.RemoveFromCart(ctx, "cart", "")
			},
			expectError: model.ErrMissingProductID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockStore)
			mockStore.On("Read", mock.Anything, "cart").Return(model.EmptyCart(), nil).Maybe()

			svc := NewStorefrontService(newTestCatalog(t), mockStore, zerolog.Nop())

			c, err := tt.action(svc)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, c)
			} else {
				require.NoError(t, err)
				assert.Empty(t, c)
			}
			mockStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestStorefrontService_HooksRunAfterPersist(t *testing.T) {
	ctx := context.Background()

	var order []string
	mockStore := new(MockStore)
	mockStore.On("Read", mock.Anything, "cart").Return(model.EmptyCart(), nil)
	mockStore.On("Save", mock.Anything, "cart", mock.AnythingOfType("model.Cart")).
		Run(func(args mock.Arguments) { order = append(order, "save") })

	hook := func(_ context.Context, key string, c model.Cart) {
		order = append(order, "hook:"+key)
		assert.Len(t, c, 1)
	}

	svc := NewStorefrontService(newTestCatalog(t), mockStore, zerolog.Nop(), hook)

	_, err := svc.AddToCart(ctx, "cart", "p1")
	require.NoError(t, err)

	assert.Equal(t, []string{"save", "hook:cart"}, order)
}

func TestStorefrontService_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	st := store.New(store.NewMemoryBackend(), zerolog.Nop())
	svc := NewStorefrontService(newTestCatalog(t), st, zerolog.Nop())

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddToCart(ctx, "cart", "p3")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c := svc.Cart(ctx, "cart")
	require.Len(t, c, 1)
	assert.Equal(t, workers, c[0].Quantity)
	assert.Empty(t, svc.(*storefrontService).locks)
}

func TestStorefrontService_CancelledContextKeepsStoredCart(t *testing.T) {
	cat := newTestCatalog(t)
	st := store.New(store.NewMemoryBackend(), zerolog.Nop())
	st.Save(context.Background(), "cart:abc", model.Cart{model.NewCartLine(lookup(t, cat, "p4"), 3)})

	svc := NewStorefrontService(cat, st, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := svc.Cart(ctx, "cart:abc")
	require.Len(t, c, 1)
	assert.Equal(t, 3, c[0].Quantity)

	_, err := svc.AddToCart(ctx, "cart:abc", "p1")
	require.NoError(t, err)

	want := model.Cart{
		model.NewCartLine(lookup(t, cat, "p4"), 3),
		model.NewCartLine(lookup(t, cat, "p1"), 1),
	}
	if diff := cmp.Diff(want, st.Load(context.Background(), "cart:abc")); diff != "" {
		t.Errorf("stored cart mismatch (-want +got):\n%s", diff)
	}
}

// flakyBackend fails the first Get, then serves from an in-memory backend.
type flakyBackend struct {
	store.Backend
	failed bool
}

func (b *flakyBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if !b.failed {
		b.failed = true
		return nil, errors.New("connection reset")
	}
	return b.Backend.Get(ctx, key)
}

func TestStorefrontService_ReadFailureAbortsMutation(t *testing.T) {
	ctx := context.Background()
	cat := newTestCatalog(t)
	stored := model.Cart{model.NewCartLine(lookup(t, cat, "p4"), 3)}

	tests := []struct {
		name   string
		action func(svc StorefrontService) (model.Cart, error)
	}{
		{
			name: "Add",
			action: func(svc StorefrontService) (model.Cart, error) {
				return svc.AddToCart(ctx, "cart", "p1")
			},
		},
		{
			name: "Remove",
			action: func(svc StorefrontService) (model.Cart, error) {
				return svc.RemoveFromCart(ctx, "cart", "p4")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &flakyBackend{Backend: store.NewMemoryBackend()}
			st := store.New(backend, zerolog.Nop())
			st.Save(ctx, "cart", stored)

			svc := NewStorefrontService(cat, st, zerolog.Nop())

			c, err := tt.action(svc)
			assert.ErrorIs(t, err, model.ErrCartUnavailable)
			assert.Nil(t, c)

			if diff := cmp.Diff(stored, st.Load(ctx, "cart")); diff != "" {
				t.Errorf("stored cart changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStorefrontService_LocksAreReleased(t *testing.T) {
	ctx := context.Background()
	st := store.New(store.NewMemoryBackend(), zerolog.Nop())
	svc := NewStorefrontService(newTestCatalog(t), st, zerolog.Nop()).(*storefrontService)

	for i := 0; i < 10000; i++ {
		key := store.SessionKey(strconv.Itoa(i))
		_, err := svc.AddToCart(ctx, key, "p1")
		require.NoError(t, err)
		_ = svc.Cart(ctx, key)
	}

	assert.Empty(t, svc.locks)
}
