package service

import (
	"context"
	"fmt"
	"sync"

	"mini-storefront/internal/cart"
	"mini-storefront/internal/catalog"
	"mini-storefront/internal/filter"
	"mini-storefront/internal/model"
	"mini-storefront/internal/store"

	"github.com/rs/zerolog"
)

// keyLock serializes mutations of one cart key. refs counts the callers holding
// or waiting for mu; the entry is dropped when it reaches zero.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

// storefrontService implements StorefrontService.
type storefrontService struct {
	catalog    *catalog.Catalog
	categories []string
	store      store.Store
	hooks      []MutationHook
	logger     zerolog.Logger

	mu    sync.Mutex
	locks map[string]*keyLock
}

// NewStorefrontService creates a storefront service over an immutable catalogue.
// Carts are read from st on every call and saved through st after every change,
// before any extra hooks run.
func NewStorefrontService(cat *catalog.Catalog, st store.Store, logger zerolog.Logger, hooks ...MutationHook) StorefrontService {
	all := make([]MutationHook, 0, len(hooks)+1)
	all = append(all, PersistHook(st))
	all = append(all, hooks...)

	return &storefrontService{
		catalog:    cat,
		categories: filter.Categories(cat.Products()),
		store:      st,
		hooks:      all,
		logger:     logger.With().Str("service", "storefront").Logger(),
		locks:      make(map[string]*keyLock),
	}
}

// PersistHook returns a hook that saves every new cart value to st.
func PersistHook(st store.Store) MutationHook {
	return func(ctx context.Context, key string, c model.Cart) {
		st.Save(ctx, key, c)
	}
}

// Products returns the whole catalogue in source order.
func (s *storefrontService) Products() []model.Product {
	return s.catalog.Products()
}

// Categories returns the distinct catalogue categories.
func (s *storefrontService) Categories() []string {
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// Browse returns the catalogue products matching criteria.
func (s *storefrontService) Browse(criteria model.FilterCriteria) []model.Product {
	products := filter.Apply(s.catalog.Products(), criteria)

	s.logger.Debug().
		Str("search", criteria.SearchTerm).
		Str("category", criteria.Category).
		Int("count", len(products)).
		Msg("catalogue filtered")

	return products
}

// DefaultCriteria returns the criteria a fresh view starts with.
func (s *storefrontService) DefaultCriteria() model.FilterCriteria {
	return model.DefaultFilterCriteria()
}

// Cart returns the cart stored under key. An unreadable cart reads as empty.
func (s *storefrontService) Cart(ctx context.Context, key string) model.Cart {
	return s.store.Load(context.WithoutCancel(ctx), key)
}

// AddToCart adds one unit of productID. Unknown products leave the cart unchanged.
func (s *storefrontService) AddToCart(ctx context.Context, key, productID string) (model.Cart, error) {
	if productID == "" {
		return nil, model.ErrMissingProductID
	}

	return s.mutate(ctx, key, productID, func(c model.Cart) model.Cart {
		p, ok := s.catalog.Lookup(productID)
		if !ok {
			s.logger.Debug().Str("product_id", productID).Msg("ignoring add of unknown product")
			return nil
		}
		return cart.Add(c, p)
	})
}

// RemoveFromCart removes productID's line. Absent products leave the cart unchanged.
func (s *storefrontService) RemoveFromCart(ctx context.Context, key, productID string) (model.Cart, error) {
	if productID == "" {
		return nil, model.ErrMissingProductID
	}

	return s.mutate(ctx, key, productID, func(c model.Cart) model.Cart {
		if _, ok := cart.Find(c, productID); !ok {
			s.logger.Debug().Str("product_id", productID).Msg("ignoring removal of product not in cart")
			return nil
		}
		return cart.Remove(c, productID)
	})
}

// mutate applies reduce to the stored cart under key while holding the key lock.
// A nil result from reduce means the action was a no-op and no hooks run.
// Store access ignores ctx cancellation; a failed read aborts the change.
func (s *storefrontService) mutate(ctx context.Context, key, productID string, reduce func(model.Cart) model.Cart) (model.Cart, error) {
	unlock := s.lock(key)
	defer unlock()

	ctx = context.WithoutCancel(ctx)

	current, err := s.store.Read(ctx, key)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Str("product_id", productID).Msg("cart unavailable, change dropped")
		return nil, fmt.Errorf("%w: %w", model.ErrCartUnavailable, err)
	}

	next := reduce(current)
	if next == nil {
		return current, nil
	}

	for _, hook := range s.hooks {
		hook(ctx, key, copyCart(next))
	}

	s.logger.Info().
		Str("key", key).
		Str("product_id", productID).
		Int("lines", len(next)).
		Int("units", cart.Count(next)).
		Msg("cart updated")

	return next, nil
}

// lock acquires the mutex for key and returns its release func.
func (s *storefrontService) lock(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &keyLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, key)
		}
		s.mu.Unlock()
	}
}

func copyCart(c model.Cart) model.Cart {
	out := make(model.Cart, len(c))
	copy(out, c)
	return out
}
