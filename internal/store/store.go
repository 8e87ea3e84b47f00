// Package store persists carts in named key-value slots.
//
// Load and Save on the Store returned by New never surface storage failures: Load
// falls back to an empty cart and Save logs and drops write errors. Read reports
// backend failures for callers that must not overwrite a cart they could not see.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mini-storefront/internal/cart"
	"mini-storefront/internal/model"

	"github.com/rs/zerolog"
)

// DefaultKey is the slot used when a single cart is stored, as in the terminal UI.
const DefaultKey = "cart"

// ErrNotFound is returned by a Backend when the key has never been written.
var ErrNotFound = errors.New("store: key not found")

// SessionKey returns the slot key for a browser session.
func SessionKey(sessionID string) string {
	return DefaultKey + ":" + sessionID
}

// Store loads and saves carts by key.
type Store interface {
	// Read returns the cart stored under key. A missing or malformed slot reads as
	// an empty cart; a backend failure is returned as an error.
	Read(ctx context.Context, key string) (model.Cart, error)

	// Load returns the cart stored under key, or an empty cart when the slot is
	// missing, unreadable or malformed.
	Load(ctx context.Context, key string) model.Cart

	// Save writes cart under key. Failures are logged, never returned.
	Save(ctx context.Context, key string, c model.Cart)
}

// Backend is raw key-value storage for serialized carts.
type Backend interface {
	// Get returns the bytes stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the bytes stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Close releases resources held by the backend.
	Close() error
}

// cartStore implements Store over a Backend using the JSON cart encoding.
type cartStore struct {
	backend Backend
	logger  zerolog.Logger
}

// New creates a fail-open cart store on top of backend.
func New(backend Backend, logger zerolog.Logger) Store {
	return &cartStore{
		backend: backend,
		logger:  logger.With().Str("component", "cart-store").Logger(),
	}
}

// Read returns the cart stored under key.
func (s *cartStore) Read(ctx context.Context, key string) (model.Cart, error) {
	data, err := s.backend.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		s.logger.Debug().Str("key", key).Msg("no stored cart, starting empty")
		return model.EmptyCart(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart %q: %w", key, err)
	}

	c, err := Decode(data)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("stored cart is malformed, starting empty")
		return model.EmptyCart(), nil
	}

	s.logger.Debug().Str("key", key).Int("lines", len(c)).Msg("cart loaded")

	return c, nil
}

// Load returns the cart stored under key, or an empty cart when it cannot be read.
func (s *cartStore) Load(ctx context.Context, key string) model.Cart {
	c, err := s.Read(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to read stored cart, starting empty")
		return model.EmptyCart()
	}
	return c
}

// Save writes cart under key.
func (s *cartStore) Save(ctx context.Context, key string, c model.Cart) {
	data, err := Encode(c)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to encode cart")
		return
	}

	if err := s.backend.Put(ctx, key, data); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to persist cart")
		return
	}

	s.logger.Debug().Str("key", key).Int("lines", len(c)).Msg("cart saved")
}

// Encode serializes a cart as a JSON array of cart lines.
func Encode(c model.Cart) ([]byte, error) {
	if c == nil {
		c = model.EmptyCart()
	}
	return json.Marshal(c)
}

// Decode parses a serialized cart. Lines that break the cart invariants are dropped.
func Decode(data []byte) (model.Cart, error) {
	var c model.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return cart.Normalize(c), nil
}
