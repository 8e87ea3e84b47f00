package store

import (
	"context"
	"path/filepath"
	"testing"

	"mini-storefront/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T, path string) Backend {
	t.Helper()

	backend, err := NewSQLiteBackend(context.Background(), path, zerolog.Nop())
	require.NoError(t, err)
	return backend
}

func TestSQLiteBackend_GetPut(t *testing.T) {
	ctx := context.Background()
	backend := openSQLite(t, filepath.Join(t.TempDir(), "carts.db"))
	defer backend.Close()

	_, err := backend.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, backend.Put(ctx, "k", []byte("first")))
	require.NoError(t, backend.Put(ctx, "k", []byte("second")))

	value, err := backend.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), value)
}

func TestSQLiteBackend_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "carts.db")
	want := sampleCart()

	first := openSQLite(t, path)
	New(first, zerolog.Nop()).Save(ctx, DefaultKey, want)
	require.NoError(t, first.Close())

	second := openSQLite(t, path)
	defer second.Close()

	got := New(second, zerolog.Nop()).Load(ctx, DefaultKey)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reopened cart mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteBackend_EmptyCartRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := openSQLite(t, filepath.Join(t.TempDir(), "carts.db"))
	defer backend.Close()

	s := New(backend, zerolog.Nop())
	s.Save(ctx, DefaultKey, sampleCart())
	s.Save(ctx, DefaultKey, model.EmptyCart())

	got := s.Load(ctx, DefaultKey)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNewSQLiteBackend_InvalidPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "carts.db")

	backend, err := NewSQLiteBackend(context.Background(), path, zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, backend)
}
