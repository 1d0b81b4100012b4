package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	related := int64(7)
	id, err := store.Create(context.Background(), Identity{UserID: 2, Username: "alice", Role: "student", RelatedID: &related})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	identity, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
	require.NotNil(t, identity.RelatedID)
	assert.Equal(t, int64(7), *identity.RelatedID)

	require.NoError(t, store.Delete(context.Background(), id))
	_, err = store.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreUnknownID(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(-time.Second)

	id, err := store.Create(context.Background(), Identity{UserID: 1, Username: "admin", Role: "admin"})
	require.NoError(t, err)

	_, err = store.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}
