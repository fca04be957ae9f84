package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	defer store.Close()

	sess, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, sess)

	require.NoError(t, store.Put(ctx, 42, &Session{State: StateAwaitingName, Language: "en"}))

	sess, err = store.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, StateAwaitingName, sess.State)
	assert.Equal(t, "en", sess.Language)

	require.NoError(t, store.Delete(ctx, 42))

	sess, err = store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	defer store.Close()

	require.NoError(t, store.Put(ctx, 42, &Session{State: StateAwaitingLanguage}))

	first, err := store.Get(ctx, 42)
	require.NoError(t, err)
	first.FullName = "mutated"

	second, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, second.FullName)
}

func TestMemoryStore_ExpiresAbandonedSessions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(20 * time.Millisecond)
	defer store.Close()

	require.NoError(t, store.Put(ctx, 42, &Session{State: StateAwaitingContact}))

	time.Sleep(40 * time.Millisecond)

	sess, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, sess)
}
