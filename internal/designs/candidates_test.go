package designs

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCandidateStore(t *testing.T) (*CandidateStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCandidateStore(client), mr
}

func TestCandidateStore_PutAndGet(t *testing.T) {
	store, _ := setupCandidateStore(t)
	ctx := context.Background()

	batch := fallbackDesigns(sampleSubmission())
	sessionID, err := store.Put(ctx, "user-1", batch)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	got, err := store.Get(ctx, "user-1", sessionID, 1)
	require.NoError(t, err)
	assert.Equal(t, batch[1].DesignName, got.DesignName)
	assert.NotNil(t, got.Features)
}

func TestCandidateStore_ScopedToUser(t *testing.T) {
	store, _ := setupCandidateStore(t)
	ctx := context.Background()

	sessionID, err := store.Put(ctx, "user-1", fallbackDesigns(sampleSubmission()))
	require.NoError(t, err)

	_, err = store.Get(ctx, "someone-else", sessionID, 0)
	assert.ErrorIs(t, err, ErrCandidatesExpired)
}

func TestCandidateStore_UnknownSession(t *testing.T) {
	store, _ := setupCandidateStore(t)

	_, err := store.Get(context.Background(), "user-1", "no-such-session", 0)
	assert.ErrorIs(t, err, ErrCandidatesExpired)
}

func TestCandidateStore_ExpiredSession(t *testing.T) {
	store, mr := setupCandidateStore(t)
	ctx := context.Background()

	sessionID, err := store.Put(ctx, "user-1", fallbackDesigns(sampleSubmission()))
	require.NoError(t, err)

	mr.FastForward(candidateTTL + 1)

	_, err = store.Get(ctx, "user-1", sessionID, 0)
	assert.ErrorIs(t, err, ErrCandidatesExpired)
}

func TestCandidateStore_IndexOutOfRange(t *testing.T) {
	store, _ := setupCandidateStore(t)
	ctx := context.Background()

	sessionID, err := store.Put(ctx, "user-1", fallbackDesigns(sampleSubmission()))
	require.NoError(t, err)

	_, err = store.Get(ctx, "user-1", sessionID, 3)
	assert.ErrorContains(t, err, "out of range")

	_, err = store.Get(ctx, "user-1", sessionID, -1)
	assert.ErrorContains(t, err, "out of range")
}
