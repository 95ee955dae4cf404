package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_CreateGetDelete(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	tok, err := NewToken()
	require.NoError(t, err)
	s := Session{
		Token:     tok,
		MemberID:  uuid.Must(uuid.NewV4()),
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
	require.NoError(t, store.Create(ctx, s))

	got, err := store.Get(ctx, tok)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, s.MemberID, got.MemberID)

	require.NoError(t, store.Delete(ctx, tok))

	// a flushed token must never resolve again
	got, err = store.Get(ctx, tok)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRedisStore_UnknownTokenIsNotAnError(t *testing.T) {
	store, _ := newStore(t)

	got, err := store.Get(context.Background(), "garbage-token")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRedisStore_ExpiryEvicts(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	tok, err := NewToken()
	require.NoError(t, err)
	s := Session{
		Token:     tok,
		MemberID:  uuid.Must(uuid.NewV4()),
		ExpiresAt: time.Now().Add(time.Minute),
	}
	require.NoError(t, store.Create(ctx, s))

	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, tok)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRedisStore_CreateRejectsBadSessions(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	err := store.Create(ctx, Session{Token: "", MemberID: uuid.Must(uuid.NewV4()), ExpiresAt: time.Now().Add(time.Hour)})
	require.Error(t, err)

	err = store.Create(ctx, Session{Token: "t", MemberID: uuid.Must(uuid.NewV4()), ExpiresAt: time.Now().Add(-time.Hour)})
	require.Error(t, err)
}

func TestNewToken_Unique(t *testing.T) {
	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
	require.GreaterOrEqual(t, len(a), 43) // 32 bytes base64url, unpadded
}
