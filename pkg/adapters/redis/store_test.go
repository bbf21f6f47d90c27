package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canopyhq/canopy/pkg/adapters/redis"
	"github.com/canopyhq/canopy/pkg/domain"
	"github.com/canopyhq/canopy/pkg/ports"
)

func newTestStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redis.NewFromClient(client, opts...), mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newTestStore(t)
	ports.RunConversationStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	store, mr := newTestStore(t, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	sessionID := "session-ttl"

	require.NoError(t, store.SaveAnswer(ctx, sessionID, "welcome", domain.TextAnswer("hi"), time.Now()))
	require.NoError(t, store.SaveState(ctx, sessionID, domain.NewConversationState(sessionID, "welcome")))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, sessions, sessionID)

	// Advance miniredis past the TTL. Keys expire and the lazy index
	// cleanup prunes the session on the next List.
	mr.FastForward(2 * time.Second)

	_, err = store.LoadSession(ctx, sessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	sessions, err = store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, sessions, sessionID)
}

func TestRedisStore_AnswersSurviveWithoutState(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAnswer(ctx, "crashy", "business_overview", domain.TextAnswer("plants"), time.Now()))

	records, err := store.LoadSession(ctx, "crashy")
	require.NoError(t, err)
	assert.Nil(t, records.State)
	assert.Equal(t, domain.TextAnswer("plants"), records.Answers["business_overview"])
}

func TestRedisStore_AnswerRoundTripPreservesKind(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	answers := map[string]domain.Answer{
		"free_text": domain.TextAnswer("we sell plants"),
		"ranked":    domain.ListAnswer("retention", "acquisition"),
		"metric":    domain.NumberAnswer(42.5),
	}
	for q, a := range answers {
		require.NoError(t, store.SaveAnswer(ctx, "kinds", q, a, time.Now()))
	}

	records, err := store.LoadSession(ctx, "kinds")
	require.NoError(t, err)
	for q, want := range answers {
		assert.Equal(t, want, records.Answers[q], "answer %s", q)
	}
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	store, mr := newTestStore(t, redis.WithPrefix("acme:"))
	ctx := context.Background()

	require.NoError(t, store.SaveAnswer(ctx, "s1", "welcome", domain.TextAnswer("hi"), time.Now()))

	assert.True(t, mr.Exists("acme:s1:answers"))
	assert.False(t, mr.Exists("canopy:session:s1:answers"))
}
