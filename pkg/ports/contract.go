package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canopyhq/canopy/pkg/domain"
)

// RunConversationStoreContract runs a suite of tests to verify that a
// ConversationStore implementation adheres to the defined interface
// contract.
func RunConversationStoreContract(t *testing.T, store ConversationStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")
	now := time.Now().UTC().Truncate(time.Millisecond)

	t.Run("SaveAnswer and LoadSession", func(t *testing.T) {
		err := store.SaveAnswer(ctx, sessionID, "business_overview", domain.TextAnswer("we sell plants online"), now)
		require.NoError(t, err, "SaveAnswer should not return error")

		records, err := store.LoadSession(ctx, sessionID)
		require.NoError(t, err, "LoadSession should not return error")
		require.NotNil(t, records)
		assert.Equal(t, domain.TextAnswer("we sell plants online"), records.Answers["business_overview"])
	})

	t.Run("Last Write Wins", func(t *testing.T) {
		err := store.SaveAnswer(ctx, sessionID, "retention_rate", domain.TextAnswer("40"), now)
		require.NoError(t, err)
		err = store.SaveAnswer(ctx, sessionID, "retention_rate", domain.TextAnswer("65"), now.Add(time.Second))
		require.NoError(t, err)

		records, err := store.LoadSession(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.TextAnswer("65"), records.Answers["retention_rate"])
	})

	t.Run("Answers Survive Without State", func(t *testing.T) {
		id := sessionID + "-answers-only"
		err := store.SaveAnswer(ctx, id, "growth_strategy", domain.TextAnswer("referrals"), now)
		require.NoError(t, err)

		records, err := store.LoadSession(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, records.State, "no state snapshot was saved yet")
		assert.Len(t, records.Answers, 1)

		require.NoError(t, store.Delete(ctx, id))
	})

	t.Run("SaveState and Reload", func(t *testing.T) {
		state := domain.NewConversationState(sessionID, "welcome")
		state.Phase = domain.PhaseDiscovery
		state.Progress = 8
		state.Context = state.Context.Merge("business_overview", domain.TextAnswer("we sell plants online"))

		err := store.SaveState(ctx, sessionID, state)
		require.NoError(t, err, "SaveState should not return error")

		records, err := store.LoadSession(ctx, sessionID)
		require.NoError(t, err)
		require.NotNil(t, records.State)
		assert.Equal(t, domain.PhaseDiscovery, records.State.Phase)
		assert.Equal(t, 8, records.State.Progress)
		assert.True(t, records.State.Context.Answered("business_overview"))
	})

	t.Run("AppendInsight", func(t *testing.T) {
		first := domain.RealTimeInsight{
			ID: "ins-1", Kind: domain.InsightPattern, Content: "first",
			Confidence: 0.8, DataPoints: []string{"welcome"}, Timestamp: now,
		}
		second := domain.RealTimeInsight{
			ID: "ins-2", Kind: domain.InsightRisk, Content: "second",
			Confidence: 0.75, DataPoints: []string{"retention_rate"}, Timestamp: now.Add(time.Second),
		}
		require.NoError(t, store.AppendInsight(ctx, sessionID, first))
		require.NoError(t, store.AppendInsight(ctx, sessionID, second))

		records, err := store.LoadSession(ctx, sessionID)
		require.NoError(t, err)
		require.Len(t, records.Insights, 2, "insights accumulate, never deduplicate")
		assert.Equal(t, "first", records.Insights[0].Content)
		assert.Equal(t, "second", records.Insights[1].Content)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.LoadSession(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.SaveAnswer(ctx, id1, "welcome", domain.TextAnswer("hi"), now))
		require.NoError(t, store.SaveState(ctx, id2, domain.NewConversationState(id2, "welcome")))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.LoadSession(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "LoadSession after Delete should return ErrSessionNotFound")
	})
}
