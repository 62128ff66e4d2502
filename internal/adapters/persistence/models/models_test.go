package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembershipPlan_Features(t *testing.T) {
	t.Run("round trip keeps order", func(t *testing.T) {
		plan := &MembershipPlan{}
		require.NoError(t, plan.SetFeatures([]string{"Pool", "Sauna", "Classes"}))

		features, err := plan.FeatureList()
		require.NoError(t, err)
		assert.Equal(t, []string{"Pool", "Sauna", "Classes"}, features)
	})

	t.Run("nil features serialize as empty list", func(t *testing.T) {
		plan := &MembershipPlan{}
		require.NoError(t, plan.SetFeatures(nil))
		assert.Equal(t, "[]", plan.Features)
	})

	t.Run("empty column reads as empty list", func(t *testing.T) {
		plan := &MembershipPlan{}
		features, err := plan.FeatureList()
		require.NoError(t, err)
		assert.Empty(t, features)
	})

	t.Run("malformed column is an error, not an empty list", func(t *testing.T) {
		plan := &MembershipPlan{ID: 7, Features: "{broken"}
		_, err := plan.FeatureList()
		require.Error(t, err)

		_, err = plan.ToResponse()
		assert.Error(t, err)
	})
}

func TestSubscription_IsCurrent(t *testing.T) {
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	sub := &Subscription{EndDate: end}

	assert.True(t, sub.IsCurrent(end.AddDate(0, 0, -1)))
	assert.True(t, sub.IsCurrent(end)) // end date is inclusive
	assert.False(t, sub.IsCurrent(end.Add(time.Second)))
}

func TestUser_ToMemberResponse(t *testing.T) {
	t.Run("without subscriptions", func(t *testing.T) {
		user := &User{ID: 1, Name: "Alice", Email: "alice@example.com", Role: "member"}
		resp := user.ToMemberResponse()
		assert.Empty(t, resp.CurrentPlan)
		assert.Empty(t, resp.SubscriptionStatus)
	})

	t.Run("first preloaded subscription wins", func(t *testing.T) {
		user := &User{
			ID: 1, Name: "Alice", Email: "alice@example.com", Role: "member",
			Subscriptions: []Subscription{
				{Status: "active", Plan: &MembershipPlan{Name: "Pro"}},
				{Status: "expired", Plan: &MembershipPlan{Name: "Basic"}},
			},
		}
		resp := user.ToMemberResponse()
		assert.Equal(t, "Pro", resp.CurrentPlan)
		assert.Equal(t, "active", resp.SubscriptionStatus)
	})
}

func TestRefreshToken_State(t *testing.T) {
	now := time.Now()

	live := &RefreshToken{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, live.IsRevoked())
	assert.False(t, live.IsExpired())

	revokedAt := now.Add(-time.Minute)
	revoked := &RefreshToken{ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt}
	assert.True(t, revoked.IsRevoked())

	expired := &RefreshToken{ExpiresAt: now.Add(-time.Hour)}
	assert.True(t, expired.IsExpired())
}
