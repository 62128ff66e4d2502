package services

import (
	"context"
	"testing"

	"flexfit-api/internal/adapters/persistence/models"
	"flexfit-api/internal/adapters/persistence/repositories"
	"flexfit-api/internal/core/domain"
	"flexfit-api/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMemberService(db *gorm.DB) *MemberService {
	return NewMemberService(
		repositories.NewUserRepository(db),
		repositories.NewProfileRepository(db),
	)
}

func TestMemberService_CreateMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)
	ctx := context.Background()

	t.Run("creates member with profile", func(t *testing.T) {
		member, err := svc.CreateMember(ctx, &CreateMemberInput{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, "Alice", member.Name)
		assert.Equal(t, string(domain.RoleMember), member.Role)

		var profileCount int64
		db.Model(&models.Profile{}).Where("user_id = ?", member.ID).Count(&profileCount)
		assert.Equal(t, int64(1), profileCount)

		// Password is stored hashed
		var user models.User
		require.NoError(t, db.First(&user, member.ID).Error)
		assert.NotEqual(t, "password123", user.Password)
		assert.True(t, password.Verify("password123", user.Password))
	})

	t.Run("duplicate email returns conflict and writes no row", func(t *testing.T) {
		_, err := svc.CreateMember(ctx, &CreateMemberInput{
			Name:     "Alice Clone",
			Email:    "alice@example.com",
			Password: "password123",
		})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)

		var count int64
		db.Model(&models.User{}).Where("email = ?", "alice@example.com").Count(&count)
		assert.Equal(t, int64(1), count)
	})
}

func TestMemberService_UpdateMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)
	ctx := context.Background()

	bob := createTestMember(t, db, "Bob", "bob@example.com")
	carol := createTestMember(t, db, "Carol", "carol@example.com")

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		newName := "Bobby"
		updated, err := svc.UpdateMember(ctx, bob.ID, &UpdateMemberInput{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, "Bobby", updated.Name)
		assert.Equal(t, "bob@example.com", updated.Email)
	})

	t.Run("email taken by another member is a conflict", func(t *testing.T) {
		taken := "carol@example.com"
		_, err := svc.UpdateMember(ctx, bob.ID, &UpdateMemberInput{Email: &taken})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("keeping own email is not a conflict", func(t *testing.T) {
		own := "carol@example.com"
		updated, err := svc.UpdateMember(ctx, carol.ID, &UpdateMemberInput{Email: &own})
		require.NoError(t, err)
		assert.Equal(t, "carol@example.com", updated.Email)
	})

	t.Run("unknown member returns not found", func(t *testing.T) {
		name := "Ghost"
		_, err := svc.UpdateMember(ctx, 9999, &UpdateMemberInput{Name: &name})
		assert.ErrorIs(t, err, ErrMemberNotFoundSvc)
	})
}

func TestMemberService_DeleteMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)
	ctx := context.Background()

	t.Run("delete removes member with subscriptions and profile", func(t *testing.T) {
		member := createTestMember(t, db, "Dave", "dave@example.com")
		plan := createTestPlan(t, db, "Basic", 29.99, 30)
		createTestSubscription(t, db, member.ID, plan.ID, mustTime(t, "2026-01-01"), 30, domain.SubscriptionExpired)
		createTestSubscription(t, db, member.ID, plan.ID, mustTime(t, "2026-02-01"), 30, domain.SubscriptionActive)

		require.NoError(t, svc.DeleteMember(ctx, member.ID, member.ID+1))

		var userCount, subCount, profileCount int64
		db.Unscoped().Model(&models.User{}).Where("id = ?", member.ID).Count(&userCount)
		db.Model(&models.Subscription{}).Where("user_id = ?", member.ID).Count(&subCount)
		db.Model(&models.Profile{}).Where("user_id = ?", member.ID).Count(&profileCount)
		assert.Equal(t, int64(0), userCount)
		assert.Equal(t, int64(0), subCount)
		assert.Equal(t, int64(0), profileCount)
	})

	t.Run("failed cascade leaves prior state intact", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newMemberService(db)

		member := createTestMember(t, db, "Grace", "grace@example.com")
		plan := createTestPlan(t, db, "Basic", 29.99, 30)
		sub := createTestSubscription(t, db, member.ID, plan.ID, mustTime(t, "2026-02-01"), 30, domain.SubscriptionActive)

		// Break the middle cascade step: the profile delete hits a missing
		// table, so the already-executed subscription delete must roll back.
		require.NoError(t, db.Migrator().DropTable(&models.Profile{}))

		err := svc.DeleteMember(ctx, member.ID, member.ID+1)
		require.Error(t, err)

		var subCount, userCount int64
		db.Model(&models.Subscription{}).Where("id = ?", sub.ID).Count(&subCount)
		db.Model(&models.User{}).Where("id = ?", member.ID).Count(&userCount)
		assert.Equal(t, int64(1), subCount)
		assert.Equal(t, int64(1), userCount)
	})

	t.Run("admin cannot delete own account", func(t *testing.T) {
		admin := createTestMember(t, db, "Admin", "admin@example.com")
		err := svc.DeleteMember(ctx, admin.ID, admin.ID)
		assert.ErrorIs(t, err, ErrCannotDeleteSelf)
	})

	t.Run("unknown member returns not found", func(t *testing.T) {
		err := svc.DeleteMember(ctx, 9999, 1)
		assert.ErrorIs(t, err, ErrMemberNotFoundSvc)
	})
}

func TestMemberService_ListMembers(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)
	ctx := context.Background()

	member := createTestMember(t, db, "Erin", "erin@example.com")
	basic := createTestPlan(t, db, "Basic", 29.99, 30)
	pro := createTestPlan(t, db, "Pro", 49.99, 30)

	// Older expired subscription and a newer active one: the listing must
	// report the latest.
	createTestSubscription(t, db, member.ID, basic.ID, mustTime(t, "2026-01-01"), 30, domain.SubscriptionExpired)
	createTestSubscription(t, db, member.ID, pro.ID, mustTime(t, "2026-03-01"), 30, domain.SubscriptionActive)

	members, err := svc.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Pro", members[0].CurrentPlan)
	assert.Equal(t, domain.SubscriptionActive, members[0].SubscriptionStatus)
}

func TestMemberService_UpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newMemberService(db)
	ctx := context.Background()

	member := createTestMember(t, db, "Frank", "frank@example.com")

	t.Run("updates contact details", func(t *testing.T) {
		phone := "555-0101"
		address := "1 Gym Street"
		profile, err := svc.UpdateProfile(ctx, member.ID, &UpdateProfileInput{
			Phone:   &phone,
			Address: &address,
		})
		require.NoError(t, err)
		assert.Equal(t, "555-0101", profile.Phone)
		assert.Equal(t, "1 Gym Street", profile.Address)
	})

	t.Run("password change requires correct current password", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, member.ID, &UpdateProfileInput{
			CurrentPassword: "wrong-password",
			NewPassword:     "newpassword123",
		})
		assert.ErrorIs(t, err, ErrCurrentPasswordWrong)

		_, err = svc.UpdateProfile(ctx, member.ID, &UpdateProfileInput{
			CurrentPassword: "password123",
			NewPassword:     "newpassword123",
		})
		require.NoError(t, err)

		var user models.User
		require.NoError(t, db.First(&user, member.ID).Error)
		assert.True(t, password.Verify("newpassword123", user.Password))
	})
}
