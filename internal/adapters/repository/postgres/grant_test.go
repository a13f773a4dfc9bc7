package postgres_test

import (
	"context"
	"testing"
	"time"

	"media-vault/internal/adapters/repository/postgres"
	"media-vault/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newGrant(owner uuid.UUID) domain.UploadGrant {
	return domain.UploadGrant{
		ID:               uuid.New(),
		Token:            "token-" + uuid.NewString(),
		OwnerID:          owner,
		StorageKey:       "public/avatar/" + owner.String() + "/" + uuid.NewString(),
		MaxSizeBytes:     2048,
		AllowedMimeTypes: []string{"image/*"},
		Status:           domain.GrantStatusPending,
		ExpiresAt:        time.Now().Add(15 * time.Minute).Round(time.Microsecond),
	}
}

func TestSQLGrantRepository(t *testing.T) {
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()
	ctx := context.Background()

	grantRepo := postgres.NewSQLGrantRepository(dbConnection)

	t.Run("Create and FindByToken - Nominal case", func(t *testing.T) {
		// Arrange
		truncate()
		grant := newGrant(uuid.New())

		// Act
		err := grantRepo.Create(ctx, grant)

		// Assert
		require.NoError(t, err)
		saved, err := grantRepo.FindByToken(ctx, grant.Token)
		require.NoError(t, err)
		require.Equal(t, grant.ID, saved.ID)
		require.Equal(t, grant.StorageKey, saved.StorageKey)
		require.Equal(t, grant.AllowedMimeTypes, saved.AllowedMimeTypes)
		require.Equal(t, domain.GrantStatusPending, saved.Status)
		require.Nil(t, saved.UsedAt)
	})

	t.Run("Create - Duplicate token", func(t *testing.T) {
		// Arrange
		truncate()
		grant := newGrant(uuid.New())
		require.NoError(t, grantRepo.Create(ctx, grant))

		duplicate := newGrant(uuid.New())
		duplicate.Token = grant.Token

		// Act
		err := grantRepo.Create(ctx, duplicate)

		// Assert
		require.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	t.Run("FindByToken - Not found", func(t *testing.T) {
		truncate()

		_, err := grantRepo.FindByToken(ctx, "no-such-token")

		require.ErrorIs(t, err, domain.ErrGrantNotFound)
	})

	t.Run("MarkUsed - Consumes a pending grant exactly once", func(t *testing.T) {
		// Arrange
		truncate()
		grant := newGrant(uuid.New())
		require.NoError(t, grantRepo.Create(ctx, grant))

		// Act
		err := grantRepo.MarkUsed(ctx, grant.ID, time.Now())
		require.NoError(t, err)

		// Assert: the guarded update refuses a second consumption
		err = grantRepo.MarkUsed(ctx, grant.ID, time.Now())
		require.ErrorIs(t, err, domain.ErrGrantNotFound)

		saved, err := grantRepo.FindByToken(ctx, grant.Token)
		require.NoError(t, err)
		require.Equal(t, domain.GrantStatusUsed, saved.Status)
		require.NotNil(t, saved.UsedAt)
	})

	t.Run("FindAllExpired - Only overdue pending grants", func(t *testing.T) {
		// Arrange
		truncate()
		overdue := newGrant(uuid.New())
		overdue.ExpiresAt = time.Now().Add(-time.Hour)
		fresh := newGrant(uuid.New())
		used := newGrant(uuid.New())
		used.ExpiresAt = time.Now().Add(-time.Hour)

		for _, g := range []domain.UploadGrant{overdue, fresh, used} {
			require.NoError(t, grantRepo.Create(ctx, g))
		}
		require.NoError(t, grantRepo.MarkUsed(ctx, used.ID, time.Now()))

		// Act
		expired, err := grantRepo.FindAllExpired(ctx, time.Now())

		// Assert
		require.NoError(t, err)
		require.Len(t, expired, 1)
		require.Equal(t, overdue.ID, expired[0].ID)
	})

	t.Run("UpdateStatus - Success", func(t *testing.T) {
		// Arrange
		truncate()
		grant := newGrant(uuid.New())
		require.NoError(t, grantRepo.Create(ctx, grant))

		// Act
		err := grantRepo.UpdateStatus(ctx, grant.ID, domain.GrantStatusExpired)

		// Assert
		require.NoError(t, err)
		saved, err := grantRepo.FindByToken(ctx, grant.Token)
		require.NoError(t, err)
		require.Equal(t, domain.GrantStatusExpired, saved.Status)
	})
}
