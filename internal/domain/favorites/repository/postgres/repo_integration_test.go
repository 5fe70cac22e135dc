//go:build integration

package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/Conte777/MovieFlow/internal/domain/favorites/entities"
	faverrors "github.com/Conte777/MovieFlow/internal/domain/favorites/errors"
	"github.com/Conte777/MovieFlow/internal/infrastructure/database"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "movies",
				"POSTGRES_PASSWORD": "movies",
				"POSTGRES_DB":       "movies_test",
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=movies password=movies dbname=movies_test sslmode=disable", host, port.Port())
	db, err := database.Open(dsn)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, "movies_test"))

	return db
}

func favorite(id int64) *entities.Favorite {
	return &entities.Favorite{MovieID: id, MovieTitle: fmt.Sprintf("movie %d", id)}
}

func TestRepository_Integration(t *testing.T) {
	db := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("add creates user and rejects duplicate", func(t *testing.T) {
		require.NoError(t, repo.AddFavorite(ctx, 1, "neo", favorite(603), entities.MaxFavorites))

		err := repo.AddFavorite(ctx, 1, "neo", favorite(603), entities.MaxFavorites)
		assert.ErrorIs(t, err, faverrors.ErrFavoriteAlreadyExists)

		user, err := repo.GetUser(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, user.Username)
		assert.Equal(t, "neo", *user.Username)
		assert.True(t, user.ReceiveNotifications)

		list, err := repo.ListFavorites(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("limit and insertion order", func(t *testing.T) {
		for id := int64(10); id < 13; id++ {
			require.NoError(t, repo.AddFavorite(ctx, 2, "", favorite(id), 3))
		}
		err := repo.AddFavorite(ctx, 2, "", favorite(99), 3)
		assert.ErrorIs(t, err, faverrors.ErrFavoritesLimitReached)

		err = repo.AddFavorite(ctx, 2, "", favorite(10), 3)
		assert.ErrorIs(t, err, faverrors.ErrFavoriteAlreadyExists)

		list, err := repo.ListFavorites(ctx, 2)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, int64(10), list[0].MovieID)
		assert.Equal(t, int64(12), list[2].MovieID)
	})

	t.Run("concurrent adds respect the limit", func(t *testing.T) {
		var wg sync.WaitGroup
		for id := int64(100); id < 130; id++ {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				_ = repo.AddFavorite(ctx, 3, "", favorite(id), entities.MaxFavorites)
			}(id)
		}
		wg.Wait()

		list, err := repo.ListFavorites(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, list, entities.MaxFavorites)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		removed, err := repo.RemoveFavorite(ctx, 1, 603)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.RemoveFavorite(ctx, 1, 603)
		require.NoError(t, err)
		assert.False(t, removed)

		removed, err = repo.RemoveFavorite(ctx, 404, 603)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("toggle notifications and recipients", func(t *testing.T) {
		_, err := repo.ToggleNotifications(ctx, 404)
		assert.ErrorIs(t, err, faverrors.ErrUserNotFound)

		_, err = repo.EnsureUser(ctx, 4, "trinity")
		require.NoError(t, err)

		enabled, err := repo.ToggleNotifications(ctx, 4)
		require.NoError(t, err)
		assert.False(t, enabled)

		recipients, err := repo.ListRecipients(ctx)
		require.NoError(t, err)
		assert.NotContains(t, recipients, int64(4))
		assert.Contains(t, recipients, int64(1))

		enabled, err = repo.ToggleNotifications(ctx, 4)
		require.NoError(t, err)
		assert.True(t, enabled)
	})

	t.Run("deleting a user cascades to favorites", func(t *testing.T) {
		require.NoError(t, db.Where("telegram_id = ?", 2).Delete(&entities.User{}).Error)

		var count int64
		require.NoError(t, db.Model(&entities.Favorite{}).
			Joins("LEFT JOIN users ON users.id = favorites.user_id").
			Where("users.id IS NULL").
			Count(&count).Error)
		assert.Zero(t, count)
	})
}
