package repositories_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"techmart/internal/models"
	"techmart/internal/repositories"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StoredItem{}, &models.Review{}))
	return db
}

func exerciseStorage(t *testing.T, repo repositories.StorageRepository) {
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, "k", `["a"]`))
	value, ok, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["a"]`, value)

	require.NoError(t, repo.Set(ctx, "k", `["a","b"]`))
	value, _, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, value)

	require.NoError(t, repo.Delete(ctx, "k"))
	_, ok, err = repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, repo.Delete(ctx, "never-set"))
}

func TestMockStorageRepository(t *testing.T) {
	exerciseStorage(t, repositories.NewMockStorageRepository())
}

func TestGORMStorageRepository(t *testing.T) {
	exerciseStorage(t, repositories.NewGORMStorageRepository(openTestDB(t)))
}

func TestScopedStorage_IsolatesShoppers(t *testing.T) {
	ctx := context.Background()
	base := repositories.NewMockStorageRepository()
	alice := repositories.NewScopedStorage(base, "alice")
	bob := repositories.NewScopedStorage(base, "bob")

	require.NoError(t, alice.Set(ctx, repositories.WishlistKey, `["p1"]`))

	_, ok, err := bob.Get(ctx, repositories.WishlistKey)
	require.NoError(t, err)
	assert.False(t, ok)

	raw, ok, err := base.Get(ctx, "shopper:alice:"+repositories.WishlistKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["p1"]`, raw)

	exerciseStorage(t, bob)
}

func TestRedisStorageRepository_Unavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:0",
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return nil, errors.New("redis disabled in tests")
		},
		MaxRetries: -1,
	})
	defer client.Close()
	repo := repositories.NewRedisStorageRepository(client)
	ctx := context.Background()

	_, _, err := repo.Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, repo.Set(ctx, "k", "v"))
	assert.Error(t, repo.Delete(ctx, "k"))
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := repositories.NewRedisClient("not-a-url")
	assert.Error(t, err)

	client, err := repositories.NewRedisClient("redis://localhost:6379/1")
	require.NoError(t, err)
	assert.Equal(t, 1, client.Options().DB)
	client.Close()
}
