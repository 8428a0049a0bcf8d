package storage_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/maisonlux/storefront/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestRedisStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Save Writes JSON Without Expiry", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		store := storage.NewRedisStore(client)

		payload := []string{"p1", "p2"}
		data, err := json.Marshal(payload)
		assert.NoError(t, err)

		mock.ExpectSet(storage.KeyWishlist, data, 0).SetVal("OK")

		// Act
		err = store.Save(ctx, storage.KeyWishlist, payload)

		// Assert
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Load Unmarshals The Stored Value", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		store := storage.NewRedisStore(client)

		mock.ExpectGet(storage.KeyWishlist).SetVal(`["p1","p2"]`)

		// Act
		var dest []string
		found, err := store.Load(ctx, storage.KeyWishlist, &dest)

		// Assert
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []string{"p1", "p2"}, dest)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Missing Key Reports Not Found", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		store := storage.NewRedisStore(client)

		mock.ExpectGet(storage.KeyCart).RedisNil()

		// Act
		var dest []string
		found, err := store.Load(ctx, storage.KeyCart, &dest)

		// Assert
		assert.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Delete Issues Del", func(t *testing.T) {
		// Arrange
		client, mock := redismock.NewClientMock()
		store := storage.NewRedisStore(client)

		mock.ExpectDel(storage.KeyCompare).SetVal(1)

		// Act
		err := store.Delete(ctx, storage.KeyCompare)

		// Assert
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
