package sessionstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte(`[1,2]`)
	require.NoError(t, m.Set(ctx, "cart", value))
	value[0] = 'x'

	got, ok, err := m.Get(ctx, "cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[1,2]`, string(got), "stored value must not alias the caller's slice")

	require.NoError(t, m.Delete(ctx, "cart"))
	_, ok, _ = m.Get(ctx, "cart")
	assert.False(t, ok)
}

func TestRedisGetRefreshesExpiry(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedis(db, "session-1", time.Hour)
	ctx := context.Background()

	mock.ExpectGetEx("session-1:food-delivery-cart", time.Hour).SetVal(`[]`)
	got, ok, err := store.Get(ctx, "food-delivery-cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", string(got))

	mock.ExpectGetEx("session-1:missing", time.Hour).RedisNil()
	_, ok, err = store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectGetEx("session-1:broken", time.Hour).SetErr(errors.New("connection refused"))
	_, _, err = store.Get(ctx, "broken")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSetAndDelete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedis(db, "session-1", 30*time.Minute)
	ctx := context.Background()

	value := []byte(`{"token":"t"}`)
	mock.ExpectSet("session-1:courier", value, 30*time.Minute).SetVal("OK")
	require.NoError(t, store.Set(ctx, "courier", value))

	mock.ExpectDel("session-1:courier").SetVal(1)
	require.NoError(t, store.Delete(ctx, "courier"))

	mock.ExpectDel("session-1:courier").SetErr(errors.New("timeout"))
	assert.Error(t, store.Delete(ctx, "courier"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisWithoutPrefix(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedis(db, "", 0)

	mock.ExpectGet("cart").SetVal("x")
	_, ok, err := store.Get(context.Background(), "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
