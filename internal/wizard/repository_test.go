package wizard_test

import (
	"context"
	"cotacao/internal/wizard"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseRepository(t *testing.T, repo wizard.InterfaceRepository) {
	t.Helper()
	ctx := context.Background()

	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, wizard.ErrSessionNotFound)

	state := atResult(t)
	require.NoError(t, repo.Save(ctx, state))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestMemoryRepository(t *testing.T) {
	t.Parallel()

	exerciseRepository(t, wizard.NewMemoryRepository(time.Hour))

	expiring := wizard.NewMemoryRepository(-time.Second)
	require.NoError(t, expiring.Save(context.Background(), wizard.NewState("old")))
	_, err := expiring.Get(context.Background(), "old")
	assert.ErrorIs(t, err, wizard.ErrSessionNotFound)
}

func TestRedisRepository(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	exerciseRepository(t, wizard.NewRedisRepository(rdb, time.Hour))
	assert.True(t, mr.Exists("wizard:s1"))
	assert.Equal(t, time.Hour, mr.TTL("wizard:s1"))

	mr.FastForward(2 * time.Hour)
	_, err := wizard.NewRedisRepository(rdb, time.Hour).Get(context.Background(), "s1")
	assert.ErrorIs(t, err, wizard.ErrSessionNotFound)
}
