package pkg

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	pkgdb "github.com/par4d15e/blogbackendserver-sub001/pkg/database"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	database.RedisDB = &pkgdb.RedisClient{
		Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}
	return mr
}

func TestStateRoundTrip(t *testing.T) {
	setupTestRedis(t)

	state, err := GenerateState()
	require.NoError(t, err)

	require.NoError(t, SaveStateWithRedirect(state, "https://example.com/callback"))

	redirect, err := GetRedirectByState(state)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/callback", redirect)

	require.NoError(t, DeleteState(state))

	_, err = GetRedirectByState(state)
	assert.Error(t, err)
}

func TestStateExpires(t *testing.T) {
	mr := setupTestRedis(t)

	require.NoError(t, SaveStateWithRedirect("expired-state", "https://example.com"))

	mr.FastForward(StateExpiration + time.Second)

	_, err := GetRedirectByState("expired-state")
	assert.Error(t, err)
}

func TestGetRedirectByStateUnknown(t *testing.T) {
	setupTestRedis(t)

	_, err := GetRedirectByState("never-issued")
	assert.Error(t, err)
}
