package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"gallery-shop/internal/cache"
	"gallery-shop/internal/logger"
)

func TestCacheIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Redis integration test in short mode")
	}

	ctx := context.Background()
	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:latest",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}
	defer redisContainer.Terminate(ctx)

	host, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	port, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: host + ":" + port.Port()})
	pageCache := cache.New(client, time.Minute, logger.New("test"))

	// Miss on an empty cache
	_, ok, err := pageCache.Get(ctx, "/")
	require.NoError(t, err)
	assert.False(t, ok)

	// Set then hit
	payload := []byte(`{"featured":[]}`)
	require.NoError(t, pageCache.Set(ctx, "/", payload))
	got, ok, err := pageCache.Get(ctx, "/")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload, got)

	// Invalidate reports how many entries were removed
	require.NoError(t, pageCache.Set(ctx, "/artwork", []byte(`{"artworks":[]}`)))
	removed, err := pageCache.Invalidate(ctx, "/", "/artwork", "/art/never-cached")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, ok, err = pageCache.Get(ctx, "/")
	require.NoError(t, err)
	assert.False(t, ok, "Expected entry to be gone after invalidation")
}
