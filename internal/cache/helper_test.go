package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
}

func TestAside_MissThenHit(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *[]string) func() error {
		return func() error {
			fetches++
			*dest = []string{"a", "b"}
			return nil
		}
	}

	var got []string
	err := Aside(ctx, "creations:published", &got, PublishedFeedTTL, fetch(&got))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, fetches)

	// Second call is served from cache, fetch is not invoked again
	var got2 []string
	err = Aside(ctx, "creations:published", &got2, PublishedFeedTTL, fetch(&got2))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got2)
	assert.Equal(t, 1, fetches)
}

func TestAside_InvalidateForcesRefetch(t *testing.T) {
	setupTestRedis(t)
	ctx := context.Background()

	fetches := 0
	var got []string
	fetch := func() error {
		fetches++
		got = []string{"x"}
		return nil
	}

	require.NoError(t, Aside(ctx, OwnerCreationsKey("u1"), &got, OwnerCreationsTTL, fetch))
	InvalidateCreations(ctx, "u1")
	require.NoError(t, Aside(ctx, OwnerCreationsKey("u1"), &got, OwnerCreationsTTL, fetch))
	assert.Equal(t, 2, fetches)
}

func TestGetSetJSON_NilClientNoops(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	assert.NoError(t, SetJSON(ctx, "k", "v", EntitlementTTL))

	var dest string
	found, err := GetJSON(ctx, "k", &dest)
	assert.NoError(t, err)
	assert.False(t, found)
}
