package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleigh-route-service/internal/ports"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisDistanceCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestRedis(t)
	c := NewRedisDistanceCache(rdb, time.Hour)

	err := c.PutMany(ctx, "90.000000,0.000000", map[string]ports.DistanceResult{
		"52.520000,13.405000": {Kilometers: 4160.25},
		"48.137000,11.575000": {Kilometers: 4645.5},
	})
	require.NoError(t, err)

	got, err := c.GetMany(ctx, "90.000000,0.000000", []string{
		"52.520000,13.405000",
		"48.137000,11.575000",
		"40.712800,-74.006000",
		"52.520000,13.405000",
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.InDelta(t, 4160.25, got["52.520000,13.405000"].Kilometers, 1e-9)
	assert.InDelta(t, 4645.5, got["48.137000,11.575000"].Kilometers, 1e-9)
}

func TestRedisDistanceCacheExpires(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	c := NewRedisDistanceCache(rdb, time.Minute)

	require.NoError(t, c.PutMany(ctx, "o", map[string]ports.DistanceResult{"d": {Kilometers: 1}}))
	assert.Equal(t, time.Minute, mr.TTL(redisKeyPrefix+"o"))

	mr.FastForward(2 * time.Minute)

	got, err := c.GetMany(ctx, "o", []string{"d"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisDistanceCacheRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestRedis(t)
	c := NewRedisDistanceCache(rdb, 0)

	_, err := c.GetMany(ctx, "", []string{"d"})
	assert.Error(t, err)

	err = c.PutMany(ctx, "o", map[string]ports.DistanceResult{" ": {Kilometers: 1}})
	assert.Error(t, err)

	got, err := c.GetMany(ctx, "o", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := OpenRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	_ = rdb.Close()

	_, err = OpenRedis(context.Background(), "not-a-url")
	assert.Error(t, err)
}
