package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilClientIsAlwaysMiss(t *testing.T) {
	var c *RedisClient
	ctx := context.Background()

	var dst map[string]string
	found, err := c.GetJSON(ctx, KeyMenu, &dst)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, c.SetJSON(ctx, KeyMenu, map[string]string{"a": "b"}, DefaultTTL))
	assert.NoError(t, c.DeletePattern(ctx, PatternMenu))
	assert.NoError(t, c.IncrementScore(ctx, KeyBestSellers, "1", 2))

	top, err := c.TopScores(ctx, KeyBestSellers, 5)
	require.NoError(t, err)
	assert.Empty(t, top)
	assert.NoError(t, c.Close())
}
