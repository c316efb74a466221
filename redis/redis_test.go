package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInitRedisWithoutAddrLeavesClientNil(t *testing.T) {
	Client = nil
	t.Setenv("REDIS_ADDR", "")

	InitRedis()

	assert.Nil(t, Client)
}

func TestInitRedisUnreachableLeavesClientNil(t *testing.T) {
	Client = nil
	t.Setenv("REDIS_ADDR", "127.0.0.1:1")

	InitRedis()

	assert.Nil(t, Client)
}

func TestCacheHelpersAreNoOpsWithoutClient(t *testing.T) {
	Client = nil

	SetCached("directory:search:abc", "payload", time.Minute)
	assert.Equal(t, "", GetCached("directory:search:abc"))
	InvalidatePrefix("directory:search:")
}
