package utility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestCacheSetGetDelete: vòng đời cơ bản của một entry.
func TestCacheSetGetDelete(t *testing.T) {
	cache := NewCache(time.Minute, time.Minute)
	defer cache.Stop()

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	cache.Set("grants:u1", []int{1, 2})
	value, ok := cache.Get("grants:u1")
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2}, value)

	cache.Delete("grants:u1")
	_, ok = cache.Get("grants:u1")
	assert.False(t, ok, "key đã Delete phải biến mất ngay")
}

// TestCacheExpiry: entry quá TTL coi như không tồn tại kể cả khi vòng dọn
// dẹp chưa chạy.
func TestCacheExpiry(t *testing.T) {
	cache := NewCache(10*time.Millisecond, time.Hour)
	defer cache.Stop()

	cache.Set("k", "v")
	_, ok := cache.Get("k")
	assert.True(t, ok)

	time.Sleep(30 * time.Millisecond)
	_, ok = cache.Get("k")
	assert.False(t, ok, "entry quá TTL phải bị coi là miss")
}
