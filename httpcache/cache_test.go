package httpcache

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("set get roundtrip", func(t *testing.T) {
		cache := NewFileCache(t.TempDir(), logger)

		stored := Entry{
			Status:   200,
			Proto:    "HTTP/1.1",
			Header:   http.Header{"Content-Type": {"application/json"}},
			Body:     []byte(`{"data": 1}`),
			CachedAt: time.Now(),
		}
		require.NoError(t, cache.Set("abc", stored))

		got, ok := cache.Get("abc")
		require.True(t, ok)
		assert.Equal(t, stored.Status, got.Status)
		assert.Equal(t, stored.Proto, got.Proto)
		assert.Equal(t, stored.Header, got.Header)
		assert.Equal(t, stored.Body, got.Body)
		assert.WithinDuration(t, stored.CachedAt, got.CachedAt, time.Second)
	})

	t.Run("missing entry is a miss", func(t *testing.T) {
		cache := NewFileCache(t.TempDir(), logger)

		_, ok := cache.Get("nope")
		assert.False(t, ok)
	})

	t.Run("corrupt entry is a miss", func(t *testing.T) {
		dir := t.TempDir()
		cache := NewFileCache(dir, logger)

		require.NoError(t, os.WriteFile(cache.entryPath("abc"), []byte("{torn"), 0o644))

		_, ok := cache.Get("abc")
		assert.False(t, ok)
	})

	t.Run("remove", func(t *testing.T) {
		cache := NewFileCache(t.TempDir(), logger)

		require.NoError(t, cache.Set("abc", Entry{Status: 200}))
		require.NoError(t, cache.Remove("abc"))

		_, ok := cache.Get("abc")
		assert.False(t, ok)

		assert.NoError(t, cache.Remove("abc"), "removing an absent entry is fine")
	})

	t.Run("clear", func(t *testing.T) {
		cache := NewFileCache(t.TempDir(), logger)

		require.NoError(t, cache.Set("one", Entry{Status: 200}))
		require.NoError(t, cache.Set("two", Entry{Status: 200}))
		require.NoError(t, cache.Clear())

		_, ok := cache.Get("one")
		assert.False(t, ok)
		_, ok = cache.Get("two")
		assert.False(t, ok)
	})
}
