package httpcache

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetch(t *testing.T, client *http.Client, method, url string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestTransportServesFromCache(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data": {"id": 1}}`)
	}))
	defer server.Close()

	client := &http.Client{Transport: NewTransport(t.TempDir(), zerolog.Nop())}

	resp, body := fetch(t, client, http.MethodGet, server.URL+"/series/1")
	assert.Equal(t, 1, hits)
	assert.Empty(t, resp.Header.Get(HeaderFromCache), "first fetch comes from the network")
	assert.Equal(t, `{"data": {"id": 1}}`, body)

	resp, body = fetch(t, client, http.MethodGet, server.URL+"/series/1")
	assert.Equal(t, 1, hits, "second fetch must not hit the network")
	assert.Equal(t, "1", resp.Header.Get(HeaderFromCache))
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, `{"data": {"id": 1}}`, body)

	_, _ = fetch(t, client, http.MethodGet, server.URL+"/series/2")
	assert.Equal(t, 2, hits, "different URLs are cached separately")
}

func TestTransportStaleEntryRefetches(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		io.WriteString(w, "payload")
	}))
	defer server.Close()

	transport := NewTransport(t.TempDir(), zerolog.Nop())
	client := &http.Client{Transport: transport}

	fetch(t, client, http.MethodGet, server.URL)
	require.Equal(t, 1, hits)

	transport.now = func() time.Time { return time.Now().Add(DefaultMaxAge + time.Minute) }

	resp, _ := fetch(t, client, http.MethodGet, server.URL)
	assert.Equal(t, 2, hits, "aged-out entries go back to the network")
	assert.Empty(t, resp.Header.Get(HeaderFromCache))
}

func TestTransportBypasses(t *testing.T) {
	t.Run("non-GET requests", func(t *testing.T) {
		var hits int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			io.WriteString(w, "ok")
		}))
		defer server.Close()

		client := &http.Client{Transport: NewTransport(t.TempDir(), zerolog.Nop())}

		fetch(t, client, http.MethodPost, server.URL)
		resp, _ := fetch(t, client, http.MethodPost, server.URL)
		assert.Equal(t, 2, hits)
		assert.Empty(t, resp.Header.Get(HeaderFromCache))
	})

	t.Run("non-200 responses", func(t *testing.T) {
		var hits int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := &http.Client{Transport: NewTransport(t.TempDir(), zerolog.Nop())}

		fetch(t, client, http.MethodGet, server.URL)
		resp, _ := fetch(t, client, http.MethodGet, server.URL)
		assert.Equal(t, 2, hits, "error responses are never stored")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestTransportNoStoreBypass(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		io.WriteString(w, "fresh")
	}))
	defer server.Close()

	dir := t.TempDir()
	client := &http.Client{Transport: NewTransport(dir, zerolog.Nop())}

	for want := 1; want <= 2; want++ {
		req, err := http.NewRequest(http.MethodGet, server.URL, nil)
		require.NoError(t, err)
		req.Header.Set("Cache-Control", "no-store")

		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, want, hits, "no-store requests always reach the network")
		assert.Empty(t, resp.Header.Get(HeaderFromCache))
	}

	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Empty(t, entries, "no-store responses never reach the disk")
}

func TestTransportKeysOnLanguage(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		io.WriteString(w, "body-"+r.Header.Get("Accept-Language"))
	}))
	defer server.Close()

	client := &http.Client{Transport: NewTransport(t.TempDir(), zerolog.Nop())}

	get := func(lang string) (*http.Response, string) {
		t.Helper()

		req, err := http.NewRequest(http.MethodGet, server.URL+"/series/1", nil)
		require.NoError(t, err)
		req.Header.Set("Accept-Language", lang)

		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp, string(body)
	}

	_, body := get("en")
	require.Equal(t, "body-en", body)
	require.Equal(t, 1, hits)

	resp, body := get("de")
	assert.Equal(t, "body-de", body, "languages never share an entry")
	assert.Empty(t, resp.Header.Get(HeaderFromCache))
	assert.Equal(t, 2, hits)

	resp, body = get("en")
	assert.Equal(t, "body-en", body)
	assert.Equal(t, "1", resp.Header.Get(HeaderFromCache))
	assert.Equal(t, 2, hits, "each language keeps its own cached entry")
}

func TestTransportCorruptEntryRefetches(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		io.WriteString(w, "payload")
	}))
	defer server.Close()

	dir := t.TempDir()
	client := &http.Client{Transport: NewTransport(dir, zerolog.Nop())}

	fetch(t, client, http.MethodGet, server.URL)
	require.Equal(t, 1, hits)

	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NoError(t, os.WriteFile(entries[0], []byte("{torn"), 0o644))

	_, body := fetch(t, client, http.MethodGet, server.URL)
	assert.Equal(t, 2, hits, "a torn entry reads as a miss")
	assert.Equal(t, "payload", body)
}

func TestWithMaxAge(t *testing.T) {
	transport := NewTransport(t.TempDir(), zerolog.Nop(), WithMaxAge(time.Hour))
	assert.Equal(t, time.Hour, transport.maxAge)

	transport = NewTransport(t.TempDir(), zerolog.Nop(), WithMaxAge(0))
	assert.Equal(t, DefaultMaxAge, transport.maxAge, "zero keeps the default")
}

func TestCacheKey(t *testing.T) {
	get1, err := http.NewRequest(http.MethodGet, "https://host/series/1", nil)
	require.NoError(t, err)
	get2, err := http.NewRequest(http.MethodGet, "https://host/series/2", nil)
	require.NoError(t, err)
	head1, err := http.NewRequest(http.MethodHead, "https://host/series/1", nil)
	require.NoError(t, err)

	langDE, err := http.NewRequest(http.MethodGet, "https://host/series/1", nil)
	require.NoError(t, err)
	langDE.Header.Set("Accept-Language", "de")

	assert.Equal(t, cacheKey(get1), cacheKey(get1))
	assert.NotEqual(t, cacheKey(get1), cacheKey(get2))
	assert.NotEqual(t, cacheKey(get1), cacheKey(head1), "method is part of the key")
	assert.NotEqual(t, cacheKey(get1), cacheKey(langDE), "language is part of the key")
	assert.NotContains(t, cacheKey(get1), "/", "keys must be safe file names")
	assert.Equal(t, strings.ToLower(cacheKey(get1)), cacheKey(get1))
}
