package httpcache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultMaxAge is how long a stored response stays servable.
const DefaultMaxAge = 10 * time.Minute

// HeaderFromCache marks responses served from disk instead of the network.
const HeaderFromCache = "X-From-Cache"

// Transport is an http.RoundTripper that serves eligible requests from an
// on-disk cache and stores fresh responses back into it. Only GET
// requests without a no-store directive are considered and only 200
// responses are stored; everything else passes straight through to the
// inner transport.
type Transport struct {
	inner  http.RoundTripper
	cache  *FileCache
	maxAge time.Duration
	logger zerolog.Logger

	// now is replaceable in tests to age entries.
	now func() time.Time
}

// Option configures a Transport.
type Option func(*Transport)

// WithMaxAge overrides how long stored responses stay servable.
func WithMaxAge(maxAge time.Duration) Option {
	return func(t *Transport) {
		if maxAge > 0 {
			t.maxAge = maxAge
		}
	}
}

// WithInnerTransport replaces the transport used for cache misses.
func WithInnerTransport(inner http.RoundTripper) Option {
	return func(t *Transport) {
		if inner != nil {
			t.inner = inner
		}
	}
}

// NewTransport creates a caching RoundTripper storing responses under dir.
func NewTransport(dir string, logger zerolog.Logger, opts ...Option) *Transport {
	t := &Transport{
		inner:  http.DefaultTransport,
		cache:  NewFileCache(dir, logger),
		maxAge: DefaultMaxAge,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet || noStore(req) {
		return t.inner.RoundTrip(req)
	}

	key := cacheKey(req)
	if entry, ok := t.cache.Get(key); ok && t.now().Sub(entry.CachedAt) <= t.maxAge {
		t.logger.Debug().Str("url", req.URL.String()).Msg("serving response from cache")
		return entry.response(req), nil
	}

	resp, err := t.inner.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read response for caching: %w", err)
	}

	entry := Entry{
		Status:   resp.StatusCode,
		Proto:    resp.Proto,
		Header:   resp.Header.Clone(),
		Body:     body,
		CachedAt: t.now(),
	}
	if err := t.cache.Set(key, entry); err != nil {
		// A broken cache must not break the request.
		t.logger.Warn().Err(err).Str("url", req.URL.String()).Msg("failed to store response in cache")
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}

// response rebuilds an http.Response from a stored entry.
func (e Entry) response(req *http.Request) *http.Response {
	header := e.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	header.Set(HeaderFromCache, "1")

	resp := &http.Response{
		StatusCode:    e.Status,
		Status:        fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status)),
		Proto:         e.Proto,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(e.Body)),
		ContentLength: int64(len(e.Body)),
		Request:       req,
	}
	if major, minor, ok := http.ParseHTTPVersion(e.Proto); ok {
		resp.ProtoMajor, resp.ProtoMinor = major, minor
	}
	return resp
}

// noStore reports whether the request opted out of caching with a
// Cache-Control no-store directive.
func noStore(req *http.Request) bool {
	return strings.Contains(strings.ToLower(req.Header.Get("Cache-Control")), "no-store")
}

// cacheKey derives the on-disk name for a request from its method, full
// URL and language. Response bodies differ per Accept-Language, so the
// header joins the signature.
func cacheKey(req *http.Request) string {
	sig := req.Method + " " + req.URL.String()
	if lang := req.Header.Get("Accept-Language"); lang != "" {
		sig += " " + lang
	}
	sum := sha256.Sum256([]byte(sig))
	return hex.EncodeToString(sum[:])
}
