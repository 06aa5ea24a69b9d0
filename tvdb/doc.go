// Package tvdb provides a client for TheTVDB v2 REST API.
//
// The client manages the full token lifecycle: it logs in with the
// configured credentials on the first call, reuses the bearer token for
// subsequent calls, refreshes it once it ages past the expiry window and
// falls back to a fresh login when the service rejects the refresh.
// Callers never authenticate explicitly; every operation runs behind the
// same gate.
//
// # Usage
//
// Create a client with an API key and account credentials:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tvdb.NewClient("api-key", "user", "pass", logger,
//		tvdb.WithLanguage("en"),
//		tvdb.WithSelectFirst(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	series, err := client.SearchSeries(ctx, tvdb.SearchRequest{Name: "Lost"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Results are the service's JSON payloads decoded as-is: map[string]any
// for records, []any for lists. The package deliberately carries no typed
// model of series or episodes; it passes through whatever the remote
// schema says today.
//
// # Caching
//
// Response caching belongs to the HTTP transport, not the client. Inject
// a caching transport with WithHTTPClient:
//
//	cached := &http.Client{Transport: httpcache.NewTransport(".tvdb_cache", logger)}
//	client, err := tvdb.NewClient("api-key", "user", "pass", logger,
//		tvdb.WithHTTPClient(cached),
//	)
//
// # Errors
//
// Transport failures and non-2xx statuses surface unchanged; nothing is
// retried beyond the single refresh-to-login fallback inside
// Authenticate. Non-2xx responses are *APIError values exposing the
// status code:
//
//	var apiErr *tvdb.APIError
//	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
//		// no such series
//	}
package tvdb
