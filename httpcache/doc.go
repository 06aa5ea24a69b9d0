// Package httpcache provides an on-disk cache for HTTP responses,
// packaged as an http.RoundTripper so it can sit transparently inside
// any http.Client.
//
// Each cached response lives in its own JSON file under the cache
// directory, named by a digest of the request method, URL and
// Accept-Language header. Responses served from disk carry the
// X-From-Cache header. Only GET requests and 200 responses participate;
// requests marked Cache-Control: no-store and anything else pass through
// untouched.
//
//	transport := httpcache.NewTransport(".tvdb_cache", logger,
//		httpcache.WithMaxAge(10*time.Minute),
//	)
//	client := &http.Client{Transport: transport}
package httpcache
