package tvdb

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host. Useful for the
// production host, a mirror, or a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = trimBaseURL(baseURL)
		}
	}
}

// WithLanguage sets the initial Accept-Language code.
func WithLanguage(code string) Option {
	return func(c *Client) {
		if code != "" {
			c.language = code
		}
	}
}

// WithHTTPClient replaces the default HTTP client, typically to inject a
// caching transport. WithTimeout and WithInsecureTLS have no effect on a
// client supplied this way.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithInsecureTLS disables certificate verification on the default HTTP
// client. Use with caution and only against hosts you control.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.insecureTLS = true
	}
}

// WithSelectFirst makes SearchSeries return the first match alone instead
// of the full match list.
func WithSelectFirst(selectFirst bool) Option {
	return func(c *Client) {
		c.selectFirst = selectFirst
	}
}
