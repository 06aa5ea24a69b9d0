package tvdb

import (
	"crypto/tls"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the TheTVDB API host used unless overridden.
const DefaultBaseURL = "https://api-dev.thetvdb.com"

const (
	defaultLanguage = "en"
	defaultTimeout  = 30 * time.Second

	// tokenLifetime is the client-side expiry window for an issued token.
	// Renewing before the server would start rejecting it saves a
	// guaranteed-failing round trip on every call after the cutoff.
	tokenLifetime = time.Hour
)

// session holds the bearer token together with its issue time. The two
// fields are always replaced as one value, never mutated separately.
type session struct {
	token    string
	issuedAt time.Time
}

// Client talks to the TheTVDB REST API. It owns the credentials, the
// current session token and the decision of when to (re)authenticate.
//
// A Client is not safe for concurrent use: the session state is updated
// without locking. Use one Client per goroutine or synchronize externally.
type Client struct {
	apiKey   string
	username string
	password string

	baseURL     string
	language    string
	selectFirst bool

	timeout     time.Duration
	insecureTLS bool
	httpClient  *http.Client
	logger      zerolog.Logger

	session session

	// now is replaceable in tests to exercise the expiry window.
	now func() time.Time
}

// NewClient creates a TheTVDB API client. The API key is required;
// username and password are passed to the login endpoint verbatim and may
// be empty for keys that do not need account context.
//
// No network traffic happens here: the first authenticated operation (or
// an explicit Authenticate call) performs the login.
func NewClient(apiKey, username, password string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client := &Client{
		apiKey:   apiKey,
		username: username,
		password: password,
		baseURL:  DefaultBaseURL,
		language: defaultLanguage,
		timeout:  defaultTimeout,
		logger:   logger,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: client.timeout}
		if client.insecureTLS {
			client.httpClient.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}
	}

	return client, nil
}

// Language returns the code sent in the Accept-Language header.
func (c *Client) Language() string {
	return c.language
}

// SetLanguage changes the Accept-Language value for subsequent requests.
// The code is stored verbatim; no validation is performed.
func (c *Client) SetLanguage(code string) {
	c.language = code
}

// headers builds the header set for a single request. The authorization
// header is present exactly when a token is held.
func (c *Client) headers() http.Header {
	h := http.Header{}
	h.Set("Accept-Language", c.language)
	h.Set("Content-Type", "application/json")
	if c.session.token != "" {
		h.Set("Authorization", "Bearer "+c.session.token)
	}
	return h
}

// trimBaseURL strips a trailing slash so joined URLs stay canonical.
func trimBaseURL(u string) string {
	return strings.TrimRight(u, "/")
}
