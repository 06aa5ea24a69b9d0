package tvdb

import (
	"context"
	"errors"
	"net/http"
)

// TokenExpired reports whether the session must authenticate before the
// next API call: no token has ever been issued, or the held one is older
// than the expiry window.
func (c *Client) TokenExpired() bool {
	if c.session.issuedAt.IsZero() {
		return true
	}
	return c.now().Sub(c.session.issuedAt) > tokenLifetime
}

// Authenticate acquires a bearer token. Without a held token it performs
// a login; with one it attempts a refresh first and falls back to login
// only when the refresh is rejected with a 401. Any other refresh failure
// is returned unchanged.
//
// On success the token and its issue time are stored together as the new
// session.
func (c *Client) Authenticate(ctx context.Context) error {
	var (
		payload any
		err     error
	)

	if c.session.token != "" {
		payload, err = c.refreshToken(ctx)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
				c.logger.Debug().Msg("token refresh rejected, logging in again")
				payload, err = c.login(ctx)
			}
		}
	} else {
		payload, err = c.login(ctx)
	}
	if err != nil {
		return err
	}

	c.session = session{token: tokenFrom(payload), issuedAt: c.now()}
	c.logger.Debug().Msg("session authenticated")
	return nil
}

// ensureAuth is the gate in front of every token-requiring operation.
func (c *Client) ensureAuth(ctx context.Context) error {
	if !c.TokenExpired() {
		return nil
	}
	return c.Authenticate(ctx)
}

func (c *Client) login(ctx context.Context) (any, error) {
	body := map[string]string{
		"apikey":   c.apiKey,
		"username": c.username,
		"userpass": c.password,
	}
	return c.executeNoStore(ctx, "login", http.MethodPost, body)
}

func (c *Client) refreshToken(ctx context.Context) (any, error) {
	return c.executeNoStore(ctx, "refresh_token", http.MethodGet, nil)
}

// tokenFrom pulls the token field out of a login or refresh payload. A
// payload without one yields an empty token, mirroring how the service
// omits the field rather than erroring.
func tokenFrom(payload any) string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	token, _ := obj["token"].(string)
	return token
}
