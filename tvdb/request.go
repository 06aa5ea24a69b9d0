package tvdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// execute performs one API request and returns the decoded body.
//
// The return value is a map[string]any for JSON objects, a []any for JSON
// arrays, and the raw text for empty or non-JSON bodies. Responses outside
// the 2xx range come back as an *APIError carrying the status code.
func (c *Client) execute(ctx context.Context, service, method string, pathArgs []string, body any, query url.Values) (any, error) {
	return c.do(ctx, service, method, pathArgs, body, query, c.headers())
}

// executeNoStore is execute for the token endpoints. Their responses must
// always come from the service, so the request carries a no-store
// directive for any caching transport sitting in the HTTP client.
func (c *Client) executeNoStore(ctx context.Context, service, method string, body any) (any, error) {
	header := c.headers()
	header.Set("Cache-Control", "no-store")
	return c.do(ctx, service, method, nil, body, nil, header)
}

// do builds, sends and decodes one HTTP request.
func (c *Client) do(ctx context.Context, service, method string, pathArgs []string, body any, query url.Values, header http.Header) (any, error) {
	if method == "" {
		method = http.MethodGet
	}

	requestURL := joinURL(append([]string{c.baseURL, service}, pathArgs...)...)
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header = header

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Connection, DNS and timeout failures are fatal for the call.
		c.logger.Error().Err(err).Str("method", method).Str("url", requestURL).Msg("api request failed")
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Int("status", resp.StatusCode).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(respBody),
		}
	}

	if len(respBody) == 0 {
		return "", nil
	}

	var payload any
	if err := json.Unmarshal(respBody, &payload); err != nil {
		// Non-JSON success bodies pass through as raw text.
		return string(respBody), nil
	}
	return payload, nil
}

// joinURL joins URL fragments with single slashes, tolerating stray
// leading or trailing slashes on any fragment.
func joinURL(parts ...string) string {
	trimmed := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed = append(trimmed, strings.Trim(part, "/"))
	}
	return strings.Join(trimmed, "/")
}

// unwrapData extracts the payload nested under the data key that every
// record-bearing endpoint wraps its result in.
func unwrapData(payload any) (any, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON object, got %T", ErrMalformedResponse, payload)
	}
	data, ok := obj["data"]
	if !ok {
		return nil, fmt.Errorf("%w: missing data field", ErrMalformedResponse)
	}
	return data, nil
}
