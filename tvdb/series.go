package tvdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// SearchRequest identifies series by name or by an external id. At least
// one field must be set; every set field is sent as a query parameter.
type SearchRequest struct {
	Name     string
	IMDBID   string
	Zap2itID string
}

func (r SearchRequest) empty() bool {
	return r.Name == "" && r.IMDBID == "" && r.Zap2itID == ""
}

func (r SearchRequest) params() url.Values {
	params := url.Values{}
	if r.Name != "" {
		params.Set("name", r.Name)
	}
	if r.IMDBID != "" {
		params.Set("imdbId", r.IMDBID)
	}
	if r.Zap2itID != "" {
		params.Set("zap2itId", r.Zap2itID)
	}
	return params
}

// SearchSeries looks up series matching the request. It returns the match
// list, or the first match alone when the client was built with
// WithSelectFirst (ErrNoResults if that list is empty).
func (c *Client) SearchSeries(ctx context.Context, req SearchRequest) (any, error) {
	if req.empty() {
		return nil, ErrNoSearchTerms
	}
	if err := c.ensureAuth(ctx); err != nil {
		return nil, err
	}

	payload, err := c.execute(ctx, "search", http.MethodGet, []string{"series"}, nil, req.params())
	if err != nil {
		return nil, err
	}
	data, err := unwrapData(payload)
	if err != nil {
		return nil, err
	}

	if c.selectFirst {
		matches, ok := data.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: expected a match list, got %T", ErrMalformedResponse, data)
		}
		if len(matches) == 0 {
			return nil, ErrNoResults
		}
		return matches[0], nil
	}
	return data, nil
}

// GetSeries retrieves a single series record by id.
func (c *Client) GetSeries(ctx context.Context, seriesID int64) (any, error) {
	if err := c.ensureAuth(ctx); err != nil {
		return nil, err
	}
	payload, err := c.execute(ctx, "series", http.MethodGet, []string{formatID(seriesID)}, nil, nil)
	if err != nil {
		return nil, err
	}
	return unwrapData(payload)
}

// GetEpisodes lists the episodes of a series. The service pages at 100
// episodes; pass page > 0 to pick a page, 0 for the server default
// (the first page).
func (c *Client) GetEpisodes(ctx context.Context, seriesID int64, page int) (any, error) {
	if err := c.ensureAuth(ctx); err != nil {
		return nil, err
	}
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	payload, err := c.execute(ctx, "series", http.MethodGet, []string{formatID(seriesID), "episodes"}, nil, query)
	if err != nil {
		return nil, err
	}
	return unwrapData(payload)
}

// GetEpisodesSummary retrieves the season and episode counts of a series.
// Season "0" collects the episodes the service considers specials.
func (c *Client) GetEpisodesSummary(ctx context.Context, seriesID int64) (any, error) {
	if err := c.ensureAuth(ctx); err != nil {
		return nil, err
	}
	payload, err := c.execute(ctx, "series", http.MethodGet, []string{formatID(seriesID), "episodes", "summary"}, nil, nil)
	if err != nil {
		return nil, err
	}
	return unwrapData(payload)
}

// GetSeriesImageInfo retrieves the image counts available for a series.
func (c *Client) GetSeriesImageInfo(ctx context.Context, seriesID int64) (any, error) {
	if err := c.ensureAuth(ctx); err != nil {
		return nil, err
	}
	payload, err := c.execute(ctx, "series", http.MethodGet, []string{formatID(seriesID), "images"}, nil, nil)
	if err != nil {
		return nil, err
	}
	return unwrapData(payload)
}

// GetEpisode retrieves the full record of a single episode by id.
func (c *Client) GetEpisode(ctx context.Context, episodeID int64) (any, error) {
	if err := c.ensureAuth(ctx); err != nil {
		return nil, err
	}
	payload, err := c.execute(ctx, "episodes", http.MethodGet, []string{formatID(episodeID)}, nil, nil)
	if err != nil {
		return nil, err
	}
	return unwrapData(payload)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
