package tvdb

import (
	"context"
)

// API defines the series and episode operations the client exposes.
// Callers that want a fake in tests can depend on this instead of the
// concrete Client.
type API interface {
	// SearchSeries looks up series by name, imdb id or zap2it id.
	SearchSeries(ctx context.Context, req SearchRequest) (any, error)

	// GetSeries retrieves a single series record.
	GetSeries(ctx context.Context, seriesID int64) (any, error)

	// GetEpisodes lists episodes for a series, one page at a time.
	GetEpisodes(ctx context.Context, seriesID int64, page int) (any, error)

	// GetEpisodesSummary retrieves season and episode counts.
	GetEpisodesSummary(ctx context.Context, seriesID int64) (any, error)

	// GetSeriesImageInfo retrieves available image counts.
	GetSeriesImageInfo(ctx context.Context, seriesID int64) (any, error)

	// GetEpisode retrieves a single episode record.
	GetEpisode(ctx context.Context, episodeID int64) (any, error)
}

var _ API = (*Client)(nil)
