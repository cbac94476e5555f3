// Package tide turns raw station data into the canonical 24-hour series
// and owns the cache -> live -> fallback acquisition policy.
package tide

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lcary/tide-tracker/internal/cache"
	"github.com/lcary/tide-tracker/internal/models"
	"github.com/lcary/tide-tracker/internal/station"
)

// Fetcher is the station-data dependency of the service.
type Fetcher interface {
	Fetch(ctx context.Context, now time.Time) ([]station.RawSample, error)
}

// Service orchestrates series acquisition. It holds the only handle to the
// cache store: no other component reads or writes the slot.
type Service struct {
	cacheStore *cache.Store
	client     Fetcher
}

func NewService(cacheStore *cache.Store, client Fetcher) *Service {
	return &Service{
		cacheStore: cacheStore,
		client:     client,
	}
}

// GetCurrentSeries walks the acquisition state machine
//
//	TryCache -> TryLive -> Fallback -> Done
//
// and always returns a valid, tagged series. Every acquisition failure is
// absorbed here; callers only ever see the final series.
func (s *Service) GetCurrentSeries(ctx context.Context, now time.Time) models.Series {
	// TryCache
	if samples, ok := s.cacheStore.Get(now); ok {
		log.Info().Msg("Serving tide series from cache")
		return models.Series{Samples: samples, Source: models.SourceCached}
	}

	// TryLive
	if series, ok := s.tryLive(ctx, now); ok {
		return series
	}

	// Fallback: cannot fail.
	log.Info().Msg("Serving synthetic fallback tide series")
	return Approximate(now)
}

func (s *Service) tryLive(ctx context.Context, now time.Time) (models.Series, bool) {
	raw, err := s.client.Fetch(ctx, now)
	if err != nil {
		log.Warn().Err(err).Msg("Live fetch failed")
		return models.Series{}, false
	}

	samples, err := Resample(raw, now)
	if err != nil {
		log.Warn().Err(err).Msg("Resampling live data failed")
		return models.Series{}, false
	}

	series := models.Series{Samples: samples, Source: models.SourceLive}

	// A failed cache write costs the next invocation a fetch, nothing more.
	if err := s.cacheStore.Put(series, now); err != nil {
		log.Warn().Err(err).Msg("Caching tide series failed")
	}

	log.Info().Msg("Serving live tide series")
	return series, true
}
