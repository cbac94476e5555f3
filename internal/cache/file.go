// Package cache persists a single tide-series snapshot between process
// invocations. One slot, one writer per run: the external timer guarantees
// invocations do not overlap, and the atomic-rename write keeps a stale
// reader from ever seeing a torn file even if that assumption breaks.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lcary/tide-tracker/internal/models"
)

// envelope is the on-disk JSON shape of the cache slot.
type envelope struct {
	CapturedAt time.Time       `json:"captured_at"`
	Samples    []models.Sample `json:"samples"`
	Offline    bool            `json:"offline"`
}

type Store struct {
	path string
	ttl  time.Duration
}

func NewStore(path string, ttl time.Duration) *Store {
	return &Store{path: path, ttl: ttl}
}

// Get returns the cached samples if the slot exists, deserializes cleanly,
// holds a valid series, and is younger than the TTL. Every failure mode is
// a miss, never an error: a broken cache must not break the pipeline.
func (s *Store) Get(now time.Time) ([]models.Sample, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		log.Debug().Str("path", s.path).Msg("Cache miss: no readable cache file")
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Cache miss: corrupt cache file")
		return nil, false
	}

	age := now.Sub(env.CapturedAt)
	if age < 0 || age >= s.ttl {
		log.Debug().Dur("age", age).Dur("ttl", s.ttl).Msg("Cache miss: entry expired")
		return nil, false
	}

	if env.Offline {
		// Never serve a cached approximation as real data.
		log.Debug().Msg("Cache miss: entry was generated offline")
		return nil, false
	}

	if err := (models.Series{Samples: env.Samples}).Validate(); err != nil {
		log.Warn().Err(err).Msg("Cache miss: cached series violates invariants")
		return nil, false
	}

	log.Debug().Dur("age", age).Msg("Cache hit")
	return env.Samples, true
}

// Put overwrites the cache slot. The write goes to a temp file in the same
// directory followed by a rename, so a concurrent reader observes either
// the old snapshot or the new one, never a partial write.
func (s *Store) Put(series models.Series, now time.Time) error {
	data, err := json.Marshal(envelope{
		CapturedAt: now,
		Samples:    series.Samples,
		Offline:    series.Offline(),
	})
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}
