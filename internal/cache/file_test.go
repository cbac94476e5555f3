package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcary/tide-tracker/internal/models"
)

var cacheNow = time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

func liveSeries() models.Series {
	samples := make([]models.Sample, 0, models.SampleCount)
	for _, m := range models.CanonicalOffsets() {
		samples = append(samples, models.Sample{
			OffsetMinutes: m,
			HeightFt:      5.0 + float64(m)*0.002,
		})
	}
	return models.Series{Samples: samples, Source: models.SourceLive}
}

func newTestStore(t *testing.T, ttl time.Duration) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tide_cache.json")
	return NewStore(path, ttl), path
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t, 30*time.Minute)
	series := liveSeries()

	require.NoError(t, store.Put(series, cacheNow))

	got, ok := store.Get(cacheNow.Add(10 * time.Minute))
	require.True(t, ok)
	assert.Equal(t, series.Samples, got)
}

func TestStoreTTLBoundary(t *testing.T) {
	store, _ := newTestStore(t, 30*time.Minute)
	require.NoError(t, store.Put(liveSeries(), cacheNow))

	_, ok := store.Get(cacheNow.Add(29 * time.Minute))
	assert.True(t, ok, "entry younger than TTL must hit")

	_, ok = store.Get(cacheNow.Add(30 * time.Minute))
	assert.False(t, ok, "entry at TTL must miss")

	_, ok = store.Get(cacheNow.Add(31 * time.Minute))
	assert.False(t, ok, "entry older than TTL must miss")
}

func TestStoreFutureEntryMisses(t *testing.T) {
	store, _ := newTestStore(t, 30*time.Minute)
	// A clock step backwards makes the entry appear to be from the
	// future; trusting its age would serve it long past the TTL.
	require.NoError(t, store.Put(liveSeries(), cacheNow.Add(time.Hour)))

	_, ok := store.Get(cacheNow)
	assert.False(t, ok)
}

func TestStoreMissingFileMisses(t *testing.T) {
	store, _ := newTestStore(t, 30*time.Minute)

	_, ok := store.Get(cacheNow)
	assert.False(t, ok)
}

func TestStoreCorruptFileMisses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not JSON", body: "{{{"},
		{name: "empty", body: ""},
		{name: "wrong shape", body: `{"captured_at": "2026-08-23T12:00:00Z", "samples": [{"offset_minutes": 0, "tide_ft": 5.0}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, path := newTestStore(t, 30*time.Minute)
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, ok := store.Get(cacheNow)
			assert.False(t, ok)
		})
	}
}

func TestStoreOfflineEntryMisses(t *testing.T) {
	store, _ := newTestStore(t, 30*time.Minute)
	series := liveSeries()
	series.Source = models.SourceFallback

	require.NoError(t, store.Put(series, cacheNow))

	_, ok := store.Get(cacheNow.Add(time.Minute))
	assert.False(t, ok)
}

func TestStorePutLeavesNoTempFiles(t *testing.T) {
	store, path := newTestStore(t, 30*time.Minute)

	require.NoError(t, store.Put(liveSeries(), cacheNow))
	require.NoError(t, store.Put(liveSeries(), cacheNow.Add(time.Minute)))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.Contains(entries[0].Name(), ".tmp-"))
}

func TestStorePutOverwrites(t *testing.T) {
	store, _ := newTestStore(t, 30*time.Minute)

	first := liveSeries()
	require.NoError(t, store.Put(first, cacheNow))

	second := liveSeries()
	for i := range second.Samples {
		second.Samples[i].HeightFt += 1.5
	}
	require.NoError(t, store.Put(second, cacheNow.Add(time.Minute)))

	got, ok := store.Get(cacheNow.Add(2 * time.Minute))
	require.True(t, ok)
	assert.Equal(t, second.Samples, got)
}
