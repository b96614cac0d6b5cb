package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocode(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  string
		wantLat  float64
		wantLon  float64
		wantHit  bool
		wantName string
	}{
		{
			name:     "match",
			status:   http.StatusOK,
			body:     `[{"lat":"48.8588897","lon":"2.3200410","display_name":"Paris, Île-de-France, France"}]`,
			wantLat:  48.8588897,
			wantLon:  2.3200410,
			wantHit:  true,
			wantName: "Paris, Île-de-France, France",
		},
		{
			name:    "no match",
			status:  http.StatusOK,
			body:    `[]`,
			wantHit: false,
		},
		{
			name:    "server error",
			status:  http.StatusServiceUnavailable,
			body:    `unavailable`,
			wantErr: "status 503",
		},
		{
			name:    "bad coordinates",
			status:  http.StatusOK,
			body:    `[{"lat":"not-a-number","lon":"2.3","display_name":"x"}]`,
			wantErr: "bad coordinates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/search", r.URL.Path)
				assert.Equal(t, "json", r.URL.Query().Get("format"))
				assert.Equal(t, "Paris, France", r.URL.Query().Get("q"))
				assert.NotEmpty(t, r.Header.Get("User-Agent"))

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(WithBaseURL(srv.URL), WithRateLimit(1000))

			result, err := client.Geocode(context.Background(), "Paris, France")

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.wantHit, result.Matched)
			if tt.wantHit {
				assert.InDelta(t, tt.wantLat, result.Latitude, 1e-6)
				assert.InDelta(t, tt.wantLon, result.Longitude, 1e-6)
				assert.Equal(t, tt.wantName, result.DisplayName)
			}
		})
	}
}

func TestGeocodeUsesCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[{"lat":"44.84","lon":"-0.58","display_name":"Bordeaux, France"}]`))
	}))
	defer srv.Close()

	cache, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"), 30)
	require.NoError(t, err)
	defer cache.Close()

	client := NewClient(WithBaseURL(srv.URL), WithRateLimit(1000), WithCache(cache))

	first, err := client.Geocode(context.Background(), "Bordeaux, France")
	require.NoError(t, err)
	require.True(t, first.Matched)

	second, err := client.Geocode(context.Background(), "bordeaux,   france")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load(), "normalized repeat query should hit the cache")
}

func TestSQLiteCacheRoundTrip(t *testing.T) {
	cache, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"), 0)
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	key := cacheKey("Toulouse, France")

	miss, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, miss)

	want := &Result{Latitude: 43.6, Longitude: 1.44, DisplayName: "Toulouse", Matched: true}
	require.NoError(t, cache.Put(ctx, key, want))

	got, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Overwrite with a non-match.
	require.NoError(t, cache.Put(ctx, key, &Result{Matched: false}))
	got, err = cache.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Matched)
}

func TestCacheKeyNormalization(t *testing.T) {
	t.Parallel()
	assert.Equal(t, cacheKey("Paris,  France"), cacheKey("paris, france"))
	assert.NotEqual(t, cacheKey("Paris"), cacheKey("Lyon"))
}
