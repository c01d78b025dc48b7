package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"inmobiliaria_backend/internal/properties/domain"
	"inmobiliaria_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
properties:
  - _id: p1
    title: Piso luminoso en el centro
    slug: { current: piso-centro }
    price: 250000
    location: Madrid Centro
    propertyType: piso
    status: en venta
    squareMeters: 90
    bedrooms: 3
    isFeatured: true
    createdAt: "2026-01-10T10:00:00Z"
  - _id: p2
    title: Chalet con jardín
    slug: { current: chalet-norte }
    price: 480000
    location: Zona Norte
    propertyType: chalet
    status: en venta
    squareMeters: 210
    createdAt: "2026-03-02T10:00:00Z"
`

func TestParseFile(t *testing.T) {
	src, err := ParseFile([]byte(sampleYAML))
	require.NoError(t, err)
	ctx := context.Background()

	all, err := src.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "p2", all[0].ID, "newest first")
	require.NotNil(t, all[1].Bedrooms)
	assert.Equal(t, 3, *all[1].Bedrooms)

	featured, err := src.Featured(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "p1", featured[0].ID)

	prop, err := src.BySlug(ctx, "chalet-norte")
	require.NoError(t, err)
	assert.Equal(t, int64(480000), prop.Price)

	_, err = src.BySlug(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseFileRejectsGarbage(t *testing.T) {
	_, err := ParseFile([]byte("properties: [unterminated"))
	assert.Error(t, err)
}

func sanityServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.Equal(t, "/v2024-01-01/data/query/production", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")

		if slug := r.URL.Query().Get("$slug"); slug != "" {
			if slug == `"piso-centro"` {
				_, _ = w.Write([]byte(`{"result":{"_id":"p1","title":"Piso","slug":{"current":"piso-centro"},"price":250000}}`))
				return
			}
			_, _ = w.Write([]byte(`{"result":null}`))
			return
		}
		_, _ = w.Write([]byte(`{"result":[{"_id":"p1","slug":{"current":"piso-centro"},"price":250000,"isFeatured":true,"description":[{"_type":"block"}]}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newSanity(baseURL string) *SanityClient {
	return NewSanityClient(SanityConfig{
		ProjectID:  "abc123",
		Dataset:    "production",
		APIVersion: "2024-01-01",
		BaseURL:    baseURL,
	}, logger.Nop())
}

func TestSanityClient(t *testing.T) {
	var hits int32
	client := newSanity(sanityServer(t, &hits).URL)
	ctx := context.Background()

	all, err := client.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsFeatured)
	assert.NotNil(t, all[0].Description)

	prop, err := client.BySlug(ctx, "piso-centro")
	require.NoError(t, err)
	assert.Equal(t, "Piso", prop.Title)

	_, err = client.BySlug(ctx, "desconocido")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSanityClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newSanity(srv.URL).All(context.Background())
	assert.Error(t, err)
}

func TestSanityEndpointDefaults(t *testing.T) {
	c := NewSanityClient(SanityConfig{ProjectID: "abc123", Dataset: "production", APIVersion: "2024-01-01"}, logger.Nop())
	assert.Equal(t, "https://abc123.apicdn.sanity.io/v2024-01-01/data/query/production", c.endpoint)

	c = NewSanityClient(SanityConfig{ProjectID: "abc123", Dataset: "production", APIVersion: "v2024-01-01", Token: "t"}, logger.Nop())
	assert.Equal(t, "https://abc123.api.sanity.io/v2024-01-01/data/query/production", c.endpoint)
}

type failingSource struct{}

func (failingSource) All(context.Context) ([]domain.Property, error) {
	return nil, errors.New("cms down")
}
func (failingSource) Featured(context.Context) ([]domain.Property, error) {
	return nil, errors.New("cms down")
}
func (failingSource) BySlug(context.Context, string) (domain.Property, error) {
	return domain.Property{}, errors.New("cms down")
}

func TestFallback(t *testing.T) {
	file, err := ParseFile([]byte(sampleYAML))
	require.NoError(t, err)

	var reported []string
	f := NewFallback(failingSource{}, file, func(op string, _ error) { reported = append(reported, op) })
	ctx := context.Background()

	all, err := f.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.BySlug(ctx, "piso-centro")
	require.NoError(t, err)
	assert.Equal(t, []string{"all", "by_slug"}, reported)
}

func TestFallbackKeepsNotFound(t *testing.T) {
	primary := NewStaticSource(nil)
	secondary, err := ParseFile([]byte(sampleYAML))
	require.NoError(t, err)

	_, err = NewFallback(primary, secondary, nil).BySlug(context.Background(), "piso-centro")
	assert.ErrorIs(t, err, ErrNotFound)
}

func newCache(t *testing.T, origin Source) (*CachedSource, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCachedSource(origin, rdb, time.Minute, logger.Nop()), mr
}

func TestCachedSourceServesFromRedis(t *testing.T) {
	var hits int32
	cache, mr := newCache(t, newSanity(sanityServer(t, &hits).URL))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		all, err := cache.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.True(t, mr.Exists(keyAll))

	mr.FastForward(2 * time.Minute)
	_, err := cache.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestCachedSourceCachesUnknownSlug(t *testing.T) {
	var hits int32
	cache, _ := newCache(t, newSanity(sanityServer(t, &hits).URL))
	ctx := context.Background()

	_, err := cache.BySlug(ctx, "desconocido")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = cache.BySlug(ctx, "desconocido")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	prop, err := cache.BySlug(ctx, "piso-centro")
	require.NoError(t, err)
	assert.Equal(t, "p1", prop.ID)
}

func TestCachedSourceFallsThroughWhenRedisDown(t *testing.T) {
	file, err := ParseFile([]byte(sampleYAML))
	require.NoError(t, err)

	cache, mr := newCache(t, file)
	mr.Close()

	all, err := cache.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestInvalidate(t *testing.T) {
	file, err := ParseFile([]byte(sampleYAML))
	require.NoError(t, err)
	cache, mr := newCache(t, file)
	ctx := context.Background()

	_, _ = cache.All(ctx)
	_, _ = cache.Featured(ctx)
	require.NoError(t, mr.Set("unrelated", "x"))

	require.NoError(t, cache.Invalidate(ctx))
	assert.False(t, mr.Exists(keyAll))
	assert.False(t, mr.Exists(keyFeatured))
	assert.True(t, mr.Exists("unrelated"))
}
