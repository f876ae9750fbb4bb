package services

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/prefeitura-rio/app-painel-dengue/internal/models"
	"github.com/prefeitura-rio/app-painel-dengue/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache is an in-memory ResultCache with injectable failures
type memoryCache struct {
	entries map[string]*models.DashboardResult
	getErr  error
	setErr  error
	gets    int
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]*models.DashboardResult)}
}

func (c *memoryCache) Get(_ context.Context, key string) (*models.DashboardResult, bool, error) {
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	r, ok := c.entries[key]
	return r, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, result *models.DashboardResult) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = result
	return nil
}

func TestDashboardService_ComputeWithoutCache(t *testing.T) {
	svc := NewDashboardService(loadSampleDataset(t), nil)

	result, err := svc.Compute(context.Background(), models.DashboardFilters{})
	require.NoError(t, err)
	assert.Equal(t, 8, result.Indicadores.CasosTotais)
}

func TestDashboardService_NilDataset(t *testing.T) {
	svc := NewDashboardService(nil, nil)

	_, err := svc.Compute(context.Background(), models.DashboardFilters{})
	assert.ErrorIs(t, err, models.ErrDatasetNotLoaded)

	_, err = svc.Options()
	assert.ErrorIs(t, err, models.ErrDatasetNotLoaded)
}

func TestDashboardService_CacheMissThenHit(t *testing.T) {
	ds := loadSampleDataset(t)
	cache := newMemoryCache()
	svc := NewDashboardService(ds, cache)
	f := mustFilters(t, url.Values{"sexo": {"F"}})

	misses := testutil.ToFloat64(observability.CacheHits.WithLabelValues("miss"))
	hits := testutil.ToFloat64(observability.CacheHits.WithLabelValues("hit"))

	first, err := svc.Compute(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Contains(t, cache.entries, DashboardCacheKey(ds.Fingerprint(), f))

	second, err := svc.Compute(context.Background(), f)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.sets)

	assert.Equal(t, misses+1, testutil.ToFloat64(observability.CacheHits.WithLabelValues("miss")))
	assert.Equal(t, hits+1, testutil.ToFloat64(observability.CacheHits.WithLabelValues("hit")))
}

func TestDashboardService_CacheFailuresDegrade(t *testing.T) {
	cache := newMemoryCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	svc := NewDashboardService(loadSampleDataset(t), cache)

	errorsBefore := testutil.ToFloat64(observability.CacheHits.WithLabelValues("error"))

	result, err := svc.Compute(context.Background(), models.DashboardFilters{})
	require.NoError(t, err)
	assert.Equal(t, 8, result.Indicadores.CasosTotais)
	assert.Equal(t, 1, cache.gets)
	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, errorsBefore+1, testutil.ToFloat64(observability.CacheHits.WithLabelValues("error")))
}

func TestDashboardCacheKey(t *testing.T) {
	a := DashboardCacheKey("abc", mustFilters(t, url.Values{"sexo": {"F"}}))
	b := DashboardCacheKey("abc", mustFilters(t, url.Values{"sexo": {"F"}}))
	c := DashboardCacheKey("abc", mustFilters(t, url.Values{"sexo": {"M"}}))
	d := DashboardCacheKey("def", mustFilters(t, url.Values{"sexo": {"F"}}))

	assert.Regexp(t, `^painel:dashboard:abc:[0-9a-f]{16}$`, a)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
}

func TestDashboardService_Options(t *testing.T) {
	svc := NewDashboardService(loadSampleDataset(t), nil)

	opts, err := svc.Options()
	require.NoError(t, err)

	assert.Len(t, opts.Sexo, 3)
	assert.Len(t, opts.FaixaEtaria, 5)
	assert.Len(t, opts.Municipio, 6)
	assert.Equal(t, models.Option{Label: "Angra dos Reis (RJ)", Value: "Angra dos Reis (RJ)"}, opts.Municipio[0])
	assert.Len(t, opts.Evolucao, 5)
	assert.Len(t, opts.Classificacao, 5)
	assert.Len(t, opts.Hospitalizado, 2)
	assert.Len(t, opts.Raca, 6)
	assert.Len(t, opts.Gestante, 7)
	require.NotNil(t, opts.Datas.Inicio)
	assert.Equal(t, "2024-01-02", opts.Datas.Inicio.Format("2006-01-02"))
}
