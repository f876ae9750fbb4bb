package services

import (
	"context"
	"time"

	"github.com/prefeitura-rio/app-painel-dengue/internal/logging"
	"github.com/prefeitura-rio/app-painel-dengue/internal/models"
	"github.com/prefeitura-rio/app-painel-dengue/internal/observability"
	"github.com/prefeitura-rio/app-painel-dengue/internal/utils"
	"go.uber.org/zap"
)

// DashboardService answers dashboard queries over the in-memory dataset,
// optionally backed by a result cache
type DashboardService struct {
	dataset *Dataset
	cache   ResultCache
	logger  *zap.Logger
}

// NewDashboardService creates the service; cache may be nil
func NewDashboardService(dataset *Dataset, cache ResultCache) *DashboardService {
	return &DashboardService{
		dataset: dataset,
		cache:   cache,
		logger:  logging.Logger,
	}
}

// Dataset returns the dataset served by this service
func (s *DashboardService) Dataset() *Dataset {
	return s.dataset
}

// Compute filters and aggregates the dataset. Cache failures are logged and
// never fail the request.
func (s *DashboardService) Compute(ctx context.Context, f models.DashboardFilters) (*models.DashboardResult, error) {
	if s.dataset == nil {
		return nil, models.ErrDatasetNotLoaded
	}

	key := DashboardCacheKey(s.dataset.Fingerprint(), f)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			observability.CacheHits.WithLabelValues("error").Inc()
			s.logger.Warn("dashboard cache read failed", zap.String("key", key), zap.Error(err))
		case ok:
			observability.CacheHits.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			observability.CacheHits.WithLabelValues("miss").Inc()
		}
	}

	_, span := utils.TraceBusinessLogic(ctx, "dashboard_compute")
	start := time.Now()
	result := Compute(s.dataset, f)
	elapsed := time.Since(start)
	utils.AddSpanAttribute(span, "dashboard.filtered_rows", result.Indicadores.CasosTotais)
	utils.AddSpanAttribute(span, "dashboard.total_rows", result.TotalRegistros)
	span.End()

	observability.DashboardComputeDuration.Observe(elapsed.Seconds())
	observability.DashboardFilteredRows.Observe(float64(result.Indicadores.CasosTotais))
	s.logger.Debug("dashboard computed",
		zap.String("filters", f.CacheKey()),
		zap.Int("rows", result.Indicadores.CasosTotais),
		zap.Duration("duration", elapsed),
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return result, nil
}

// Options lists every filter option, including the dataset's municipalities
// and notification date bounds
func (s *DashboardService) Options() (*models.OptionsResponse, error) {
	if s.dataset == nil {
		return nil, models.ErrDatasetNotLoaded
	}

	municipios := s.dataset.Municipios()
	municipioOpts := make([]models.Option, 0, len(municipios))
	for _, m := range municipios {
		municipioOpts = append(municipioOpts, models.Option{Label: m, Value: m})
	}

	return &models.OptionsResponse{
		Sexo:          models.SexoOptions,
		FaixaEtaria:   models.FaixaEtariaOptions(),
		Municipio:     municipioOpts,
		Evolucao:      models.Evolucoes.Options(),
		Classificacao: models.Classificacoes.Options(),
		Hospitalizado: models.Hospitalizacoes.Options(),
		Raca:          models.Racas.Options(),
		Gestante:      models.Gestantes.Options(),
		Datas:         s.dataset.DateBounds(),
	}, nil
}
