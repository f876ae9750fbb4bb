package handlers

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-painel-dengue/internal/models"
	"github.com/prefeitura-rio/app-painel-dengue/internal/observability"
	"github.com/prefeitura-rio/app-painel-dengue/internal/redisclient"
	"github.com/prefeitura-rio/app-painel-dengue/internal/services"
	"github.com/prefeitura-rio/app-painel-dengue/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DashboardHandlers serves the dashboard API and page
type DashboardHandlers struct {
	service *services.DashboardService
	charts  *services.ChartRenderer
	redis   *redisclient.Client
}

// NewDashboardHandlers creates the handlers; redis may be nil when caching is disabled
func NewDashboardHandlers(service *services.DashboardService, redis *redisclient.Client) *DashboardHandlers {
	return &DashboardHandlers{
		service: service,
		charts:  services.NewChartRenderer(),
		redis:   redis,
	}
}

// HealthCheck godoc
// @Summary Verificar saúde do serviço
// @Description Informa se o conjunto de dados está carregado e o estado do cache Redis
// @Tags health
// @Produce json
// @Success 200 {object} models.HealthResponse "Serviço saudável"
// @Failure 503 {object} models.HealthResponse "Conjunto de dados não carregado"
// @Router /health [get]
func (h *DashboardHandlers) HealthCheck(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "HealthCheck")
	defer span.End()

	dataset := h.service.Dataset()
	resp := models.HealthResponse{
		Status:     "healthy",
		Registros:  dataset.Len(),
		DataSource: "",
		Redis:      "disabled",
	}
	if dataset != nil {
		resp.DataSource = dataset.Source()
	}

	if h.redis != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := h.redis.Ping(pingCtx).Err(); err != nil {
			resp.Redis = "unavailable"
			observability.Logger().Warn("redis health check failed", zap.Error(err))
		} else {
			resp.Redis = "ok"
		}
	}

	if dataset == nil {
		resp.Status = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetOptions godoc
// @Summary Listar opções dos filtros
// @Description Retorna as opções de todos os filtros do painel e o intervalo de datas de notificação
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.OptionsResponse "Opções obtidas com sucesso"
// @Failure 503 {object} ErrorResponse "Conjunto de dados não carregado"
// @Router /options [get]
func (h *DashboardHandlers) GetOptions(c *gin.Context) {
	_, span := otel.Tracer("").Start(c.Request.Context(), "GetOptions")
	defer span.End()

	opts, err := h.service.Options()
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// GetDashboard godoc
// @Summary Calcular o painel
// @Description Aplica os filtros e retorna os agregados dos gráficos e os indicadores
// @Tags dashboard
// @Produce json
// @Param sexo query string false "Sexo (M, F, I)"
// @Param faixa_etaria query string false "Faixa etária (0-9, 10-19, 20-39, 40-59, 60+)"
// @Param municipio query string false "Município no formato 'MUNICIPIO (UF)'"
// @Param evolucao query int false "Código da evolução"
// @Param classificacao query int false "Código da classificação final"
// @Param hospitalizado query int false "Hospitalizado (1 Sim, 2 Não)"
// @Param raca query int false "Código de raça/cor"
// @Param gestante query int false "Código de gestante"
// @Param data_inicio query string false "Data inicial (AAAA-MM-DD)"
// @Param data_fim query string false "Data final (AAAA-MM-DD)"
// @Success 200 {object} models.DashboardResult "Painel calculado com sucesso"
// @Failure 400 {object} ErrorResponse "Filtros inválidos"
// @Failure 503 {object} ErrorResponse "Conjunto de dados não carregado"
// @Router /dashboard [get]
func (h *DashboardHandlers) GetDashboard(c *gin.Context) {
	result, ok := h.compute(c, "GetDashboard")
	if !ok {
		return
	}

	_, span := utils.TraceResponseSerialization(c.Request.Context(), "dashboard")
	c.JSON(http.StatusOK, result)
	span.End()
}

// GetChart godoc
// @Summary Renderizar gráfico
// @Description Renderiza um dos gráficos do painel (municipios, semanas, classificacao) em SVG ou PNG
// @Tags dashboard
// @Produce image/svg+xml
// @Produce image/png
// @Param chart path string true "Gráfico e formato, ex: municipios.svg"
// @Param sexo query string false "Sexo (M, F, I)"
// @Param faixa_etaria query string false "Faixa etária"
// @Param municipio query string false "Município"
// @Param data_inicio query string false "Data inicial (AAAA-MM-DD)"
// @Param data_fim query string false "Data final (AAAA-MM-DD)"
// @Success 200 {file} file "Imagem do gráfico"
// @Failure 400 {object} ErrorResponse "Filtros ou formato inválidos"
// @Failure 404 {object} ErrorResponse "Gráfico inexistente"
// @Router /charts/{chart} [get]
func (h *DashboardHandlers) GetChart(c *gin.Context) {
	kind, format, err := services.ParseChartName(c.Param("chart"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, ok := h.compute(c, "GetChart")
	if !ok {
		return
	}

	_, span := utils.TraceBusinessLogic(c.Request.Context(), "chart_render")
	defer span.End()
	utils.AddSpanAttribute(span, "chart.kind", string(kind))
	utils.AddSpanAttribute(span, "chart.format", string(format))

	var buf bytes.Buffer
	if err := h.charts.Render(&buf, kind, format, result); err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		observability.ChartRenders.WithLabelValues(string(kind), string(format), "error").Inc()
		observability.Logger().Error("failed to render chart", zap.String("chart", string(kind)), zap.Error(err))
		respondError(c, err)
		return
	}
	observability.ChartRenders.WithLabelValues(string(kind), string(format), "success").Inc()

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// ExportDashboard godoc
// @Summary Exportar painel em planilha
// @Description Exporta indicadores e agregados filtrados em uma planilha XLSX
// @Tags dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param sexo query string false "Sexo (M, F, I)"
// @Param municipio query string false "Município"
// @Param data_inicio query string false "Data inicial (AAAA-MM-DD)"
// @Param data_fim query string false "Data final (AAAA-MM-DD)"
// @Success 200 {file} file "Planilha XLSX"
// @Failure 400 {object} ErrorResponse "Filtros inválidos"
// @Router /dashboard/export.xlsx [get]
func (h *DashboardHandlers) ExportDashboard(c *gin.Context) {
	result, ok := h.compute(c, "ExportDashboard")
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := services.ExportWorkbook(&buf, result); err != nil {
		observability.Exports.WithLabelValues("error").Inc()
		observability.Logger().Error("failed to export dashboard", zap.Error(err))
		respondError(c, err)
		return
	}
	observability.Exports.WithLabelValues("success").Inc()

	c.Header("Content-Disposition", `attachment; filename="`+services.ExportFileName+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// compute parses the filters and runs the dashboard; it writes the error
// response itself and reports false on failure
func (h *DashboardHandlers) compute(c *gin.Context, operation string) (*models.DashboardResult, bool) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), operation)
	defer span.End()
	span.SetAttributes(attribute.String("operation", operation))

	_, parseSpan := utils.TraceInputParsing(ctx, "dashboard_filters")
	filters, err := models.ParseDashboardFilters(c.Request.URL.Query())
	if err != nil {
		utils.RecordErrorInSpan(parseSpan, err, map[string]interface{}{"query": c.Request.URL.RawQuery})
		parseSpan.End()
		observability.Logger().Debug("invalid dashboard filters", zap.Error(err))
		respondError(c, err)
		return nil, false
	}
	utils.AddSpanAttribute(parseSpan, "filters", filters.CacheKey())
	parseSpan.End()

	result, err := h.service.Compute(ctx, filters)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		respondError(c, err)
		return nil, false
	}
	return result, true
}
