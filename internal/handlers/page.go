package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-painel-dengue/internal/models"
	"github.com/prefeitura-rio/app-painel-dengue/internal/observability"
	"github.com/prefeitura-rio/app-painel-dengue/internal/utils"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

//go:embed templates/painel.html
var templatesFS embed.FS

var painelTemplate = template.Must(template.ParseFS(templatesFS, "templates/painel.html"))

const layoutInputData = "2006-01-02"

type indicadorCard struct {
	Titulo string
	Valor  string
	Cor    string
}

type painelData struct {
	Titulo      string
	Erro        string
	Opcoes      *models.OptionsResponse
	Selecionado url.Values
	Query       template.URL
	Indicadores []indicadorCard
}

// Painel renders the HTML dashboard. Filters come from the query string and
// every control submits the form again, so the page works without scripts.
func (h *DashboardHandlers) Painel(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "Painel")
	defer span.End()

	opcoes, err := h.service.Options()
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		c.String(statusFor(err), "Painel indisponível: %s", err.Error())
		return
	}

	query := painelQuery(c.Request.URL.Query(), opcoes.Datas)
	status := http.StatusOK
	erro := ""

	filters, err := models.ParseDashboardFilters(query)
	if err != nil {
		status = statusFor(err)
		erro = "Filtros inválidos: " + err.Error()
		filters = models.DashboardFilters{}
		query = painelQuery(url.Values{}, opcoes.Datas)
		if f, ferr := models.ParseDashboardFilters(query); ferr == nil {
			filters = f
		}
	}

	result, err := h.service.Compute(ctx, filters)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		c.String(statusFor(err), "Painel indisponível: %s", err.Error())
		return
	}

	data := painelData{
		Titulo:      "Dashboard Dengue 2024",
		Erro:        erro,
		Opcoes:      opcoes,
		Selecionado: query,
		Query:       template.URL(query.Encode()),
		Indicadores: []indicadorCard{
			{Titulo: "Casos Totais", Valor: utils.FormatInt(result.Indicadores.CasosTotais), Cor: "#dfe6e9"},
			{Titulo: "Hospitalizações", Valor: utils.FormatInt(result.Indicadores.Hospitalizacoes), Cor: "#ffeaa7"},
			{Titulo: "Óbitos", Valor: utils.FormatInt(result.Indicadores.Obitos), Cor: "#fab1a0"},
		},
	}

	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := painelTemplate.Execute(c.Writer, data); err != nil {
		observability.Logger().Error("failed to render page", zap.Error(err))
	}
}

// painelQuery fills the date range with the dataset bounds when the request
// does not mention it; an explicitly blank date disables the range
func painelQuery(q url.Values, datas models.DateBounds) url.Values {
	out := url.Values{}
	for k, v := range q {
		if len(v) > 0 && v[0] != "" {
			out.Set(k, v[0])
		}
	}
	_, temInicio := q[models.ParamDataInicio]
	_, temFim := q[models.ParamDataFim]
	if !temInicio && !temFim && datas.Inicio != nil && datas.Fim != nil {
		out.Set(models.ParamDataInicio, datas.Inicio.Format(layoutInputData))
		out.Set(models.ParamDataFim, datas.Fim.Format(layoutInputData))
	}
	return out
}
