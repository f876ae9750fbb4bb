package services

import (
	"sort"

	"github.com/prefeitura-rio/app-painel-dengue/internal/models"
)

// TopMunicipiosLimit is the number of bars in the municipality chart
const TopMunicipiosLimit = 10

// rowFilter is one independent mask; rows must satisfy every mask
type rowFilter func(n *models.Notificacao) bool

// buildFilters turns the user's choices into masks. Unset filters add nothing.
// Callers must pass filters produced by models.ParseDashboardFilters.
func buildFilters(f models.DashboardFilters) []rowFilter {
	var masks []rowFilter

	if f.TemIntervaloDatas() {
		inicio, fim := *f.DataInicio, *f.DataFim
		masks = append(masks, func(n *models.Notificacao) bool {
			d := n.DataNotificacao
			return d != nil && !d.Before(inicio) && !d.After(fim)
		})
	}

	if f.Sexo != "" {
		sexo := f.Sexo
		masks = append(masks, func(n *models.Notificacao) bool { return n.Sexo == sexo })
	}

	if f.FaixaEtaria != "" {
		if faixa, err := models.BuscarFaixaEtaria(f.FaixaEtaria); err == nil {
			masks = append(masks, func(n *models.Notificacao) bool {
				return n.IdadeAnos != nil && faixa.Contem(*n.IdadeAnos)
			})
		} else {
			masks = append(masks, func(*models.Notificacao) bool { return false })
		}
	}

	if f.Municipio != "" {
		municipio := f.Municipio
		masks = append(masks, func(n *models.Notificacao) bool { return n.MunicipioUF == municipio })
	}

	codigos := []struct {
		want *int
		get  func(n *models.Notificacao) *int
	}{
		{f.Evolucao, func(n *models.Notificacao) *int { return n.Evolucao }},
		{f.Classificacao, func(n *models.Notificacao) *int { return n.Classificacao }},
		{f.Hospitalizado, func(n *models.Notificacao) *int { return n.Hospitalizado }},
		{f.Raca, func(n *models.Notificacao) *int { return n.Raca }},
		{f.Gestante, func(n *models.Notificacao) *int { return n.Gestante }},
	}
	for _, c := range codigos {
		if c.want == nil {
			continue
		}
		want, get := *c.want, c.get
		masks = append(masks, func(n *models.Notificacao) bool {
			v := get(n)
			return v != nil && *v == want
		})
	}

	return masks
}

// FilterRows returns a new slice with the rows matching every filter.
// The dataset is never modified.
func FilterRows(d *Dataset, f models.DashboardFilters) []*models.Notificacao {
	masks := buildFilters(f)
	out := make([]*models.Notificacao, 0)

rows:
	for _, n := range d.rows {
		for _, keep := range masks {
			if !keep(n) {
				continue rows
			}
		}
		out = append(out, n)
	}
	return out
}

// Compute applies the filters and builds the three aggregates and indicators
// in a single pass over the filtered rows.
func Compute(d *Dataset, f models.DashboardFilters) *models.DashboardResult {
	filtered := FilterRows(d, f)

	porMunicipio := make(map[string]int)
	porSemana := make(map[int]int)
	porClassificacao := make(map[string]int)
	var ind models.Indicadores

	for _, n := range filtered {
		porMunicipio[n.MunicipioUF]++
		if n.Semana != nil {
			porSemana[*n.Semana]++
		}
		porClassificacao[n.ClassificacaoNome]++

		if n.FoiHospitalizado() {
			ind.Hospitalizacoes++
		}
		if n.TemObito() {
			ind.Obitos++
		}
	}
	ind.CasosTotais = len(filtered)

	return &models.DashboardResult{
		Filtros:        f,
		TopMunicipios:  topCategories(porMunicipio, TopMunicipiosLimit),
		CasosPorSemana: sortedWeeks(porSemana),
		Classificacao:  topCategories(porClassificacao, 0),
		Indicadores:    ind,
		TotalRegistros: d.Len(),
	}
}

// topCategories orders counts by count desc then label asc; limit <= 0 keeps all
func topCategories(counts map[string]int, limit int) []models.CategoryCount {
	out := make([]models.CategoryCount, 0, len(counts))
	for label, casos := range counts {
		out = append(out, models.CategoryCount{Label: label, Casos: casos})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Casos != out[j].Casos {
			return out[i].Casos > out[j].Casos
		}
		return out[i].Label < out[j].Label
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sortedWeeks(counts map[int]int) []models.WeekCount {
	out := make([]models.WeekCount, 0, len(counts))
	for semana, casos := range counts {
		out = append(out, models.WeekCount{Semana: semana, Casos: casos})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Semana < out[j].Semana })
	return out
}
