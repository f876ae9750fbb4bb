package services

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/prefeitura-rio/app-painel-dengue/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFilters(t *testing.T, q url.Values) models.DashboardFilters {
	t.Helper()
	f, err := models.ParseDashboardFilters(q)
	require.NoError(t, err)
	return f
}

func TestCompute_Unfiltered(t *testing.T) {
	ds := loadSampleDataset(t)

	result := Compute(ds, models.DashboardFilters{})

	assert.Equal(t, models.Indicadores{CasosTotais: 8, Hospitalizacoes: 3, Obitos: 1}, result.Indicadores)
	assert.Equal(t, 8, result.TotalRegistros)

	assert.Equal(t, []models.CategoryCount{
		{Label: "Rio de Janeiro (RJ)", Casos: 3},
		{Label: "Angra dos Reis (RJ)", Casos: 1},
		{Label: "Belo Horizonte (MG)", Casos: 1},
		{Label: "Campinas (SP)", Casos: 1},
		{Label: "Niterói (RJ)", Casos: 1},
		{Label: "São Paulo (SP)", Casos: 1},
	}, result.TopMunicipios)

	assert.Equal(t, []models.WeekCount{
		{Semana: 1, Casos: 2},
		{Semana: 2, Casos: 2},
		{Semana: 3, Casos: 2},
		{Semana: 5, Casos: 1},
	}, result.CasosPorSemana)

	assert.Equal(t, []models.CategoryCount{
		{Label: "Dengue", Casos: 3},
		{Label: "Chikungunya", Casos: 1},
		{Label: "Com Alarme", Casos: 1},
		{Label: "Descartado", Casos: 1},
		{Label: "Grave", Casos: 1},
		{Label: models.RotuloNaoInformado, Casos: 1},
	}, result.Classificacao)
}

func TestCompute_Filters(t *testing.T) {
	ds := loadSampleDataset(t)

	tests := []struct {
		name            string
		query           url.Values
		casos           int
		hospitalizacoes int
		obitos          int
	}{
		{name: "sexo", query: url.Values{"sexo": {"F"}}, casos: 4, hospitalizacoes: 2, obitos: 1},
		{name: "faixa adulta", query: url.Values{"faixa_etaria": {"20-39"}}, casos: 2, hospitalizacoes: 1},
		{name: "faixa idosa", query: url.Values{"faixa_etaria": {"60+"}}, casos: 1, hospitalizacoes: 1},
		{name: "faixa infantil", query: url.Values{"faixa_etaria": {"0-9"}}, casos: 1, hospitalizacoes: 1, obitos: 1},
		{name: "faixa sem casos", query: url.Values{"faixa_etaria": {"10-19"}}, casos: 0},
		{name: "municipio", query: url.Values{"municipio": {"Rio de Janeiro (RJ)"}}, casos: 3, hospitalizacoes: 2},
		{name: "municipio desconhecido", query: url.Values{"municipio": {"Atlantis (XX)"}}, casos: 0},
		{name: "evolucao", query: url.Values{"evolucao": {"1"}}, casos: 3, hospitalizacoes: 1},
		{name: "classificacao", query: url.Values{"classificacao": {"10"}}, casos: 3, hospitalizacoes: 1},
		{name: "hospitalizado sim", query: url.Values{"hospitalizado": {"1"}}, casos: 3, hospitalizacoes: 3, obitos: 1},
		{name: "hospitalizado nao", query: url.Values{"hospitalizado": {"2"}}, casos: 4},
		{name: "raca", query: url.Values{"raca": {"4"}}, casos: 3, hospitalizacoes: 1},
		{name: "gestante", query: url.Values{"gestante": {"6"}}, casos: 4, hospitalizacoes: 2, obitos: 1},
		{
			name:            "periodo inclusivo",
			query:           url.Values{"data_inicio": {"2024-01-03"}, "data_fim": {"2024-01-10"}},
			casos:           3,
			hospitalizacoes: 2,
			obitos:          1,
		},
		{name: "periodo incompleto ignorado", query: url.Values{"data_inicio": {"2024-01-03"}}, casos: 8, hospitalizacoes: 3, obitos: 1},
		{name: "combinados", query: url.Values{"sexo": {"F"}, "raca": {"4"}}, casos: 2, hospitalizacoes: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compute(ds, mustFilters(t, tt.query))

			assert.Equal(t, tt.casos, result.Indicadores.CasosTotais)
			assert.Equal(t, tt.hospitalizacoes, result.Indicadores.Hospitalizacoes)
			assert.Equal(t, tt.obitos, result.Indicadores.Obitos)
			assert.LessOrEqual(t, result.Indicadores.CasosTotais, result.TotalRegistros)
		})
	}
}

func TestCompute_DateRangeExcludesMissingDates(t *testing.T) {
	ds := loadSampleDataset(t)

	f := mustFilters(t, url.Values{"data_inicio": {"2000-01-01"}, "data_fim": {"2030-12-31"}})
	result := Compute(ds, f)

	assert.Equal(t, 7, result.Indicadores.CasosTotais)
	for _, m := range result.TopMunicipios {
		assert.NotEqual(t, "Belo Horizonte (MG)", m.Label)
	}
}

func TestCompute_EmptyResult(t *testing.T) {
	ds := loadSampleDataset(t)

	result := Compute(ds, mustFilters(t, url.Values{"municipio": {"Atlantis (XX)"}}))

	assert.Equal(t, models.Indicadores{}, result.Indicadores)
	assert.NotNil(t, result.TopMunicipios)
	assert.Empty(t, result.TopMunicipios)
	assert.NotNil(t, result.CasosPorSemana)
	assert.Empty(t, result.CasosPorSemana)
	assert.Empty(t, result.Classificacao)
}

func TestCompute_TopMunicipiosTruncatesAndBreaksTies(t *testing.T) {
	var casos []caso
	for i := 0; i < 12; i++ {
		nome := fmt.Sprintf("Cidade %02d", i)
		for j := 0; j <= i%3; j++ {
			casos = append(casos, caso{municipio: nome, uf: "RJ"})
		}
	}
	ds := newDataset(casos...)

	result := Compute(ds, models.DashboardFilters{})

	require.Len(t, result.TopMunicipios, TopMunicipiosLimit)
	assert.Equal(t, []string{
		"Cidade 02 (RJ)", "Cidade 05 (RJ)", "Cidade 08 (RJ)", "Cidade 11 (RJ)",
		"Cidade 01 (RJ)", "Cidade 04 (RJ)", "Cidade 07 (RJ)", "Cidade 10 (RJ)",
		"Cidade 00 (RJ)", "Cidade 03 (RJ)",
	}, labels(result.TopMunicipios))
	assert.Equal(t, 3, result.TopMunicipios[0].Casos)
	assert.Equal(t, 1, result.TopMunicipios[9].Casos)
}

func TestCompute_WeeksAscending(t *testing.T) {
	ds := newDataset(
		caso{notific: datePtr(2024, time.March, 15)},
		caso{notific: datePtr(2024, time.January, 3)},
		caso{notific: datePtr(2024, time.March, 14)},
		caso{},
	)

	result := Compute(ds, models.DashboardFilters{})

	assert.Equal(t, []models.WeekCount{{Semana: 1, Casos: 1}, {Semana: 11, Casos: 2}}, result.CasosPorSemana)
}

func TestCompute_HospitalizationFlagIgnoresOtherCodes(t *testing.T) {
	ds := newDataset(
		caso{hospitaliz: intPtr(1)},
		caso{hospitaliz: intPtr(2)},
		caso{hospitaliz: intPtr(9)},
		caso{},
	)

	result := Compute(ds, models.DashboardFilters{})
	assert.Equal(t, 1, result.Indicadores.Hospitalizacoes)
}

func TestCompute_DoesNotMutateDataset(t *testing.T) {
	ds := loadSampleDataset(t)
	fingerprint := ds.Fingerprint()
	before := ds.Rows()

	Compute(ds, mustFilters(t, url.Values{"sexo": {"M"}, "data_inicio": {"2024-01-01"}, "data_fim": {"2024-01-31"}}))

	assert.Equal(t, 8, ds.Len())
	assert.Equal(t, before, ds.Rows())
	assert.Equal(t, fingerprint, NewDataset(ds.Rows(), "copy").Fingerprint())
}

func TestFilterRows_OrderInsensitive(t *testing.T) {
	ds := loadSampleDataset(t)

	a := FilterRows(ds, mustFilters(t, url.Values{"sexo": {"F"}, "hospitalizado": {"1"}}))
	b := FilterRows(ds, mustFilters(t, url.Values{"hospitalizado": {"1"}, "sexo": {"F"}}))

	assert.Equal(t, a, b)
	assert.Len(t, a, 2)
}

func TestFilterRows_ReturnsIndependentSlice(t *testing.T) {
	ds := loadSampleDataset(t)

	rows := FilterRows(ds, models.DashboardFilters{})
	require.Len(t, rows, 8)
	rows[0] = nil

	assert.NotNil(t, ds.Rows()[0])
}

func TestFilterRows_BlankMunicipioOption(t *testing.T) {
	ds := newDataset(
		caso{},
		caso{sexo: "F"},
		caso{municipio: "Rio", uf: "RJ"},
	)
	require.ElementsMatch(t, []string{" ()", "Rio (RJ)"}, ds.Municipios())

	rows := FilterRows(ds, mustFilters(t, url.Values{"municipio": {" ()"}}))
	assert.Len(t, rows, 2)

	rows = FilterRows(ds, mustFilters(t, url.Values{"municipio": {"Rio (RJ)"}}))
	assert.Len(t, rows, 1)
}

func labels(counts []models.CategoryCount) []string {
	out := make([]string, 0, len(counts))
	for _, c := range counts {
		out = append(out, c.Label)
	}
	return out
}
