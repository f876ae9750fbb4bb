package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Query parameter names of the dashboard filters
const (
	ParamSexo          = "sexo"
	ParamFaixaEtaria   = "faixa_etaria"
	ParamMunicipio     = "municipio"
	ParamEvolucao      = "evolucao"
	ParamClassificacao = "classificacao"
	ParamHospitalizado = "hospitalizado"
	ParamRaca          = "raca"
	ParamGestante      = "gestante"
	ParamDataInicio    = "data_inicio"
	ParamDataFim       = "data_fim"
)

const layoutDataFiltro = "2006-01-02"

// DashboardFilters holds the user's filter choices. Zero values mean "all".
type DashboardFilters struct {
	Sexo          string     `json:"sexo,omitempty"`
	FaixaEtaria   string     `json:"faixa_etaria,omitempty"`
	Municipio     string     `json:"municipio,omitempty"`
	Evolucao      *int       `json:"evolucao,omitempty"`
	Classificacao *int       `json:"classificacao,omitempty"`
	Hospitalizado *int       `json:"hospitalizado,omitempty"`
	Raca          *int       `json:"raca,omitempty"`
	Gestante      *int       `json:"gestante,omitempty"`
	DataInicio    *time.Time `json:"data_inicio,omitempty"`
	DataFim       *time.Time `json:"data_fim,omitempty"`
}

// ParseDashboardFilters reads the filters from query parameters.
// Blank parameters are ignored; invalid values return a wrapped sentinel error.
func ParseDashboardFilters(q url.Values) (DashboardFilters, error) {
	var f DashboardFilters

	f.Sexo = strings.TrimSpace(q.Get(ParamSexo))
	if f.Sexo != "" && !SexoValido(f.Sexo) {
		return DashboardFilters{}, fmt.Errorf("%w: %q", ErrInvalidSex, f.Sexo)
	}

	f.FaixaEtaria = strings.TrimSpace(q.Get(ParamFaixaEtaria))
	if f.FaixaEtaria != "" {
		if _, err := BuscarFaixaEtaria(f.FaixaEtaria); err != nil {
			return DashboardFilters{}, err
		}
	}

	// compared verbatim: rows without MUNICIPIO and UF are offered as " ()"
	f.Municipio = q.Get(ParamMunicipio)

	codigos := []struct {
		param  string
		tabela TabelaCodigos
		dest   **int
	}{
		{ParamEvolucao, Evolucoes, &f.Evolucao},
		{ParamClassificacao, Classificacoes, &f.Classificacao},
		{ParamHospitalizado, Hospitalizacoes, &f.Hospitalizado},
		{ParamRaca, Racas, &f.Raca},
		{ParamGestante, Gestantes, &f.Gestante},
	}
	for _, c := range codigos {
		raw := strings.TrimSpace(q.Get(c.param))
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || !c.tabela.Contem(v) {
			return DashboardFilters{}, fmt.Errorf("%w: %s=%q", ErrInvalidCode, c.param, raw)
		}
		*c.dest = &v
	}

	var err error
	if f.DataInicio, err = parseDataFiltro(q, ParamDataInicio); err != nil {
		return DashboardFilters{}, err
	}
	if f.DataFim, err = parseDataFiltro(q, ParamDataFim); err != nil {
		return DashboardFilters{}, err
	}
	if f.DataInicio != nil && f.DataFim != nil && f.DataInicio.After(*f.DataFim) {
		return DashboardFilters{}, fmt.Errorf("%w: %s > %s", ErrInvalidDateRange,
			f.DataInicio.Format(layoutDataFiltro), f.DataFim.Format(layoutDataFiltro))
	}

	return f, nil
}

func parseDataFiltro(q url.Values, param string) (*time.Time, error) {
	raw := strings.TrimSpace(q.Get(param))
	if raw == "" {
		return nil, nil
	}
	d := ParseData(raw)
	if d == nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidDate, param, raw)
	}
	return d, nil
}

// TemIntervaloDatas reports whether the date range mask applies (both ends set)
func (f DashboardFilters) TemIntervaloDatas() bool {
	return f.DataInicio != nil && f.DataFim != nil
}

// Values encodes the filters back into query parameters
func (f DashboardFilters) Values() url.Values {
	q := url.Values{}
	setStr := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	setInt := func(k string, v *int) {
		if v != nil {
			q.Set(k, strconv.Itoa(*v))
		}
	}
	setDate := func(k string, v *time.Time) {
		if v != nil {
			q.Set(k, v.Format(layoutDataFiltro))
		}
	}

	setStr(ParamSexo, f.Sexo)
	setStr(ParamFaixaEtaria, f.FaixaEtaria)
	setStr(ParamMunicipio, f.Municipio)
	setInt(ParamEvolucao, f.Evolucao)
	setInt(ParamClassificacao, f.Classificacao)
	setInt(ParamHospitalizado, f.Hospitalizado)
	setInt(ParamRaca, f.Raca)
	setInt(ParamGestante, f.Gestante)
	setDate(ParamDataInicio, f.DataInicio)
	setDate(ParamDataFim, f.DataFim)
	return q
}

// CacheKey returns a canonical representation of the filters.
// url.Values.Encode sorts by key, so equal filters give equal keys.
func (f DashboardFilters) CacheKey() string {
	return f.Values().Encode()
}
