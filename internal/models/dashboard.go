package models

import "time"

// CategoryCount is one bar or slice of a categorical chart
type CategoryCount struct {
	Label string `json:"label"`
	Casos int    `json:"casos"`
}

// WeekCount is one point of the weekly cases line
type WeekCount struct {
	Semana int `json:"semana"`
	Casos  int `json:"casos"`
}

// Indicadores are the three scalar summary cards
type Indicadores struct {
	CasosTotais     int `json:"casos_totais"`
	Hospitalizacoes int `json:"hospitalizacoes"`
	Obitos          int `json:"obitos"`
}

// DashboardResult is the output of one filter-and-aggregate pass
type DashboardResult struct {
	Filtros        DashboardFilters `json:"filtros"`
	TopMunicipios  []CategoryCount  `json:"top_municipios"`
	CasosPorSemana []WeekCount      `json:"casos_por_semana"`
	Classificacao  []CategoryCount  `json:"classificacao"`
	Indicadores    Indicadores      `json:"indicadores"`
	TotalRegistros int              `json:"total_registros"`
}

// DateBounds is the min/max notification date of the dataset
type DateBounds struct {
	Inicio *time.Time `json:"inicio,omitempty"`
	Fim    *time.Time `json:"fim,omitempty"`
}

// OptionsResponse lists every filter option offered by the dashboard
type OptionsResponse struct {
	Sexo          []Option   `json:"sexo"`
	FaixaEtaria   []Option   `json:"faixa_etaria"`
	Municipio     []Option   `json:"municipio"`
	Evolucao      []Option   `json:"evolucao"`
	Classificacao []Option   `json:"classificacao"`
	Hospitalizado []Option   `json:"hospitalizado"`
	Raca          []Option   `json:"raca"`
	Gestante      []Option   `json:"gestante"`
	Datas         DateBounds `json:"datas"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status     string `json:"status"`
	Registros  int    `json:"registros"`
	DataSource string `json:"data_source"`
	Redis      string `json:"redis,omitempty"`
}
