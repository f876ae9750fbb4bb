package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// SINAN column names read from the source dataset
const (
	ColunaMunicipio     = "MUNICIPIO"
	ColunaUF            = "UF"
	ColunaSexo          = "CS_SEXO"
	ColunaIdade         = "NU_IDADE_N"
	ColunaEvolucao      = "EVOLUCAO"
	ColunaClassificacao = "CLASSI_FIN"
	ColunaHospitalizado = "HOSPITALIZ"
	ColunaDataObito     = "DT_OBITO"
	ColunaDataNotific   = "DT_NOTIFIC"
	ColunaRaca          = "CS_RACA"
	ColunaGestante      = "CS_GESTANT"
)

// ColunasUsadas is the fixed column subset loaded from the dataset
var ColunasUsadas = []string{
	ColunaMunicipio, ColunaUF, ColunaSexo, ColunaIdade, ColunaEvolucao,
	ColunaClassificacao, ColunaHospitalizado, ColunaDataObito, ColunaDataNotific,
	ColunaRaca, ColunaGestante,
}

// IdadeCodigoMinimo is the smallest NU_IDADE_N value that encodes an age in years
const IdadeCodigoMinimo = 4000

// Notificacao is one dengue/arbovirus case notification
type Notificacao struct {
	Municipio       string     `json:"municipio" bson:"municipio"`
	UF              string     `json:"uf" bson:"uf"`
	Sexo            string     `json:"cs_sexo,omitempty" bson:"cs_sexo,omitempty"`
	IdadeCodigo     *int       `json:"nu_idade_n,omitempty" bson:"nu_idade_n,omitempty"`
	Evolucao        *int       `json:"evolucao,omitempty" bson:"evolucao,omitempty"`
	Classificacao   *int       `json:"classi_fin,omitempty" bson:"classi_fin,omitempty"`
	Hospitalizado   *int       `json:"hospitaliz,omitempty" bson:"hospitaliz,omitempty"`
	DataObito       *time.Time `json:"dt_obito,omitempty" bson:"dt_obito,omitempty"`
	DataNotificacao *time.Time `json:"dt_notific,omitempty" bson:"dt_notific,omitempty"`
	Raca            *int       `json:"cs_raca,omitempty" bson:"cs_raca,omitempty"`
	Gestante        *int       `json:"cs_gestant,omitempty" bson:"cs_gestant,omitempty"`

	// Derived fields, filled by Enriquecer
	MunicipioUF       string `json:"municipio_uf" bson:"municipio_uf"`
	IdadeAnos         *int   `json:"idade_anos,omitempty" bson:"idade_anos,omitempty"`
	Semana            *int   `json:"semana,omitempty" bson:"semana,omitempty"`
	EvolucaoNome      string `json:"evolucao_nome" bson:"evolucao_nome"`
	ClassificacaoNome string `json:"classificacao_nome" bson:"classificacao_nome"`
	RacaNome          string `json:"raca_nome" bson:"raca_nome"`
	GestanteNome      string `json:"gestante_nome" bson:"gestante_nome"`
}

// Enriquecer computes the derived fields from the raw ones
func (n *Notificacao) Enriquecer() {
	n.MunicipioUF = n.Municipio + " (" + n.UF + ")"
	n.IdadeAnos = DecodificarIdade(n.IdadeCodigo)
	n.Semana = SemanaISO(n.DataNotificacao)
	n.EvolucaoNome = Evolucoes.Label(n.Evolucao)
	n.ClassificacaoNome = Classificacoes.Label(n.Classificacao)
	n.RacaNome = Racas.Label(n.Raca)
	n.GestanteNome = Gestantes.Label(n.Gestante)
}

// FoiHospitalizado reports whether HOSPITALIZ is 1 (Sim). The indicator
// counts these rows instead of summing raw codes, so code 2 (Não) adds nothing.
func (n *Notificacao) FoiHospitalizado() bool {
	return n.Hospitalizado != nil && *n.Hospitalizado == HospitalizadoSim
}

// TemObito reports whether a death date is present
func (n *Notificacao) TemObito() bool {
	return n.DataObito != nil
}

// DecodificarIdade extracts the age in years from a NU_IDADE_N code.
// Codes below IdadeCodigoMinimo do not carry an age in years and yield nil.
func DecodificarIdade(codigo *int) *int {
	if codigo == nil || *codigo < IdadeCodigoMinimo {
		return nil
	}
	idade := *codigo % 100
	return &idade
}

// SemanaISO returns the ISO-8601 week number of t, or nil when t is missing
func SemanaISO(t *time.Time) *int {
	if t == nil {
		return nil
	}
	_, semana := t.ISOWeek()
	return &semana
}

// ParseCodigo parses a numeric code such as "1" or "1.0". Blank, malformed and
// non-integral values are treated as missing.
func ParseCodigo(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return &v
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return nil
	}
	v := int(f)
	return &v
}

var layoutsData = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"20060102",
	"02/01/2006",
}

// ParseData parses a date in any of the layouts found in SINAN exports and
// truncates it to the day, in UTC. Blank and malformed values are missing.
func ParseData(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range layoutsData {
		if t, err := time.Parse(layout, raw); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}
