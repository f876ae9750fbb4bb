package models

import (
	"fmt"
	"sort"
	"strconv"
)

// RotuloNaoInformado labels codes that are missing or outside a table
const RotuloNaoInformado = "Não informado"

// HOSPITALIZ codes
const (
	HospitalizadoSim = 1
	HospitalizadoNao = 2
)

// Option is one entry of a filter dropdown
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// TabelaCodigos maps SINAN integer codes to labels. Label is total: any code
// outside the table, or a missing code, maps to RotuloNaoInformado.
type TabelaCodigos struct {
	nome    string
	codigos []int
	rotulos map[int]string
}

func novaTabela(nome string, rotulos map[int]string) TabelaCodigos {
	codigos := make([]int, 0, len(rotulos))
	for c := range rotulos {
		codigos = append(codigos, c)
	}
	sort.Ints(codigos)
	return TabelaCodigos{nome: nome, codigos: codigos, rotulos: rotulos}
}

// Nome returns the table name
func (t TabelaCodigos) Nome() string {
	return t.nome
}

// Label returns the label for codigo
func (t TabelaCodigos) Label(codigo *int) string {
	if codigo == nil {
		return RotuloNaoInformado
	}
	if rotulo, ok := t.rotulos[*codigo]; ok {
		return rotulo
	}
	return RotuloNaoInformado
}

// Contem reports whether codigo belongs to the table
func (t TabelaCodigos) Contem(codigo int) bool {
	_, ok := t.rotulos[codigo]
	return ok
}

// Options lists the table entries ordered by code
func (t TabelaCodigos) Options() []Option {
	opts := make([]Option, 0, len(t.codigos))
	for _, c := range t.codigos {
		opts = append(opts, Option{Label: t.rotulos[c], Value: strconv.Itoa(c)})
	}
	return opts
}

var (
	// Racas maps CS_RACA
	Racas = novaTabela("raca", map[int]string{
		1: "Branca",
		2: "Preta",
		3: "Amarela",
		4: "Parda",
		5: "Indígena",
		9: "Ignorado",
	})

	// Gestantes maps CS_GESTANT
	Gestantes = novaTabela("gestante", map[int]string{
		1: "1º trimestre",
		2: "2º trimestre",
		3: "3º trimestre",
		4: "Ignorada",
		5: "Não gestante",
		6: "Não aplicável",
		9: "Ignorado",
	})

	// Evolucoes maps EVOLUCAO
	Evolucoes = novaTabela("evolucao", map[int]string{
		1: "Cura",
		2: "Óbito por Dengue",
		3: "Óbito outras causas",
		4: "Em investigação",
		9: "Ignorado",
	})

	// Classificacoes maps CLASSI_FIN
	Classificacoes = novaTabela("classificacao", map[int]string{
		5:  "Descartado",
		10: "Dengue",
		11: "Com Alarme",
		12: "Grave",
		13: "Chikungunya",
	})

	// Hospitalizacoes maps HOSPITALIZ
	Hospitalizacoes = novaTabela("hospitalizado", map[int]string{
		HospitalizadoSim: "Sim",
		HospitalizadoNao: "Não",
	})
)

// SexoOptions are the CS_SEXO filter options
var SexoOptions = []Option{
	{Label: "Masculino", Value: "M"},
	{Label: "Feminino", Value: "F"},
	{Label: "Ignorado", Value: "I"},
}

// SexoValido reports whether s is one of the CS_SEXO codes
func SexoValido(s string) bool {
	for _, o := range SexoOptions {
		if o.Value == s {
			return true
		}
	}
	return false
}

// FaixaEtaria is an inclusive age bracket; Max < 0 means open-ended
type FaixaEtaria struct {
	Codigo string
	Rotulo string
	Min    int
	Max    int
}

// Contem reports whether idade falls inside the bracket
func (f FaixaEtaria) Contem(idade int) bool {
	if idade < f.Min {
		return false
	}
	return f.Max < 0 || idade <= f.Max
}

// FaixasEtarias are the age brackets offered by the dashboard
var FaixasEtarias = []FaixaEtaria{
	{Codigo: "0-9", Rotulo: "0-9 anos", Min: 0, Max: 9},
	{Codigo: "10-19", Rotulo: "10-19 anos", Min: 10, Max: 19},
	{Codigo: "20-39", Rotulo: "20-39 anos", Min: 20, Max: 39},
	{Codigo: "40-59", Rotulo: "40-59 anos", Min: 40, Max: 59},
	{Codigo: "60+", Rotulo: "60+ anos", Min: 60, Max: -1},
}

// BuscarFaixaEtaria returns the bracket with the given code
func BuscarFaixaEtaria(codigo string) (FaixaEtaria, error) {
	for _, f := range FaixasEtarias {
		if f.Codigo == codigo {
			return f, nil
		}
	}
	return FaixaEtaria{}, fmt.Errorf("%w: %q", ErrInvalidAgeBracket, codigo)
}

// FaixaEtariaOptions lists the age brackets as dropdown options
func FaixaEtariaOptions() []Option {
	opts := make([]Option, 0, len(FaixasEtarias))
	for _, f := range FaixasEtarias {
		opts = append(opts, Option{Label: f.Rotulo, Value: f.Codigo})
	}
	return opts
}
