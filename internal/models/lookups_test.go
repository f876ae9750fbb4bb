package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabelaCodigos_Label(t *testing.T) {
	tests := []struct {
		name     string
		tabela   TabelaCodigos
		codigo   *int
		expected string
	}{
		{name: "raca known", tabela: Racas, codigo: intPtr(5), expected: "Indígena"},
		{name: "raca unknown", tabela: Racas, codigo: intPtr(7), expected: RotuloNaoInformado},
		{name: "gestante known", tabela: Gestantes, codigo: intPtr(2), expected: "2º trimestre"},
		{name: "evolucao death", tabela: Evolucoes, codigo: intPtr(2), expected: "Óbito por Dengue"},
		{name: "classificacao alarm", tabela: Classificacoes, codigo: intPtr(11), expected: "Com Alarme"},
		{name: "classificacao missing", tabela: Classificacoes, codigo: nil, expected: RotuloNaoInformado},
		{name: "hospitalizado no", tabela: Hospitalizacoes, codigo: intPtr(2), expected: "Não"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.tabela.Label(tt.codigo))
		})
	}
}

func TestTabelaCodigos_Options(t *testing.T) {
	opts := Classificacoes.Options()

	require.Len(t, opts, 5)
	assert.Equal(t, Option{Label: "Descartado", Value: "5"}, opts[0])
	assert.Equal(t, Option{Label: "Chikungunya", Value: "13"}, opts[4])
	assert.Equal(t, "classificacao", Classificacoes.Nome())

	racas := Racas.Options()
	values := make([]string, 0, len(racas))
	for _, o := range racas {
		values = append(values, o.Value)
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "9"}, values)
}

func TestTabelaCodigos_Contem(t *testing.T) {
	assert.True(t, Evolucoes.Contem(9))
	assert.False(t, Evolucoes.Contem(5))
	assert.True(t, Hospitalizacoes.Contem(HospitalizadoSim))
}

func TestSexoValido(t *testing.T) {
	for _, s := range []string{"M", "F", "I"} {
		assert.True(t, SexoValido(s), s)
	}
	for _, s := range []string{"", "m", "X"} {
		assert.False(t, SexoValido(s), s)
	}
}

func TestFaixaEtaria_Contem(t *testing.T) {
	tests := []struct {
		codigo string
		idade  int
		want   bool
	}{
		{"0-9", 0, true},
		{"0-9", 9, true},
		{"0-9", 10, false},
		{"10-19", 19, true},
		{"20-39", 20, true},
		{"40-59", 60, false},
		{"60+", 60, true},
		{"60+", 99, true},
		{"60+", 59, false},
	}

	for _, tt := range tests {
		faixa, err := BuscarFaixaEtaria(tt.codigo)
		require.NoError(t, err)
		assert.Equal(t, tt.want, faixa.Contem(tt.idade), "%s contains %d", tt.codigo, tt.idade)
	}
}

func TestBuscarFaixaEtaria_Invalid(t *testing.T) {
	_, err := BuscarFaixaEtaria("70-80")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidAgeBracket))
}

func TestFaixaEtariaOptions(t *testing.T) {
	opts := FaixaEtariaOptions()
	require.Len(t, opts, len(FaixasEtarias))
	assert.Equal(t, Option{Label: "0-9 anos", Value: "0-9"}, opts[0])
	assert.Equal(t, Option{Label: "60+ anos", Value: "60+"}, opts[4])
}
