package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset_Municipios(t *testing.T) {
	ds := loadSampleDataset(t)

	assert.Equal(t, []string{
		"Angra dos Reis (RJ)",
		"Belo Horizonte (MG)",
		"Campinas (SP)",
		"Niterói (RJ)",
		"Rio de Janeiro (RJ)",
		"São Paulo (SP)",
	}, ds.Municipios())
}

func TestDataset_MunicipiosCollation(t *testing.T) {
	ds := newDataset(
		caso{municipio: "Óbidos", uf: "PA"},
		caso{municipio: "Ouro Preto", uf: "MG"},
		caso{municipio: "Oeiras", uf: "PI"},
	)

	assert.Equal(t, []string{"Óbidos (PA)", "Oeiras (PI)", "Ouro Preto (MG)"}, ds.Municipios())
}

func TestDataset_DateBounds(t *testing.T) {
	ds := loadSampleDataset(t)
	bounds := ds.DateBounds()

	require.NotNil(t, bounds.Inicio)
	require.NotNil(t, bounds.Fim)
	assert.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), *bounds.Inicio)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), *bounds.Fim)

	empty := newDataset(caso{municipio: "Rio de Janeiro", uf: "RJ"})
	assert.Nil(t, empty.DateBounds().Inicio)
	assert.Nil(t, empty.DateBounds().Fim)
}

func TestDataset_Fingerprint(t *testing.T) {
	a := newDataset(caso{municipio: "Rio de Janeiro", uf: "RJ", sexo: "F", idade: intPtr(4025)})
	b := newDataset(caso{municipio: "Rio de Janeiro", uf: "RJ", sexo: "F", idade: intPtr(4025)})
	c := newDataset(caso{municipio: "Rio de Janeiro", uf: "RJ", sexo: "F", idade: intPtr(4026)})

	assert.Len(t, a.Fingerprint(), 16)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestDataset_RowsReturnsCopy(t *testing.T) {
	ds := loadSampleDataset(t)

	rows := ds.Rows()
	rows[0] = nil

	assert.Equal(t, 8, ds.Len())
	assert.NotNil(t, ds.Rows()[0])
}

func TestDataset_EnrichesRows(t *testing.T) {
	ds := loadSampleDataset(t)
	first := ds.Rows()[0]

	assert.Equal(t, "Rio de Janeiro (RJ)", first.MunicipioUF)
	require.NotNil(t, first.IdadeAnos)
	assert.Equal(t, 25, *first.IdadeAnos)
	require.NotNil(t, first.Semana)
	assert.Equal(t, 1, *first.Semana)
	assert.Equal(t, "Dengue", first.ClassificacaoNome)
	assert.Equal(t, "Parda", first.RacaNome)
	assert.Equal(t, "Não gestante", first.GestanteNome)

	for _, n := range ds.Rows() {
		if n.IdadeAnos != nil {
			assert.GreaterOrEqual(t, *n.IdadeAnos, 0)
		}
	}
}

func TestDataset_NilLen(t *testing.T) {
	var ds *Dataset
	assert.Equal(t, 0, ds.Len())
}
