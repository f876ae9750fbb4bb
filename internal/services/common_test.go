package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prefeitura-rio/app-painel-dengue/internal/models"
	"github.com/stretchr/testify/require"
)

const sampleCSVPath = "testdata/sinan_amostra.csv"

func intPtr(v int) *int { return &v }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// loadSampleDataset loads testdata/sinan_amostra.csv
func loadSampleDataset(t *testing.T) *Dataset {
	t.Helper()
	ds, err := NewCSVLoader(3).LoadFile(context.Background(), sampleCSVPath)
	require.NoError(t, err)
	return ds
}

// caso builds a raw record for in-memory datasets
type caso struct {
	municipio, uf, sexo string
	idade               *int
	evolucao, classi    *int
	hospitaliz          *int
	notific, obito      *time.Time
	raca, gestante      *int
}

func newDataset(casos ...caso) *Dataset {
	rows := make([]*models.Notificacao, 0, len(casos))
	for _, c := range casos {
		rows = append(rows, &models.Notificacao{
			Municipio:       c.municipio,
			UF:              c.uf,
			Sexo:            c.sexo,
			IdadeCodigo:     c.idade,
			Evolucao:        c.evolucao,
			Classificacao:   c.classi,
			Hospitalizado:   c.hospitaliz,
			DataNotificacao: c.notific,
			DataObito:       c.obito,
			Raca:            c.raca,
			Gestante:        c.gestante,
		})
	}
	return NewDataset(rows, "test")
}

func csvReader(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}
