package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/prefeitura-rio/app-painel-dengue/internal/models"
	"github.com/prefeitura-rio/app-painel-dengue/internal/utils"
)

// Dataset is the immutable, enriched case table shared by every request.
// Nothing mutates a Dataset after NewDataset returns.
type Dataset struct {
	rows        []*models.Notificacao
	municipios  []string
	datas       models.DateBounds
	fingerprint string
	source      string
}

// NewDataset takes ownership of rows, enriches them and precomputes the
// municipality list, date bounds and content fingerprint.
func NewDataset(rows []*models.Notificacao, source string) *Dataset {
	seen := make(map[string]struct{})
	municipios := make([]string, 0)
	digest := xxhash.New()
	var bounds models.DateBounds

	for _, n := range rows {
		n.Enriquecer()

		if _, ok := seen[n.MunicipioUF]; !ok {
			seen[n.MunicipioUF] = struct{}{}
			municipios = append(municipios, n.MunicipioUF)
		}

		if d := n.DataNotificacao; d != nil {
			if bounds.Inicio == nil || d.Before(*bounds.Inicio) {
				bounds.Inicio = d
			}
			if bounds.Fim == nil || d.After(*bounds.Fim) {
				bounds.Fim = d
			}
		}

		hashRow(digest, n)
	}

	utils.SortStringsPTBR(municipios)

	return &Dataset{
		rows:        rows,
		municipios:  municipios,
		datas:       bounds,
		fingerprint: fmt.Sprintf("%016x", digest.Sum64()),
		source:      source,
	}
}

// Len returns the number of case records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Rows returns a copy of the row slice. The records themselves are shared
// and must be treated as read-only.
func (d *Dataset) Rows() []*models.Notificacao {
	out := make([]*models.Notificacao, len(d.rows))
	copy(out, d.rows)
	return out
}

// Municipios returns the distinct "MUNICIPIO (UF)" values in pt-BR order
func (d *Dataset) Municipios() []string {
	out := make([]string, len(d.municipios))
	copy(out, d.municipios)
	return out
}

// DateBounds returns the earliest and latest notification dates
func (d *Dataset) DateBounds() models.DateBounds {
	return d.datas
}

// Fingerprint identifies the dataset content; it changes whenever any row does
func (d *Dataset) Fingerprint() string {
	return d.fingerprint
}

// Source names where the dataset was loaded from
func (d *Dataset) Source() string {
	return d.source
}

func hashRow(digest *xxhash.Digest, n *models.Notificacao) {
	writeField := func(s string) {
		_, _ = digest.WriteString(s)
		_, _ = digest.Write([]byte{0x1f})
	}
	writeInt := func(v *int) {
		if v == nil {
			writeField("")
			return
		}
		writeField(strconv.Itoa(*v))
	}
	writeDate := func(v *time.Time) {
		if v == nil {
			writeField("")
			return
		}
		writeField(v.Format("20060102"))
	}

	writeField(n.Municipio)
	writeField(n.UF)
	writeField(n.Sexo)
	writeInt(n.IdadeCodigo)
	writeInt(n.Evolucao)
	writeInt(n.Classificacao)
	writeInt(n.Hospitalizado)
	writeDate(n.DataObito)
	writeDate(n.DataNotificacao)
	writeInt(n.Raca)
	writeInt(n.Gestante)
	_, _ = digest.Write([]byte{0x1e})
}
