package services

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/prefeitura-rio/app-painel-dengue/internal/logging"
	"github.com/prefeitura-rio/app-painel-dengue/internal/models"
	"github.com/prefeitura-rio/app-painel-dengue/internal/observability"
	"github.com/prefeitura-rio/app-painel-dengue/internal/utils"
	"go.uber.org/zap"
)

// DefaultChunkSize is the number of rows accumulated per chunk
const DefaultChunkSize = 100000

// ChunkFunc receives each chunk of parsed rows. The slice is owned by the callee.
type ChunkFunc func(ctx context.Context, chunk []*models.Notificacao) error

// CSVLoader streams SINAN CSV exports in chunks
type CSVLoader struct {
	chunkSize int
	logger    *zap.Logger
}

// NewCSVLoader creates a loader; non-positive chunk sizes fall back to DefaultChunkSize
func NewCSVLoader(chunkSize int) *CSVLoader {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &CSVLoader{
		chunkSize: chunkSize,
		logger:    logging.Logger,
	}
}

// LoadFile reads the whole file into an immutable Dataset
func (l *CSVLoader) LoadFile(ctx context.Context, path string) (*Dataset, error) {
	start := time.Now()
	ctx, span, cleanup := utils.TraceOperation(ctx, "dataset.load_csv", map[string]interface{}{
		"dataset.path":       path,
		"dataset.chunk_size": l.chunkSize,
	})
	defer cleanup()

	f, err := openDatasetFile(path)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, err
	}
	defer f.Close()

	var rows []*models.Notificacao
	total, err := l.Stream(ctx, f, func(_ context.Context, chunk []*models.Notificacao) error {
		rows = append(rows, chunk...)
		return nil
	})
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}

	dataset := NewDataset(rows, "csv:"+path)
	utils.AddSpanAttribute(span, "dataset.rows", total)

	observability.DatasetRows.Set(float64(dataset.Len()))
	observability.DatasetLoadDuration.Set(time.Since(start).Seconds())
	l.logger.Info("dataset loaded",
		zap.String("path", path),
		zap.Int("rows", dataset.Len()),
		zap.Int("municipios", len(dataset.municipios)),
		zap.String("fingerprint", dataset.Fingerprint()),
		zap.Duration("duration", time.Since(start)),
	)
	return dataset, nil
}

// Stream parses r and calls fn once per chunk of at most chunkSize rows.
// It returns the number of rows read.
func (l *CSVLoader) Stream(ctx context.Context, r io.Reader, fn ChunkFunc) (int, error) {
	reader := csv.NewReader(bufio.NewReaderSize(r, 1<<20))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%w: empty file", models.ErrMissingColumn)
		}
		return 0, fmt.Errorf("failed to read header: %w", err)
	}

	idx, err := columnIndexes(header)
	if err != nil {
		return 0, err
	}

	total := 0
	chunks := 0
	chunk := make([]*models.Notificacao, 0, l.chunkSize)

	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		chunks++
		l.logger.Debug("dataset chunk parsed",
			zap.Int("chunk", chunks),
			zap.Int("rows", len(chunk)),
			zap.Int("total", total),
		)
		if err := fn(ctx, chunk); err != nil {
			return err
		}
		chunk = make([]*models.Notificacao, 0, l.chunkSize)
		return nil
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return total, fmt.Errorf("failed to read record %d: %w", total+1, err)
		}

		chunk = append(chunk, parseRecord(record, idx))
		total++

		if len(chunk) >= l.chunkSize {
			if err := ctx.Err(); err != nil {
				return total, err
			}
			if err := flush(); err != nil {
				return total, err
			}
		}
	}

	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}

// columnIndexes maps each used column to its position in the header
func columnIndexes(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(models.ColunasUsadas))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range models.ColunasUsadas {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRecord(record []string, idx map[string]int) *models.Notificacao {
	field := func(col string) string {
		i := idx[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	return &models.Notificacao{
		Municipio:       field(models.ColunaMunicipio),
		UF:              field(models.ColunaUF),
		Sexo:            field(models.ColunaSexo),
		IdadeCodigo:     models.ParseCodigo(field(models.ColunaIdade)),
		Evolucao:        models.ParseCodigo(field(models.ColunaEvolucao)),
		Classificacao:   models.ParseCodigo(field(models.ColunaClassificacao)),
		Hospitalizado:   models.ParseCodigo(field(models.ColunaHospitalizado)),
		// an unparseable DT_OBITO is missing and does not count as a death
		DataObito:       models.ParseData(field(models.ColunaDataObito)),
		DataNotificacao: models.ParseData(field(models.ColunaDataNotific)),
		Raca:            models.ParseCodigo(field(models.ColunaRaca)),
		Gestante:        models.ParseCodigo(field(models.ColunaGestante)),
	}
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	gzErr := g.Reader.Close()
	if err := g.file.Close(); err != nil {
		return err
	}
	return gzErr
}

// openDatasetFile opens path, transparently decompressing .gz files
func openDatasetFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to open gzip dataset: %w", err)
	}
	return &gzipFile{Reader: gz, file: f}, nil
}
