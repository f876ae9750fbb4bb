package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prefeitura-rio/app-painel-dengue/internal/logging"
	"github.com/prefeitura-rio/app-painel-dengue/internal/models"
	"github.com/prefeitura-rio/app-painel-dengue/internal/observability"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CaseWriter persists chunks of case records
type CaseWriter interface {
	InsertChunk(ctx context.Context, chunk []*models.Notificacao) (int, error)
}

// ImportStats summarizes one import run
type ImportStats struct {
	Read     int           `json:"read"`
	Written  int           `json:"written"`
	Chunks   int           `json:"chunks"`
	Duration time.Duration `json:"duration"`
}

// ImportService copies a CSV export into a CaseWriter. Parsing and writing
// run in separate goroutines connected by a bounded channel.
type ImportService struct {
	loader *CSVLoader
	writer CaseWriter
	logger *zap.Logger
}

// NewImportService creates an importer
func NewImportService(loader *CSVLoader, writer CaseWriter) *ImportService {
	return &ImportService{
		loader: loader,
		writer: writer,
		logger: logging.Logger,
	}
}

// ImportFile imports the CSV (or .csv.gz) file at path
func (s *ImportService) ImportFile(ctx context.Context, path string) (ImportStats, error) {
	f, err := openDatasetFile(path)
	if err != nil {
		return ImportStats{}, err
	}
	defer f.Close()

	stats, err := s.Import(ctx, f)
	if err != nil {
		return stats, fmt.Errorf("failed to import %s: %w", path, err)
	}
	return stats, nil
}

// Import reads r chunk by chunk and writes each chunk as it arrives
func (s *ImportService) Import(ctx context.Context, r io.Reader) (ImportStats, error) {
	start := time.Now()
	var stats ImportStats

	chunks := make(chan []*models.Notificacao, 2)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chunks)
		read, err := s.loader.Stream(gctx, r, func(ctx context.Context, chunk []*models.Notificacao) error {
			select {
			case chunks <- chunk:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		stats.Read = read
		return err
	})

	g.Go(func() error {
		for chunk := range chunks {
			written, err := s.writer.InsertChunk(gctx, chunk)
			stats.Written += written
			stats.Chunks++
			observability.ImportedRows.WithLabelValues("written").Add(float64(written))
			if err != nil {
				observability.ImportedRows.WithLabelValues("failed").Add(float64(len(chunk) - written))
				return fmt.Errorf("chunk %d: %w", stats.Chunks, err)
			}
			s.logger.Info("chunk imported",
				zap.Int("chunk", stats.Chunks),
				zap.Int("rows", written),
				zap.Int("total_written", stats.Written),
			)
		}
		return nil
	})

	err := g.Wait()
	stats.Duration = time.Since(start)
	if err != nil {
		return stats, err
	}

	s.logger.Info("import finished",
		zap.Int("read", stats.Read),
		zap.Int("written", stats.Written),
		zap.Int("chunks", stats.Chunks),
		zap.Duration("duration", stats.Duration),
	)
	return stats, nil
}
