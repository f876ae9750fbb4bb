package services

import (
	"context"
	"fmt"
	"time"

	"github.com/prefeitura-rio/app-painel-dengue/internal/logging"
	"github.com/prefeitura-rio/app-painel-dengue/internal/models"
	"github.com/prefeitura-rio/app-painel-dengue/internal/observability"
	"github.com/prefeitura-rio/app-painel-dengue/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// CaseStore reads and writes case records in a MongoDB collection
type CaseStore struct {
	collection *mongo.Collection
	batchSize  int32
	logger     *zap.Logger
}

// NewCaseStore creates a store over collection
func NewCaseStore(collection *mongo.Collection) *CaseStore {
	return &CaseStore{
		collection: collection,
		batchSize:  5000,
		logger:     logging.Logger,
	}
}

// rawProjection excludes the derived fields; they are recomputed on load
var rawProjection = bson.M{
	"_id":                0,
	"municipio_uf":       0,
	"idade_anos":         0,
	"semana":             0,
	"evolucao_nome":      0,
	"classificacao_nome": 0,
	"raca_nome":          0,
	"gestante_nome":      0,
}

// LoadAll reads every document into an immutable Dataset
func (s *CaseStore) LoadAll(ctx context.Context) (*Dataset, error) {
	start := time.Now()
	ctx, span, cleanup := utils.TraceOperation(ctx, "dataset.load_mongo", map[string]interface{}{
		"db.collection": s.collection.Name(),
	})
	defer cleanup()

	opts := options.Find().
		SetProjection(rawProjection).
		SetBatchSize(s.batchSize)

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, fmt.Errorf("failed to query %s: %w", s.collection.Name(), err)
	}
	defer cursor.Close(ctx)

	var rows []*models.Notificacao
	for cursor.Next(ctx) {
		var n models.Notificacao
		if err := cursor.Decode(&n); err != nil {
			utils.RecordErrorInSpan(span, err, nil)
			return nil, fmt.Errorf("failed to decode case record: %w", err)
		}
		rows = append(rows, &n)
	}
	if err := cursor.Err(); err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, fmt.Errorf("cursor error reading %s: %w", s.collection.Name(), err)
	}

	dataset := NewDataset(rows, "mongo:"+s.collection.Name())
	utils.AddSpanAttribute(span, "dataset.rows", dataset.Len())

	observability.DatasetRows.Set(float64(dataset.Len()))
	observability.DatasetLoadDuration.Set(time.Since(start).Seconds())
	s.logger.Info("dataset loaded",
		zap.String("collection", s.collection.Name()),
		zap.Int("rows", dataset.Len()),
		zap.String("fingerprint", dataset.Fingerprint()),
		zap.Duration("duration", time.Since(start)),
	)
	return dataset, nil
}

// InsertChunk writes one chunk of enriched records
func (s *CaseStore) InsertChunk(ctx context.Context, chunk []*models.Notificacao) (int, error) {
	if len(chunk) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(chunk))
	for i, n := range chunk {
		n.Enriquecer()
		docs[i] = n
	}

	result, err := s.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		inserted := 0
		if result != nil {
			inserted = len(result.InsertedIDs)
		}
		return inserted, fmt.Errorf("failed to insert %d case records: %w", len(chunk), err)
	}
	return len(result.InsertedIDs), nil
}

// Count returns the number of stored documents
func (s *CaseStore) Count(ctx context.Context) (int64, error) {
	n, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", s.collection.Name(), err)
	}
	return n, nil
}

// Drop removes every document and the collection itself
func (s *CaseStore) Drop(ctx context.Context) error {
	if err := s.collection.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop %s: %w", s.collection.Name(), err)
	}
	s.logger.Info("collection dropped", zap.String("collection", s.collection.Name()))
	return nil
}
