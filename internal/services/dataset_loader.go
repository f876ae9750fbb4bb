package services

import (
	"context"
	"fmt"

	"github.com/prefeitura-rio/app-painel-dengue/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
)

// LoadDataset loads the dataset from the source selected by cfg.
// db is only used when cfg.DataSource is mongo.
func LoadDataset(ctx context.Context, cfg *config.Config, db *mongo.Database) (*Dataset, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	switch cfg.DataSource {
	case config.DataSourceMongo:
		if db == nil {
			return nil, fmt.Errorf("data source %q requires a MongoDB connection", cfg.DataSource)
		}
		return NewCaseStore(db.Collection(cfg.CasesCollection)).LoadAll(ctx)
	case config.DataSourceCSV, "":
		return NewCSVLoader(cfg.DatasetChunkSize).LoadFile(ctx, cfg.DatasetPath)
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
}
