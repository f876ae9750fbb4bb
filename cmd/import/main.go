package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prefeitura-rio/app-painel-dengue/internal/config"
	"github.com/prefeitura-rio/app-painel-dengue/internal/logging"
	"github.com/prefeitura-rio/app-painel-dengue/internal/observability"
	"github.com/prefeitura-rio/app-painel-dengue/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "import",
		Short: "Carrega notificações do SINAN no MongoDB",
	}

	rootCmd.AddCommand(csvCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func csvCmd() *cobra.Command {
	var (
		file      string
		chunkSize int
		drop      bool
	)

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Importa um CSV (ou .csv.gz) do SINAN para a coleção de casos",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.InitLogger(); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logging.Sync()

			// --file takes precedence over DATASET_PATH
			if file != "" {
				if err := os.Setenv("DATASET_PATH", file); err != nil {
					return err
				}
			}
			if err := config.LoadConfig(); err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg := config.AppConfig
			if cfg.DatasetPath == "" {
				return fmt.Errorf("no input file: use --file or DATASET_PATH")
			}
			if chunkSize <= 0 {
				chunkSize = cfg.DatasetChunkSize
			}

			observability.InitTracer()
			defer observability.ShutdownTracer()

			if err := config.InitMongoDB(); err != nil {
				return err
			}
			defer config.CloseConnections(context.Background())

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store := services.NewCaseStore(config.MongoDB.Collection(cfg.CasesCollection))
			if drop {
				logging.Logger.Info("dropping cases collection", zap.String("collection", cfg.CasesCollection))
				if err := store.Drop(ctx); err != nil {
					return err
				}
			}

			importer := services.NewImportService(services.NewCSVLoader(chunkSize), store)
			stats, err := importer.ImportFile(ctx, cfg.DatasetPath)
			if err != nil {
				logging.Logger.Error("import failed",
					zap.String("file", cfg.DatasetPath),
					zap.Int("read", stats.Read),
					zap.Int("written", stats.Written),
					zap.Error(err),
				)
				return err
			}

			total, err := store.Count(ctx)
			if err != nil {
				return err
			}
			logging.Logger.Info("import complete",
				zap.String("file", cfg.DatasetPath),
				zap.String("collection", cfg.CasesCollection),
				zap.Int("read", stats.Read),
				zap.Int("written", stats.Written),
				zap.Int("chunks", stats.Chunks),
				zap.Duration("duration", stats.Duration),
				zap.Int64("collection_total", total),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV file to import (defaults to DATASET_PATH)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "rows per chunk (defaults to DATASET_CHUNK_SIZE)")
	cmd.Flags().BoolVar(&drop, "drop", false, "drop the cases collection before importing")

	return cmd
}
