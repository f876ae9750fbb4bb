package observability

import (
	"github.com/prefeitura-rio/app-painel-dengue/internal/logging"
	"go.uber.org/zap"
)

// Logger returns the global logger instance
func Logger() *zap.Logger {
	return logging.Logger
}
