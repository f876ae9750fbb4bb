package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-painel-dengue/internal/services"
	"github.com/stretchr/testify/require"
)

const sampleCSVPath = "../services/testdata/sinan_amostra.csv"

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestRouter wires the dashboard routes over the sample dataset
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	ds, err := services.NewCSVLoader(100).LoadFile(context.Background(), sampleCSVPath)
	require.NoError(t, err)
	return newRouter(NewDashboardHandlers(services.NewDashboardService(ds, nil), nil))
}

func newRouter(h *DashboardHandlers) *gin.Engine {
	router := gin.New()
	RegisterRoutes(router, h)
	return router
}

func doGet(router http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}
