package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"seatreserve/internal/shared/config"
	"seatreserve/pkg/cache"
	"seatreserve/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// downCache fails every call, as an unreachable Redis would
type downCache struct{ cache.Service }

func (downCache) Ping(ctx context.Context) error { return errors.New("connection refused") }

func newEngine(t *testing.T, cacheService cache.Service) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Load()
	services := NewServices(cfg, Deps{
		Logger: logger.Discard(),
		Now:    func() time.Time { return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC) },
	})
	engine := gin.New()
	NewRouter(cfg, services, cacheService).SetupRoutes(engine)
	return engine, cfg
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthRoutes(t *testing.T) {
	engine, _ := newEngine(t, nil)

	w := get(engine, "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(engine, "/ping")
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "pong", body["message"])
}

func TestHealthReportsCacheOutage(t *testing.T) {
	engine, _ := newEngine(t, downCache{})

	w := get(engine, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestAPIRoutesRegistered(t *testing.T) {
	engine, cfg := newEngine(t, nil)
	base := cfg.GetAPIBasePath()

	assert.Equal(t, http.StatusOK, get(engine, base+"/buildings").Code)
	assert.Equal(t, http.StatusOK, get(engine, base+"/buildings/building123/floors").Code)
	assert.Equal(t, http.StatusOK, get(engine, base+"/spaces/types").Code)
	assert.Equal(t, http.StatusNotFound, get(engine, base+"/spaces/unknown").Code)

	// the public search sits next to the authenticated reservation routes
	assert.Equal(t, http.StatusBadRequest, get(engine, base+"/reservations/available").Code)
	assert.Equal(t, http.StatusUnauthorized, get(engine, base+"/reservations").Code)
	assert.Equal(t, http.StatusUnauthorized, get(engine, base+"/reservations/1").Code)
}
