package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/your-org/repairshop-backend/internal/config"
	"github.com/your-org/repairshop-backend/internal/domain/inventory/mocks"
	"github.com/your-org/repairshop-backend/internal/domain/reconcile"
	"github.com/your-org/repairshop-backend/internal/interfaces/http/handlers"
	"github.com/your-org/repairshop-backend/internal/interfaces/http/routes"
)

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Name: "test", Version: "0.0.1", Environment: "test"},
		Server: config.ServerConfig{Port: "0", RequestTimeout: time.Second, MaxBodyBytes: 1 << 20},
		Security: config.SecurityConfig{
			RateLimitPerMinute: 100,
			CORSAllowedOrigins: []string{"*"},
		},
		Store: config.StoreConfig{Backend: config.BackendPostgres},
	}
}

func newTestServer(t *testing.T) (*Server, *mocks.Store, *miniredis.Miniredis) {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	log, _ := test.NewNullLogger()
	store := new(mocks.Store)
	h := routes.Handlers{
		Stock:     handlers.NewStockHandler(store, time.Second),
		Reconcile: handlers.NewReconcileHandler(reconcile.NewEngine(store, log, time.Second)),
	}

	return NewServer(testConfig(), log, store, rdb, h), store, mr
}

func TestHealth(t *testing.T) {
	server, store, _ := newTestServer(t)
	store.On("Ping", mock.Anything).Return(nil)

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHealth_StoreDown(t *testing.T) {
	server, store, _ := newTestServer(t)
	store.On("Ping", mock.Anything).Return(errors.New("dial tcp: refused"))

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "postgres store unreachable")
}

func TestHealth_RedisDown(t *testing.T) {
	server, store, mr := newTestServer(t)
	store.On("Ping", mock.Anything).Return(nil)
	mr.Close()

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "redis ping failed")
}

func TestReady(t *testing.T) {
	server, _, _ := newTestServer(t)

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uptime"`)
}
