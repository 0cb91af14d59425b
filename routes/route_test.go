package routes

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tresor228/pitch-ia/backend"
	"github.com/tresor228/pitch-ia/service"
)

func newRouter(t *testing.T, origins []string) (*gin.Engine, *test.Hook) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := backend.OpenStore(filepath.Join(t.TempDir(), "pitches.json"))
	require.NoError(t, err)
	logger, hook := test.NewNullLogger()
	h := backend.NewHandler(service.DemoGenerator{}, store, logger)
	return Web(h, origins, logger), hook
}

func TestWeb_GenerateWithDemoGenerator(t *testing.T) {
	r, hook := newRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/generate-pitch", strings.NewReader(`{"idea":"la livraison en zone rurale"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"problem"`)
	assert.Contains(t, rr.Body.String(), `"businessModel"`)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, http.StatusOK, entry.Data["status"])
	assert.Equal(t, "/generate-pitch", entry.Data["path"])
}

func TestWeb_LogsClientErrorsAsWarnings(t *testing.T) {
	r, hook := newRouter(t, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/pitches/inconnu?x=1", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "/pitches/inconnu?x=1", entry.Data["path"])
}

func TestWeb_HealthIsNotLogged(t *testing.T) {
	r, hook := newRouter(t, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, hook.AllEntries())
}

func TestWeb_CORS(t *testing.T) {
	r, _ := newRouter(t, []string{"http://app.test"})

	req := httptest.NewRequest(http.MethodOptions, "/generate-pitch", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "http://app.test", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/examples", nil)
	req.Header.Set("Origin", "http://evil.test")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
