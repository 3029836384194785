package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArkanTsabit123/Student-Management-System/internal/config"
	"github.com/ArkanTsabit123/Student-Management-System/internal/middleware"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	return cfg
}

func TestLoadConfigAndSetupLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n  format: json\n"), 0o600))

	cfg, _, err := LoadConfigAndSetupLogger(path)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func TestLoadConfigAndSetupLogger_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  format: xml\n"), 0o600))

	_, _, err := LoadConfigAndSetupLogger(path)

	assert.Error(t, err)
}

func TestSetupRouter_Routes(t *testing.T) {
	deps := BuildDependencies(nil, zerolog.Nop())
	router := SetupRouter(testConfig(), deps, zerolog.Nop())

	registered := make(map[string]bool)
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /ping",
		"POST /api/v1/students",
		"GET /api/v1/students",
		"GET /api/v1/students/by-nim/:nim",
		"GET /api/v1/students/:id",
		"PUT /api/v1/students/:id",
		"DELETE /api/v1/students/:id",
		"GET /api/v1/students/:id/academic-record",
		"GET /api/v1/students/:id/courses",
		"POST /api/v1/grades",
		"GET /api/v1/courses",
		"GET /api/v1/courses/:id",
		"GET /api/v1/courses/:id/statistics",
		"GET /api/v1/majors",
		"GET /api/v1/summary",
		"GET /api/v1/reports/students",
		"GET /api/v1/reports/students/:id/transcript",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestSetupRouter_Ping(t *testing.T) {
	router := SetupRouter(testConfig(), BuildDependencies(nil, zerolog.Nop()), zerolog.Nop())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestSetupRouter_RejectsBadIDBeforeStorage(t *testing.T) {
	router := SetupRouter(testConfig(), BuildDependencies(nil, zerolog.Nop()), zerolog.Nop())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/students/0", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
