package system

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/notify-dispatcher/internal/pkg/version"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/model/system"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthFunc func() error

func (f healthFunc) Health() error { return f() }

func get(t *testing.T, h echo.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, path, nil), rec)
	c.SetPath(path)

	require.NoError(t, h(c))
	return rec
}

func TestHealthCheckHandler(t *testing.T) {
	tests := []struct {
		name       string
		healthErr  error
		wantStatus string
		wantMsg    string
	}{
		{"Healthy", nil, constants.HealthStatusHealthy, "정상 작동 중"},
		{"Service stopped", errors.New("알림 서비스가 실행 중이 아닙니다"), constants.HealthStatusUnhealthy, "알림 서비스가 실행 중이 아닙니다"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(healthFunc(func() error { return tt.healthErr }), version.Info{})

			rec := get(t, h.HealthCheckHandler, "/health")
			assert.Equal(t, http.StatusOK, rec.Code)

			var resp system.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.GreaterOrEqual(t, resp.Uptime, int64(0))
			require.Contains(t, resp.Dependencies, constants.DependencyNotificationService)
			assert.Equal(t, tt.wantStatus, resp.Dependencies[constants.DependencyNotificationService].Status)
			assert.Equal(t, tt.wantMsg, resp.Dependencies[constants.DependencyNotificationService].Message)
		})
	}
}

func TestVersionHandler(t *testing.T) {
	h := NewHandler(healthFunc(func() error { return nil }), version.Info{
		Version:     "v1.2.3",
		Commit:      "f25b8bf",
		BuildDate:   "2026-01-01T00:00:00Z",
		BuildNumber: "42",
		GoVersion:   "go1.24.0",
	})

	rec := get(t, h.VersionHandler, "/version")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"version": "v1.2.3",
		"commit": "f25b8bf",
		"build_date": "2026-01-01T00:00:00Z",
		"build_number": "42",
		"go_version": "go1.24.0"
	}`, rec.Body.String())
}

func TestNewHandler_NilHealthCheckerPanics(t *testing.T) {
	assert.Panics(t, func() { NewHandler(nil, version.Info{}) })
}
