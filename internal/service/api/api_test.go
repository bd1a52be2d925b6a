package api

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/notify-dispatcher/internal/config"
	"github.com/darkkaiser/notify-dispatcher/internal/pkg/version"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/handler/system"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/metrics"
	"github.com/darkkaiser/notify-dispatcher/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotificationService struct {
	healthErr error
}

func (s *stubNotificationService) Notify(_ context.Context, req contract.DispatchRequest) (*contract.Report, error) {
	req.Notification.EnsureID()
	return &contract.Report{Provider: req.Provider}, nil
}

func (s *stubNotificationService) SendMessage(context.Context, contract.MessageRequest) (contract.DeliveryStatus, error) {
	return contract.StatusDelivered, nil
}

func (s *stubNotificationService) Health() error { return s.healthErr }

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestNewHTTPServer_Middlewares(t *testing.T) {
	e := NewHTTPServer(HTTPServerConfig{AllowOrigins: []string{"https://console.example.com"}, EnableHSTS: true})
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Equal(t, "nosniff", rec.Header().Get(echo.HeaderXContentTypeOptions))
	assert.Equal(t, "SAMEORIGIN", rec.Header().Get(echo.HeaderXFrameOptions))
	assert.Empty(t, rec.Header().Get(echo.HeaderServer))

	// HSTS는 TLS 요청에만 적용됩니다.
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXForwardedProto, "https")
	rec = serve(e, req)
	assert.Contains(t, rec.Header().Get(echo.HeaderStrictTransportSecurity), "max-age=31536000")
}

func TestNewHTTPServer_CORSPreflight(t *testing.T) {
	e := NewHTTPServer(HTTPServerConfig{AllowOrigins: []string{"https://console.example.com"}})
	e.POST("/api/v1/messages", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/messages", nil)
	req.Header.Set(echo.HeaderOrigin, "https://console.example.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := serve(e, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://console.example.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), constants.HeaderXAppKey)
}

func TestNewHTTPServer_NotFoundIsJSON(t *testing.T) {
	e := NewHTTPServer(HTTPServerConfig{AllowOrigins: []string{"*"}})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"result_code":404,"message":%q}`, constants.ErrMsgNotFound), rec.Body.String())
}

func TestNewHTTPServer_BodyLimit(t *testing.T) {
	e := NewHTTPServer(HTTPServerConfig{AllowOrigins: []string{"*"}})
	e.POST("/echo", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("a", 200*1024)))
	rec := serve(e, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRegisterRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(reg)
	recorder.IncSent("alert_rule.notifications.sent", "slack.alert_rule.notification")

	e := NewHTTPServer(HTTPServerConfig{AllowOrigins: []string{"*"}})
	RegisterRoutes(e, system.NewHandler(&stubNotificationService{}, version.Info{Version: "v9.9.9"}), reg)

	t.Run("Health", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	})

	t.Run("Version", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/version", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"version":"v9.9.9"`)
	})

	t.Run("Metrics", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "notifications_sent_total")
	})

	t.Run("Swagger", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/api/v1/notifications")
	})
}

func newTestConfig(port int) *config.AppConfig {
	return &config.AppConfig{
		NotifyAPI: config.NotifyAPIConfig{
			WS:   config.WSConfig{ListenPort: port},
			CORS: config.CORSConfig{AllowOrigins: []string{"*"}},
			Applications: []config.ApplicationConfig{
				{ID: "ops", AppKey: "ops-key", DefaultProvider: "slack"},
			},
		},
	}
}

func TestService_Lifecycle(t *testing.T) {
	port := testutil.FreePort(t)
	svc := NewService(newTestConfig(port), &stubNotificationService{}, prometheus.NewRegistry(), version.Info{})

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}

	wg.Add(1)
	require.NoError(t, svc.Start(ctx, wg))

	// 중복 시작은 무시되며 WaitGroup 카운트를 즉시 반환합니다.
	wg.Add(1)
	require.NoError(t, svc.Start(ctx, wg))

	client := &http.Client{Timeout: time.Second, Transport: &http.Transport{DisableKeepAlives: true}}
	url := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	require.Eventually(t, func() bool {
		resp, err := client.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("API 서비스가 종료되지 않았습니다")
	}

	svc.runningMu.Lock()
	assert.False(t, svc.running)
	svc.runningMu.Unlock()
}

func TestService_TLS(t *testing.T) {
	certFile, keyFile, pool := testutil.SelfSignedCert(t)

	port := testutil.FreePort(t)
	cfg := newTestConfig(port)
	cfg.NotifyAPI.WS.TLSServer = true
	cfg.NotifyAPI.WS.TLSCertFile = certFile
	cfg.NotifyAPI.WS.TLSKeyFile = keyFile

	svc := NewService(cfg, &stubNotificationService{}, prometheus.NewRegistry(), version.Info{})

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, svc.Start(ctx, wg))
	defer func() {
		cancel()
		wg.Wait()
	}()

	client := &http.Client{
		Timeout:   time.Second,
		Transport: &http.Transport{TLSClientConfig: &tls.Config{RootCAs: pool}, DisableKeepAlives: true},
	}
	url := fmt.Sprintf("https://127.0.0.1:%d/health", port)

	var hsts string
	require.Eventually(t, func() bool {
		resp, err := client.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		hsts = resp.Header.Get(echo.HeaderStrictTransportSecurity)
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	assert.Contains(t, hsts, "max-age=31536000")
}

func TestService_PortInUse(t *testing.T) {
	svc := NewService(newTestConfig(testutil.OccupiedPort(t)), &stubNotificationService{}, nil, version.Info{})

	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, svc.Start(context.Background(), wg))

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("리슨 실패 후 서비스 루프가 종료되어야 합니다")
	}
}

func TestNewService_Panics(t *testing.T) {
	assert.Panics(t, func() { NewService(nil, &stubNotificationService{}, nil, version.Info{}) })
	assert.Panics(t, func() { NewService(&config.AppConfig{}, nil, nil, version.Info{}) })
}
