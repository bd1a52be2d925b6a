package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/darkkaiser/notify-dispatcher/internal/config"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/auth"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/httputil"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/v1/handler"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type stubSender struct {
	messages []contract.MessageRequest
}

func (s *stubSender) Notify(_ context.Context, req contract.DispatchRequest) (*contract.Report, error) {
	req.Notification.EnsureID()
	return &contract.Report{Provider: req.Provider}, nil
}

func (s *stubSender) SendMessage(_ context.Context, req contract.MessageRequest) (contract.DeliveryStatus, error) {
	s.messages = append(s.messages, req)
	return contract.StatusDelivered, nil
}

func newTestServer(sender contract.NotificationSender) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler

	authenticator := auth.NewAuthenticator(&config.AppConfig{
		NotifyAPI: config.NotifyAPIConfig{
			Applications: []config.ApplicationConfig{
				{ID: "ops", AppKey: "ops-key", DefaultProvider: "telegram"},
			},
		},
	})
	RegisterRoutes(e, handler.NewHandler(sender), authenticator)

	return e
}

func TestRegisterRoutes(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		contentType string
		appKey      string
		body        string
		wantStatus  int
	}{
		{"Message", "/api/v1/messages", echo.MIMEApplicationJSON, "ops-key", `{"application_id":"ops","integration_id":"ops-telegram","channel_id":"-100","text":"hi"}`, http.StatusOK},
		{"Notification", "/api/v1/notifications", echo.MIMEApplicationJSON, "ops-key", `{"application_id":"ops","notification":{"type":"activity","organization_id":"acme","metrics_key":"activity","message":"m"},"recipients":["user:1"]}`, http.StatusOK},
		{"Wrong content type before auth", "/api/v1/messages", echo.MIMETextPlain, "", `text`, http.StatusUnsupportedMediaType},
		{"Missing app key", "/api/v1/messages", echo.MIMEApplicationJSON, "", `{"application_id":"ops"}`, http.StatusBadRequest},
		{"Wrong app key", "/api/v1/notifications", echo.MIMEApplicationJSON, "bad", `{"application_id":"ops"}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &stubSender{}
			e := newTestServer(sender)

			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, tt.contentType)
			if tt.appKey != "" {
				req.Header.Set(constants.HeaderXAppKey, tt.appKey)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestRegisterRoutes_MessageUsesDefaultProvider(t *testing.T) {
	sender := &stubSender{}
	e := newTestServer(sender)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(`{"integration_id":"ops-telegram","channel_id":"-100","text":"hi"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(constants.HeaderXAppKey, "ops-key")
	req.Header.Set(constants.HeaderXApplicationID, "ops")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result_code":0,"status":"delivered"}`, rec.Body.String())
	if assert.Len(t, sender.messages, 1) {
		assert.Equal(t, contract.ProviderTelegram, sender.messages[0].Provider)
	}
}

func TestRegisterRoutes_GetNotAllowed(t *testing.T) {
	e := newTestServer(&stubSender{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/messages", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
