// Package v1 알림 API v1 라우트를 등록합니다.
package v1

import (
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/auth"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/middleware"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes /api/v1 그룹의 라우트를 등록합니다. 모든 라우트는 App Key 인증을 요구합니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, authenticator *auth.Authenticator) {
	v1Group := e.Group("/api/v1")

	// Content-Type 검사를 인증보다 먼저 수행해야 본문 파싱 전에 잘못된 요청을 걸러낼 수 있음
	requireJSON := middleware.ValidateContentType(echo.MIMEApplicationJSON)
	requireAuth := middleware.RequireAuthentication(authenticator)

	v1Group.POST("/notifications", h.PublishNotificationHandler, requireJSON, requireAuth)
	v1Group.POST("/messages", h.SendMessageHandler, requireJSON, requireAuth)
}
