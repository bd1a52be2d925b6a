// Package handler v1 API의 알림/메시지 요청 핸들러를 제공합니다.
package handler

import (
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	applog "github.com/darkkaiser/notify-dispatcher/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler 인증된 애플리케이션의 요청을 알림 서비스로 전달합니다.
type Handler struct {
	notificationSender contract.NotificationSender
}

// NewHandler v1 핸들러를 생성합니다.
//
// Panics:
//   - notificationSender가 nil인 경우
func NewHandler(notificationSender contract.NotificationSender) *Handler {
	if notificationSender == nil {
		panic("NotificationSender는 필수입니다")
	}

	return &Handler{
		notificationSender: notificationSender,
	}
}

func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":   c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
