// Package system 서버 상태 확인용 시스템 엔드포인트 핸들러를 제공합니다.
package system

import (
	"net/http"
	"time"

	"github.com/darkkaiser/notify-dispatcher/internal/pkg/version"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/model/system"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	applog "github.com/darkkaiser/notify-dispatcher/pkg/log"
	"github.com/labstack/echo/v4"
)

// Handler /health, /version 요청을 처리합니다.
type Handler struct {
	healthChecker contract.NotificationHealthChecker

	buildInfo version.Info

	serverStartTime time.Time
}

// NewHandler 시스템 핸들러를 생성합니다.
//
// Panics:
//   - healthChecker가 nil인 경우
func NewHandler(healthChecker contract.NotificationHealthChecker, buildInfo version.Info) *Handler {
	if healthChecker == nil {
		panic("NotificationHealthChecker는 필수입니다")
	}

	return &Handler{
		healthChecker:   healthChecker,
		buildInfo:       buildInfo,
		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버와 알림 서비스의 상태를 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	h.log(c).Debug("헬스체크 요청")

	dep := system.DependencyStatus{
		Status:  constants.HealthStatusHealthy,
		Message: "정상 작동 중",
	}
	if err := h.healthChecker.Health(); err != nil {
		dep = system.DependencyStatus{
			Status:  constants.HealthStatusUnhealthy,
			Message: err.Error(),
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status: dep.Status,
		Uptime: int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: map[string]system.DependencyStatus{
			constants.DependencyNotificationService: dep,
		},
	})
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 빌드 시점에 주입된 버전, 커밋, 빌드 번호를 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	h.log(c).Debug("버전 정보 요청")

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   h.buildInfo.GoVersion,
	})
}

func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  c.Path(),
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	})
}
