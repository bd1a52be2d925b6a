package handler

import (
	"net/http"

	"github.com/darkkaiser/notify-dispatcher/internal/pkg/validator"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/auth"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/httputil"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/model/domain"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/v1/model/request"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/v1/model/response"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	applog "github.com/darkkaiser/notify-dispatcher/pkg/log"
	"github.com/labstack/echo/v4"
)

// PublishNotificationHandler godoc
// @Summary 알림 디스패치
// @Description 알림 하나를 수신자들에게 전달합니다. 수신자별 채널은 서버에 설정된 라우팅 테이블로 조회합니다.
// @Description 개별 전송 실패는 에러가 아니라 응답의 failed/render_failed 건수로 보고됩니다.
// @Tags Notification
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param X-Application-Id header string false "애플리케이션 ID (본문의 application_id 대신 사용)"
// @Param request body request.NotificationRequest true "알림 요청"
// @Success 200 {object} response.NotificationResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 502 {object} response.ErrorResponse "채널 조회 실패"
// @Failure 503 {object} response.ErrorResponse
// @Router /api/v1/notifications [post]
func (h *Handler) PublishNotificationHandler(c echo.Context) error {
	app, ok := auth.GetApplication(c)
	if !ok {
		return ErrUnauthenticated
	}

	req := new(request.NotificationRequest)
	if err := c.Bind(req); err != nil {
		return ErrInvalidBody
	}
	if err := checkApplicationID(req.ApplicationID, app); err != nil {
		return err
	}
	if err := validator.Struct(req); err != nil {
		return NewErrValidationFailed(validator.FormatValidationError(err))
	}

	dispatchReq, err := req.ToDispatchRequest(app.DefaultProvider)
	if err != nil {
		return NewErrValidationFailed(err.Error())
	}
	if dispatchReq.Provider == "" {
		return ErrProviderRequired
	}

	report, err := h.notificationSender.Notify(c.Request().Context(), dispatchReq)
	if err != nil {
		return httputil.FromAppError(err)
	}

	resp := response.NotificationResponse{
		ResultCode:     0,
		NotificationID: dispatchReq.Notification.ID.String(),
		Provider:       dispatchReq.Provider.String(),
		Recipients:     report.Recipients,
		Delivered:      report.Count(contract.StatusDelivered),
		Suppressed:     report.Count(contract.StatusSuppressed),
		Failed:         report.Count(contract.StatusFailed),
		RenderFailed:   report.Count(contract.StatusRenderFailed),
	}

	h.log(c).WithFields(applog.Fields{
		"application_id":  app.ID,
		"notification_id": resp.NotificationID,
		"provider":        resp.Provider,
		"recipients":      resp.Recipients,
		"delivered":       resp.Delivered,
		"failed":          resp.Failed,
	}).Info("알림 디스패치 요청 처리 완료")

	return c.JSON(http.StatusOK, resp)
}

// checkApplicationID 본문에 application_id가 있다면 인증된 애플리케이션과 같은지 확인합니다.
func checkApplicationID(reqAppID string, app *domain.Application) error {
	if reqAppID != "" && reqAppID != app.ID {
		return NewErrAppIDMismatch(reqAppID, app.ID)
	}
	return nil
}
