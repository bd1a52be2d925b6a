package handler

import (
	"net/http"

	"github.com/darkkaiser/notify-dispatcher/internal/pkg/validator"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/auth"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/httputil"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/v1/model/request"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/v1/model/response"
	applog "github.com/darkkaiser/notify-dispatcher/pkg/log"
	"github.com/labstack/echo/v4"
)

// SendMessageHandler godoc
// @Summary 채널 메시지 전송
// @Description 렌더링과 수신자 조회 없이 지정한 채널로 텍스트를 그대로 보냅니다.
// @Description 전송 실패는 서버 로그로만 남고, 응답은 항상 200과 전송 상태입니다.
// @Tags Notification
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param X-Application-Id header string false "애플리케이션 ID (본문의 application_id 대신 사용)"
// @Param request body request.MessageRequest true "메시지 요청"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /api/v1/messages [post]
func (h *Handler) SendMessageHandler(c echo.Context) error {
	app, ok := auth.GetApplication(c)
	if !ok {
		return ErrUnauthenticated
	}

	req := new(request.MessageRequest)
	if err := c.Bind(req); err != nil {
		return ErrInvalidBody
	}
	if err := checkApplicationID(req.ApplicationID, app); err != nil {
		return err
	}
	if err := validator.Struct(req); err != nil {
		return NewErrValidationFailed(validator.FormatValidationError(err))
	}

	msgReq := req.ToMessageRequest(app.DefaultProvider)
	if msgReq.Provider == "" {
		return ErrProviderRequired
	}

	status, err := h.notificationSender.SendMessage(c.Request().Context(), msgReq)
	if err != nil {
		return httputil.FromAppError(err)
	}

	h.log(c).WithFields(applog.Fields{
		"application_id": app.ID,
		"provider":       msgReq.Provider,
		"integration_id": msgReq.IntegrationID,
		"channel_id":     msgReq.ChannelID,
		"status":         status,
	}).Info("채널 메시지 전송 요청 처리 완료")

	return c.JSON(http.StatusOK, response.MessageResponse{
		ResultCode: 0,
		Status:     string(status),
	})
}
