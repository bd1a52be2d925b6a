// Package httputil API 응답과 에러 처리를 위한 HTTP 유틸리티를 제공합니다.
package httputil

import (
	"errors"
	"net/http"

	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
)

// NewHTTPError 지정한 상태 코드와 메시지로 표준 에러 응답을 담은 echo.HTTPError를 생성합니다.
func NewHTTPError(code int, message string) error {
	return echo.NewHTTPError(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}

// NewBadRequestError 400 Bad Request 에러를 생성합니다.
func NewBadRequestError(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

// NewUnauthorizedError 401 Unauthorized 에러를 생성합니다.
func NewUnauthorizedError(message string) error {
	return NewHTTPError(http.StatusUnauthorized, message)
}

// NewNotFoundError 404 Not Found 에러를 생성합니다.
func NewNotFoundError(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

// NewTooManyRequestsError 429 Too Many Requests 에러를 생성합니다.
func NewTooManyRequestsError(message string) error {
	return NewHTTPError(http.StatusTooManyRequests, message)
}

// NewInternalServerError 500 Internal Server Error 에러를 생성합니다.
func NewInternalServerError(message string) error {
	return NewHTTPError(http.StatusInternalServerError, message)
}

// NewServiceUnavailableError 503 Service Unavailable 에러를 생성합니다.
func NewServiceUnavailableError(message string) error {
	return NewHTTPError(http.StatusServiceUnavailable, message)
}

// FromAppError 서비스 계층의 AppError를 HTTP 에러로 변환합니다.
//
// 에러 체인의 가장 바깥쪽 AppError 타입으로 상태 코드를 결정합니다.
// 5xx로 분류되는 내부 오류는 원인 메시지를 노출하지 않습니다.
func FromAppError(err error) error {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return NewInternalServerError(constants.ErrMsgInternalServer)
	}

	code := statusCode(appErr.Type())
	if code == http.StatusInternalServerError {
		return echo.NewHTTPError(code, response.ErrorResponse{
			ResultCode: code,
			Message:    constants.ErrMsgInternalServer,
		}).SetInternal(err)
	}

	return echo.NewHTTPError(code, response.ErrorResponse{
		ResultCode: code,
		Message:    appErr.Message(),
	}).SetInternal(err)
}

func statusCode(t apperrors.ErrorType) int {
	switch t {
	case apperrors.InvalidInput:
		return http.StatusBadRequest
	case apperrors.Unauthorized:
		return http.StatusUnauthorized
	case apperrors.Forbidden:
		return http.StatusForbidden
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.Conflict:
		return http.StatusConflict
	case apperrors.RateLimited:
		return http.StatusTooManyRequests
	case apperrors.ResolveFailed:
		return http.StatusBadGateway
	case apperrors.Unavailable:
		return http.StatusServiceUnavailable
	case apperrors.Timeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Success 본문 없이 성공 응답을 반환합니다.
func Success(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse{
		ResultCode: 0,
		Message:    "성공",
	})
}
