package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/darkkaiser/notify-dispatcher/internal/service/api/auth"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/constants"
	applog "github.com/darkkaiser/notify-dispatcher/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/tidwall/gjson"
)

// RequireAuthentication 애플리케이션 인증을 수행하는 미들웨어를 반환합니다.
//
// App Key 추출 우선순위:
//  1. X-App-Key 헤더 (권장)
//  2. app_key 쿼리 파라미터 (레거시, 사용 시 경고 로그)
//
// Application ID 추출 우선순위:
//  1. X-Application-Id 헤더 (권장, 본문을 읽지 않음)
//  2. 요청 본문의 application_id 필드 (본문을 읽은 뒤 다음 핸들러를 위해 복원)
//
// 인증에 성공하면 애플리케이션을 컨텍스트에 저장하고 다음 핸들러로 넘깁니다.
//
// Panics:
//   - authenticator가 nil인 경우
func RequireAuthentication(authenticator *auth.Authenticator) echo.MiddlewareFunc {
	if authenticator == nil {
		panic("Authenticator는 필수입니다")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			appKey := extractAppKey(c)
			if appKey == "" {
				return ErrAppKeyRequired
			}

			applicationID, err := extractApplicationID(c)
			if err != nil {
				return err
			}
			if applicationID == "" {
				return ErrApplicationIDRequired
			}

			app, err := authenticator.Authenticate(applicationID, appKey)
			if err != nil {
				return err
			}

			auth.SetApplication(c, app)

			return next(c)
		}
	}
}

func extractAppKey(c echo.Context) string {
	if appKey := c.Request().Header.Get(constants.HeaderXAppKey); appKey != "" {
		return appKey
	}

	appKey := c.QueryParam(constants.QueryParamAppKey)
	if appKey != "" {
		applog.WithComponentAndFields(constants.ComponentAuth, applog.Fields{
			"method":    c.Request().Method,
			"path":      c.Path(),
			"remote_ip": c.RealIP(),
		}).Warn("보안 경고: 쿼리 파라미터로 App Key 전달됨 (헤더 사용 권장)")
	}

	return appKey
}

func extractApplicationID(c echo.Context) (string, error) {
	if applicationID := c.Request().Header.Get(constants.HeaderXApplicationID); applicationID != "" {
		return applicationID, nil
	}

	req := c.Request()
	if req.Body == nil {
		return "", ErrEmptyBody
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		// BodyLimit 미들웨어가 적용된 경우 두 가지 형태로 크기 초과가 보고됩니다.
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return "", ErrBodyTooLarge
		}
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
			return "", ErrBodyTooLarge
		}
		return "", ErrBodyReadFailed
	}
	_ = req.Body.Close()

	if len(body) == 0 {
		return "", ErrEmptyBody
	}

	req.Body = io.NopCloser(bytes.NewReader(body))

	if !gjson.ValidBytes(body) {
		return "", ErrInvalidJSON
	}

	return gjson.GetBytes(body, "application_id").String(), nil
}
