package auth

import (
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/model/domain"
	"github.com/labstack/echo/v4"
)

// SetApplication 인증된 애플리케이션을 요청 컨텍스트에 저장합니다.
func SetApplication(c echo.Context, app *domain.Application) {
	c.Set(constants.ContextKeyApplication, app)
}

// GetApplication 인증 미들웨어가 저장한 애플리케이션을 반환합니다.
// 인증을 거치지 않은 요청이면 false를 반환합니다.
func GetApplication(c echo.Context) (*domain.Application, bool) {
	app, ok := c.Get(constants.ContextKeyApplication).(*domain.Application)
	return app, ok && app != nil
}
