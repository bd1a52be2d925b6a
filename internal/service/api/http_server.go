package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/notify-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/notify-dispatcher/internal/service/api/middleware"
	applog "github.com/darkkaiser/notify-dispatcher/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성 옵션
type HTTPServerConfig struct {
	Debug bool

	// EnableHSTS TLS로 서비스할 때 Strict-Transport-Security 헤더를 추가합니다.
	EnableHSTS bool

	AllowOrigins []string

	// RequestTimeout 요청 하나의 처리 제한 시간 (0이면 DefaultRequestTimeout)
	RequestTimeout time.Duration
}

// hstsMaxAge Strict-Transport-Security max-age (1년)
const hstsMaxAge = 31536000

// NewHTTPServer 공통 미들웨어가 적용된 Echo 인스턴스를 생성합니다.
//
// 미들웨어는 등록 순서대로 실행됩니다.
//  1. PanicRecovery: 이후 모든 미들웨어와 핸들러의 panic 복구
//  2. RequestID: 요청 추적 ID 발급 (이후 로그에 포함)
//  3. Server 헤더 제거
//  4. HTTPLogger: 요청/응답 로깅
//  5. RateLimiting: IP별 요청 제한
//  6. BodyLimit: 요청 본문 크기 제한
//  7. ContextTimeout: 요청 컨텍스트 제한 시간
//  8. CORS
//  9. Secure: 보안 헤더
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}

	e.HTTPErrorHandler = httputil.ErrorHandler

	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = constants.DefaultRequestTimeout
	}

	secureConfig := middleware.DefaultSecureConfig
	if cfg.EnableHSTS {
		secureConfig.HSTSMaxAge = hstsMaxAge
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Del(echo.HeaderServer)
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	e.Use(appmiddleware.RateLimiting(constants.DefaultRateLimitPerSecond, constants.DefaultRateLimitBurst))
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: timeout,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderContentType, constants.HeaderXAppKey, constants.HeaderXApplicationID},
	}))
	e.Use(middleware.SecureWithConfig(secureConfig))

	return e
}
