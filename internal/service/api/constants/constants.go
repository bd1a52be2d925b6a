// Package constants API 서버 전반에서 공유하는 상수를 정의합니다.
package constants

import "time"

// 로깅용 컴포넌트 이름
const (
	ComponentService      = "api.service"
	ComponentHandler      = "api.handler"
	ComponentMiddleware   = "api.middleware"
	ComponentAuth         = "api.middleware.auth"
	ComponentErrorHandler = "api.error_handler"
)

// HTTP 헤더 및 쿼리 파라미터 키
const (
	// HeaderXAppKey 애플리케이션 인증용 HTTP 헤더 키 (권장 방식)
	HeaderXAppKey = "X-App-Key"

	// HeaderXApplicationID 애플리케이션 식별용 HTTP 헤더 키
	// 이 헤더가 존재하면 Body 파싱을 건너뛰고 헤더 값으로 인증합니다.
	HeaderXApplicationID = "X-Application-Id"

	// HeaderRetryAfter Rate Limit 초과 시 재시도 대기 시간(초)을 알려주는 헤더
	HeaderRetryAfter = "Retry-After"

	// QueryParamAppKey 레거시 클라이언트를 위한 App Key 쿼리 파라미터
	QueryParamAppKey = "app_key"
)

// ContextKeyApplication 인증된 Application 객체를 echo.Context에 저장할 때 사용하는 키
const ContextKeyApplication = "authenticated_application"

// 서버 기본값
const (
	DefaultRequestTimeout    = 60 * time.Second
	DefaultReadTimeout       = 15 * time.Second
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultWriteTimeout      = 90 * time.Second
	DefaultIdleTimeout       = 120 * time.Second

	// DefaultShutdownTimeout 진행 중인 요청이 끝나기를 기다리는 최대 시간
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxBodySize 요청 본문의 최대 크기 (128KB)
	DefaultMaxBodySize = "128K"

	DefaultRateLimitPerSecond = 20
	DefaultRateLimitBurst     = 40
)

// SensitiveQueryParams 로그 기록 시 마스킹 처리해야 할 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	QueryParamAppKey,
	"api_key",
	"password",
	"token",
	"secret",
}

// 헬스체크 상태 값
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"

	// DependencyNotificationService 헬스체크 응답의 알림 서비스 의존성 키
	DependencyNotificationService = "notification_service"
)

// 클라이언트에게 반환하는 공통 에러 메시지
const (
	ErrMsgInternalServer       = "내부 서버 오류가 발생하였습니다"
	ErrMsgNotFound             = "요청한 리소스를 찾을 수 없습니다"
	ErrMsgTooManyRequests      = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"
	ErrMsgUnsupportedMediaType = "지원하지 않는 Content-Type 형식입니다"
)
