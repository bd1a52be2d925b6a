package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/darkkaiser/notify-dispatcher/pkg/validation"
	"github.com/go-playground/validator/v10"
)

// AppConfig 애플리케이션의 모든 설정을 포함하는 최상위 구조체
type AppConfig struct {
	Debug          bool                 `json:"debug"`
	Dispatch       DispatchConfig       `json:"dispatch"`
	Providers      ProvidersConfig      `json:"providers"`
	Integrations   []IntegrationConfig  `json:"integrations"`
	Routes         []RouteConfig        `json:"routes"`
	CircuitBreaker CircuitBreakerConfig `json:"circuit_breaker"`
	Tracing        TracingConfig        `json:"tracing"`
	NotifyAPI      NotifyAPIConfig      `json:"notify_api"`
}

// validate 설정 파일 로드 직후, 각 설정 항목의 정합성과 필수 값의 유효성을 검증합니다.
func (c *AppConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c.Dispatch, "Dispatch"); err != nil {
		return err
	}
	if err := checkStruct(v, c.Providers, "Providers"); err != nil {
		return err
	}

	integrations, err := c.validateIntegrations(v)
	if err != nil {
		return err
	}

	if err := c.validateRoutes(v, integrations); err != nil {
		return err
	}

	if c.CircuitBreaker.Enabled {
		if err := checkStruct(v, c.CircuitBreaker, "CircuitBreaker"); err != nil {
			return err
		}
	}

	if err := c.Tracing.validate(v); err != nil {
		return err
	}

	return c.NotifyAPI.validate(v, c.configuredProviders())
}

func (c *AppConfig) validateIntegrations(v *validator.Validate) (map[string]IntegrationConfig, error) {
	if len(c.Integrations) == 0 {
		return nil, apperrors.New(apperrors.InvalidInput, "Integration이 하나 이상 등록되어야 합니다")
	}

	if err := checkUniqueField(v, c.Integrations, "ID", "Integration"); err != nil {
		return nil, err
	}

	byID := make(map[string]IntegrationConfig, len(c.Integrations))
	for _, integration := range c.Integrations {
		if err := integration.validate(v); err != nil {
			return nil, err
		}
		byID[integration.ID] = integration
	}

	return byID, nil
}

func (c *AppConfig) validateRoutes(v *validator.Validate, integrations map[string]IntegrationConfig) error {
	for i, route := range c.Routes {
		contextName := fmt.Sprintf("Route[%d]", i)

		if err := checkStruct(v, route, contextName); err != nil {
			return err
		}

		if _, err := contract.ParseActor(route.Recipient); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s의 수신자(recipient) 형식이 올바르지 않습니다: '%s' (예: user:42, team:ops)", contextName, route.Recipient))
		}

		integration, ok := integrations[route.IntegrationID]
		if !ok {
			return apperrors.New(apperrors.NotFound, fmt.Sprintf("%s에서 참조하는 Integration('%s')이 정의되지 않았습니다", contextName, route.IntegrationID))
		}
		if integration.Provider != route.Provider {
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 provider('%s')가 Integration('%s')의 provider('%s')와 다릅니다", contextName, route.Provider, integration.ID, integration.Provider))
		}
	}

	return nil
}

// configuredProviders Integration이 하나 이상 등록된 Provider 목록을 반환합니다.
func (c *AppConfig) configuredProviders() []string {
	var providers []string
	for _, integration := range c.Integrations {
		if !slices.Contains(providers, integration.Provider) {
			providers = append(providers, integration.Provider)
		}
	}
	return providers
}

// VerifyRecommendations 서비스 운영의 안정성과 보안을 위해 권장되는 설정 준수 여부를 진단합니다.
// 에러를 발생시키지는 않으나, 잠재적 위험 요소에 대한 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	warnings := c.NotifyAPI.VerifyRecommendations()

	if len(c.Routes) == 0 {
		warnings = append(warnings, "등록된 Route가 없습니다. 모든 알림은 수신 채널이 없어 전송되지 않습니다")
	}
	if c.Tracing.Enabled && c.Tracing.Insecure {
		warnings = append(warnings, fmt.Sprintf("트레이스 수집기(%s)로 암호화되지 않은 연결을 사용합니다", c.Tracing.Endpoint))
	}

	return warnings
}

// ContractIntegrations 설정된 Integration을 서비스에서 사용하는 형태로 변환합니다.
func (c *AppConfig) ContractIntegrations() []contract.Integration {
	integrations := make([]contract.Integration, 0, len(c.Integrations))
	for _, integration := range c.Integrations {
		integrations = append(integrations, integration.Contract())
	}
	return integrations
}

// DispatchConfig 디스패치 동작을 정의하는 설정 구조체
type DispatchConfig struct {
	// MaxConcurrency 하나의 디스패치에서 동시에 처리하는 수신자 수입니다. 1이면 순차 처리합니다.
	MaxConcurrency int `json:"max_concurrency" validate:"min=1,max=64"`
}

// ProvidersConfig Provider별 클라이언트 설정 구조체
type ProvidersConfig struct {
	Slack    SlackConfig    `json:"slack"`
	Telegram TelegramConfig `json:"telegram"`
}

// SlackConfig Slack 클라이언트 설정 구조체
type SlackConfig struct {
	Timeout time.Duration `json:"timeout" validate:"gt=0"`
}

// TelegramConfig Telegram 클라이언트 설정 구조체
type TelegramConfig struct {
	Timeout   time.Duration `json:"timeout" validate:"gt=0"`
	RateLimit float64       `json:"rate_limit" validate:"gt=0"`
	RateBurst int           `json:"rate_burst" validate:"min=1"`
}

// IntegrationConfig 하나의 워크스페이스(봇) 연결 정보를 정의하는 설정 구조체
type IntegrationConfig struct {
	ID       string `json:"id" validate:"required"`
	Provider string `json:"provider" validate:"required,oneof=slack telegram"`
	Client   string `json:"client" validate:"omitempty,oneof=sdk http"`
	Token    string `json:"token" validate:"required"`
	APIURL   string `json:"api_url"`
}

func (c *IntegrationConfig) validate(v *validator.Validate) error {
	contextName := fmt.Sprintf("Integration['%s']", c.ID)

	if err := checkStruct(v, c, contextName); err != nil {
		return err
	}

	switch contract.ExternalProvider(c.Provider) {
	case contract.ProviderSlack:
		if err := checkVar(v, c.Token, "slack_token", contextName); err != nil {
			return err
		}
	case contract.ProviderTelegram:
		if c.Client != "" {
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s: Telegram Integration은 client 설정을 지원하지 않습니다", contextName))
		}
		if err := checkVar(v, c.Token, "telegram_bot_token", contextName); err != nil {
			return err
		}
	}

	if err := validation.ValidateURL(c.APIURL); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s의 api_url 설정이 올바르지 않습니다", contextName))
	}

	return nil
}

// Contract 서비스에서 사용하는 Integration으로 변환합니다.
func (c IntegrationConfig) Contract() contract.Integration {
	return contract.Integration{
		ID:         c.ID,
		Provider:   contract.ExternalProvider(c.Provider),
		ClientKind: contract.ClientKind(c.Client),
		Token:      c.Token,
		APIURL:     c.APIURL,
	}
}

// RouteConfig 수신자에게 알림을 보낼 채널을 정의하는 설정 구조체
type RouteConfig struct {
	OrganizationID string `json:"organization_id" validate:"required"`
	Recipient      string `json:"recipient" validate:"required"`
	Provider       string `json:"provider" validate:"required,oneof=slack telegram"`
	ChannelID      string `json:"channel_id" validate:"required"`
	IntegrationID  string `json:"integration_id" validate:"required"`
}

// CircuitBreakerConfig Integration별 회로 차단기 설정 구조체
type CircuitBreakerConfig struct {
	Enabled          bool          `json:"enabled"`
	MaxRequests      uint32        `json:"max_requests" validate:"min=1"`
	Interval         time.Duration `json:"interval" validate:"gte=0"`
	Timeout          time.Duration `json:"timeout" validate:"gt=0"`
	FailureThreshold float64       `json:"failure_threshold" validate:"gt=0,lte=1"`
	MinRequests      uint32        `json:"min_requests" validate:"min=1"`
}

// TracingConfig OpenTelemetry 트레이스 내보내기 설정 구조체
type TracingConfig struct {
	Enabled     bool    `json:"enabled"`
	ServiceName string  `json:"service_name"`
	Endpoint    string  `json:"endpoint"`
	Insecure    bool    `json:"insecure"`
	SampleRatio float64 `json:"sample_ratio" validate:"gte=0,lte=1"`
}

func (c *TracingConfig) validate(v *validator.Validate) error {
	if !c.Enabled {
		return nil
	}

	if err := checkStruct(v, c, "Tracing"); err != nil {
		return err
	}
	if strings.TrimSpace(c.ServiceName) == "" {
		return apperrors.New(apperrors.InvalidInput, "트레이스 서비스 이름(tracing.service_name)은 비워둘 수 없습니다")
	}
	if err := validation.ValidateEndpoint(c.Endpoint); err != nil {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("트레이스 수집기 주소(tracing.endpoint)가 올바르지 않습니다: '%s'", c.Endpoint))
	}

	return nil
}

// NotifyAPIConfig 알림 발송을 위한 REST API 서버 설정 구조체
type NotifyAPIConfig struct {
	WS           WSConfig            `json:"ws"`
	CORS         CORSConfig          `json:"cors"`
	Applications []ApplicationConfig `json:"applications"`
}

func (c *NotifyAPIConfig) validate(v *validator.Validate, providers []string) error {
	if err := c.WS.validate(v); err != nil {
		return err
	}

	if err := c.CORS.validate(v); err != nil {
		return err
	}

	if err := checkUniqueField(v, c.Applications, "ID", "Application"); err != nil {
		return err
	}

	for _, app := range c.Applications {
		if strings.TrimSpace(app.ID) == "" {
			return apperrors.New(apperrors.InvalidInput, "Application의 ID는 비워둘 수 없습니다")
		}

		if strings.TrimSpace(app.AppKey) == "" {
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("Application['%s']의 API 키(APP_KEY)가 설정되지 않았습니다", app.ID))
		}

		if app.DefaultProvider != "" && !slices.Contains(providers, app.DefaultProvider) {
			return apperrors.New(apperrors.NotFound, fmt.Sprintf("Application['%s']의 기본 Provider('%s')에 등록된 Integration이 없습니다", app.ID, app.DefaultProvider))
		}
	}

	return nil
}

func (c *NotifyAPIConfig) VerifyRecommendations() []string {
	return c.WS.VerifyRecommendations()
}

// WSConfig 웹 서버의 포트 및 TLS(HTTPS) 보안 설정을 정의하는 구조체
type WSConfig struct {
	TLSServer   bool   `json:"tls_server"`
	TLSCertFile string `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile  string `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
	ListenPort  int    `json:"listen_port" validate:"min=1,max=65535"`
}

func (c *WSConfig) validate(v *validator.Validate) error {
	return checkStruct(v, c, "NotifyAPI.WS")
}

func (c *WSConfig) VerifyRecommendations() []string {
	var warnings []string

	// 시스템 예약 포트(1024 미만) 사용 경고
	if c.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.ListenPort))
	}
	if !c.TLSServer {
		warnings = append(warnings, "TLS가 비활성화되어 있습니다. App Key가 평문으로 전송됩니다")
	}

	return warnings
}

// CORSConfig 웹 브라우저의 교차 출처 리소스 공유(CORS) 정책을 설정하는 구조체
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"dive,cors_origin"`
}

func (c *CORSConfig) validate(v *validator.Validate) error {
	if len(c.AllowOrigins) == 0 {
		return apperrors.New(apperrors.InvalidInput, "CORS 허용 도메인(allow_origins) 목록이 비어있습니다")
	}

	if slices.Contains(c.AllowOrigins, "*") && len(c.AllowOrigins) > 1 {
		return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
	}

	return checkStruct(v, c, "NotifyAPI.CORS")
}

// ApplicationConfig 알림 API를 사용할 수 있는 클라이언트 애플리케이션의 인증 정보를 정의하는 구조체
type ApplicationConfig struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AppKey      string `json:"app_key"`

	// DefaultProvider 요청에 provider가 없을 때 사용할 Provider입니다.
	DefaultProvider string `json:"default_provider"`
}

// Actor 수신자 문자열을 Actor로 변환합니다. 유효성 검사를 통과한 설정에서만 호출해야 합니다.
func (c RouteConfig) Actor() contract.Actor {
	actor, _ := contract.ParseActor(c.Recipient)
	return actor
}
