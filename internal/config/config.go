package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "notify-dispatcher"

	// DefaultFilename 실행 인자로 경로가 주어지지 않았을 때 읽는 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// envPrefix 설정을 덮어쓰는 환경 변수의 접두사입니다.
	envPrefix = "NOTIFY_"
)

// 설정 파일에 값이 없을 때 사용하는 기본값입니다.
const (
	DefaultMaxConcurrency = 1

	DefaultSlackTimeout    = 5 * time.Second
	DefaultTelegramTimeout = 5 * time.Second

	DefaultTelegramRateLimit = 25.0
	DefaultTelegramRateBurst = 5

	DefaultBreakerMaxRequests      = 1
	DefaultBreakerInterval         = time.Minute
	DefaultBreakerTimeout          = 30 * time.Second
	DefaultBreakerFailureThreshold = 0.6
	DefaultBreakerMinRequests      = 10

	DefaultTracingEndpoint    = "localhost:4318"
	DefaultTracingSampleRatio = 1.0

	DefaultListenPort = 2443
)

// newDefaultConfig 가장 낮은 우선순위로 로드되는 기본 설정을 생성합니다.
func newDefaultConfig() AppConfig {
	return AppConfig{
		Debug: true,
		Dispatch: DispatchConfig{
			MaxConcurrency: DefaultMaxConcurrency,
		},
		Providers: ProvidersConfig{
			Slack: SlackConfig{
				Timeout: DefaultSlackTimeout,
			},
			Telegram: TelegramConfig{
				Timeout:   DefaultTelegramTimeout,
				RateLimit: DefaultTelegramRateLimit,
				RateBurst: DefaultTelegramRateBurst,
			},
		},
		CircuitBreaker: CircuitBreakerConfig{
			Enabled:          false,
			MaxRequests:      DefaultBreakerMaxRequests,
			Interval:         DefaultBreakerInterval,
			Timeout:          DefaultBreakerTimeout,
			FailureThreshold: DefaultBreakerFailureThreshold,
			MinRequests:      DefaultBreakerMinRequests,
		},
		Tracing: TracingConfig{
			Enabled:     false,
			ServiceName: AppName,
			Endpoint:    DefaultTracingEndpoint,
			Insecure:    true,
			SampleRatio: DefaultTracingSampleRatio,
		},
		NotifyAPI: NotifyAPIConfig{
			WS: WSConfig{
				ListenPort: DefaultListenPort,
			},
		},
	}
}

// normalizeEnvKey 환경 변수 이름을 설정 키로 변환합니다.
// 이중 언더스코어(__)는 계층 구분자(.)로 바뀝니다. (예: NOTIFY_DISPATCH__MAX_CONCURRENCY -> dispatch.max_concurrency)
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다.
//
// 우선순위는 기본값 < 설정 파일 < 환경 변수(NOTIFY_) 순입니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드
	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	// 3. 환경 변수 로드
	if err := k.Load(env.Provider(envPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링
	var appConfig AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			ErrorUnused:      true, // 구조체에 없는 키가 있으면 오타로 간주합니다.
			WeaklyTypedInput: true,
			Result:           &appConfig,
		},
	}
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사
	if err := appConfig.validate(newValidator()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}
