package slack

import (
	"net/http"
	"strings"
	"sync"
	"time"

	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/delivery"
	"github.com/slack-go/slack"
)

const (
	// DefaultTimeout Slack API 호출 한 번에 허용하는 시간입니다.
	DefaultTimeout = 5 * time.Second

	defaultAPIURL = "https://slack.com/api/"
)

// Config Slack Provider 설정입니다.
type Config struct {
	// Timeout API 호출 타임아웃입니다. 0이면 DefaultTimeout을 사용합니다.
	Timeout time.Duration

	// Breaker nil이 아니면 Integration마다 회로 차단기를 적용합니다.
	Breaker *delivery.BreakerConfig

	// HTTPClient 지정하지 않으면 Timeout이 적용된 클라이언트를 새로 만듭니다.
	HTTPClient *http.Client
}

// Factory Integration의 ClientKind에 맞는 Poster를 생성합니다.
type Factory struct {
	httpClient *http.Client
	breakerCfg *delivery.BreakerConfig

	mu       sync.Mutex
	breakers map[string]*delivery.Breaker
}

// NewFactory Factory를 생성합니다.
func NewFactory(cfg Config) *Factory {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Factory{
		httpClient: httpClient,
		breakerCfg: cfg.Breaker,
		breakers:   make(map[string]*delivery.Breaker),
	}
}

// Poster integration으로 메시지를 보내는 Poster를 반환합니다.
func (f *Factory) Poster(integration contract.Integration) (Poster, error) {
	if integration.Provider != contract.ProviderSlack {
		return nil, apperrors.Newf(apperrors.InvalidInput, "Slack Integration이 아닙니다: '%s' (provider: %s)", integration.ID, integration.Provider)
	}
	if strings.TrimSpace(integration.Token) == "" {
		return nil, apperrors.Newf(apperrors.InvalidInput, "Slack Integration의 토큰이 비어 있습니다: '%s'", integration.ID)
	}

	apiURL := integration.APIURL
	if apiURL != "" && !strings.HasSuffix(apiURL, "/") {
		apiURL += "/"
	}

	switch integration.ClientKind {
	case contract.ClientKindSDK, "":
		opts := []slack.Option{slack.OptionHTTPClient(f.httpClient)}
		if apiURL != "" {
			opts = append(opts, slack.OptionAPIURL(apiURL))
		}
		return &sdkPoster{client: slack.New(integration.Token, opts...)}, nil

	case contract.ClientKindHTTP:
		if apiURL == "" {
			apiURL = defaultAPIURL
		}
		return &httpPoster{client: f.httpClient, endpoint: apiURL, token: integration.Token}, nil

	default:
		return nil, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 Slack 클라이언트 형태입니다: '%s' (integration: %s)", integration.ClientKind, integration.ID)
	}
}

// TextPoster delivery.PosterFactory를 구현합니다. 회로 차단기가 설정되어 있으면 적용합니다.
func (f *Factory) TextPoster(integration contract.Integration) (delivery.TextPoster, error) {
	p, err := f.Poster(integration)
	if err != nil {
		return nil, err
	}
	return delivery.WithBreaker(p, f.Breaker(integration.ID)), nil
}

// Breaker integrationID의 회로 차단기를 반환합니다. 설정되지 않았으면 nil을 반환합니다.
func (f *Factory) Breaker(integrationID string) *delivery.Breaker {
	if f.breakerCfg == nil {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.breakers[integrationID]
	if !ok {
		b = delivery.NewBreaker(contract.ProviderSlack, integrationID, *f.breakerCfg)
		f.breakers[integrationID] = b
	}
	return b
}
