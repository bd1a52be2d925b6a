package telegram

import (
	"net/http"
	"strings"
	"sync"
	"time"

	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/delivery"
	"github.com/darkkaiser/notify-dispatcher/pkg/concurrency"
	applog "github.com/darkkaiser/notify-dispatcher/pkg/log"
	"github.com/darkkaiser/notify-dispatcher/pkg/strutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

const component = "notification.provider.telegram"

const (
	// DefaultTimeout Bot API 호출 한 번에 허용하는 시간입니다.
	DefaultTimeout = 5 * time.Second

	// DefaultRateLimit 봇별 초당 전송 수입니다. Bot API는 전역 초당 30회를 권장합니다.
	DefaultRateLimit = 25

	// DefaultRateBurst 봇별 순간 최대 전송 수입니다.
	DefaultRateBurst = 5
)

// Config Telegram Provider 설정입니다.
type Config struct {
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
	Breaker   *delivery.BreakerConfig
	Debug     bool
}

// Factory Integration(봇)별 Poster를 만들고 재사용합니다.
//
// 봇 생성 시 getMe 호출로 토큰을 확인하므로, 한 번 만든 봇은 캐시하여 다음 전송에 사용합니다.
// getMe 호출 중에는 같은 봇의 생성만 대기하며 다른 봇의 전송은 막지 않습니다.
type Factory struct {
	cfg    Config
	newBot func(integration contract.Integration) (botClient, error)

	creating *concurrency.KeyedMutex

	mu       sync.Mutex
	posters  map[string]*Poster
	breakers map[string]*delivery.Breaker
}

// NewFactory Factory를 생성합니다.
func NewFactory(cfg Config) *Factory {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = DefaultRateBurst
	}

	f := &Factory{
		cfg:      cfg,
		creating: concurrency.NewKeyedMutex(),
		posters:  make(map[string]*Poster),
		breakers: make(map[string]*delivery.Breaker),
	}
	f.newBot = f.newBotAPI

	return f
}

func (f *Factory) newBotAPI(integration contract.Integration) (botClient, error) {
	endpoint := tgbotapi.APIEndpoint
	if integration.APIURL != "" {
		endpoint = strings.TrimSuffix(integration.APIURL, "/") + "/bot%s/%s"
	}

	bot, err := tgbotapi.NewBotAPIWithClient(integration.Token, endpoint, &http.Client{Timeout: f.cfg.Timeout})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. 토큰이 올바른지 확인해주세요")
	}
	bot.Debug = f.cfg.Debug

	return bot, nil
}

// Poster integration의 봇으로 메시지를 보내는 Poster를 반환합니다.
func (f *Factory) Poster(integration contract.Integration) (*Poster, error) {
	if integration.Provider != contract.ProviderTelegram {
		return nil, apperrors.Newf(apperrors.InvalidInput, "Telegram Integration이 아닙니다: '%s' (provider: %s)", integration.ID, integration.Provider)
	}
	if strings.TrimSpace(integration.Token) == "" {
		return nil, apperrors.Newf(apperrors.InvalidInput, "Telegram Integration의 봇 토큰이 비어 있습니다: '%s'", integration.ID)
	}

	if p, ok := f.cachedPoster(integration.ID); ok {
		return p, nil
	}

	unlock := f.creating.Lock(integration.ID)
	defer unlock()

	// 대기하는 동안 다른 고루틴이 생성했을 수 있음
	if p, ok := f.cachedPoster(integration.ID); ok {
		return p, nil
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"integration_id": integration.ID,
		"bot_token":      strutil.MaskSensitiveData(integration.Token),
	}).Debug("텔레그램 봇 API 클라이언트를 초기화합니다")

	bot, err := f.newBot(integration)
	if err != nil {
		return nil, err
	}

	p := &Poster{
		bot:     bot,
		limiter: rate.NewLimiter(rate.Limit(f.cfg.RateLimit), f.cfg.RateBurst),
	}

	f.mu.Lock()
	f.posters[integration.ID] = p
	f.mu.Unlock()

	return p, nil
}

func (f *Factory) cachedPoster(integrationID string) (*Poster, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.posters[integrationID]
	return p, ok
}

// TextPoster delivery.PosterFactory를 구현합니다.
func (f *Factory) TextPoster(integration contract.Integration) (delivery.TextPoster, error) {
	p, err := f.Poster(integration)
	if err != nil {
		return nil, err
	}
	return delivery.WithBreaker(p, f.Breaker(integration.ID)), nil
}

// Breaker integrationID의 회로 차단기를 반환합니다. 설정되지 않았으면 nil을 반환합니다.
func (f *Factory) Breaker(integrationID string) *delivery.Breaker {
	if f.cfg.Breaker == nil {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.breakers[integrationID]
	if !ok {
		b = delivery.NewBreaker(contract.ProviderTelegram, integrationID, *f.cfg.Breaker)
		f.breakers[integrationID] = b
	}
	return b
}
