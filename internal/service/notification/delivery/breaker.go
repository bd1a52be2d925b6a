package delivery

import (
	"context"
	"errors"
	"time"

	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	applog "github.com/darkkaiser/notify-dispatcher/pkg/log"
	"github.com/sony/gobreaker"
)

// BreakerConfig Integration별 회로 차단기 설정입니다.
type BreakerConfig struct {
	MaxRequests      uint32        // Half-Open 상태에서 허용할 요청 수
	Interval         time.Duration // Closed 상태에서 실패 카운트를 초기화하는 주기
	Timeout          time.Duration // Open 상태를 유지하는 시간
	FailureThreshold float64       // 차단을 시작할 실패 비율 (0.0 ~ 1.0)
	MinRequests      uint32        // 실패 비율을 계산하기 위한 최소 요청 수
}

// DefaultBreakerConfig 기본 회로 차단기 설정을 반환합니다.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// Breaker 하나의 Integration에 대한 메신저 API 호출을 보호합니다.
//
// 예상된 실패(IsBenign)는 성공으로 집계하므로, 삭제된 채널이 많은 워크스페이스라도 회로가 열리지 않습니다.
// 회로가 열린 동안에는 호출을 시도하지 않고 CodeCircuitOpen 에러를 반환합니다.
// nil *Breaker는 보호 없이 fn을 그대로 호출합니다.
type Breaker struct {
	provider contract.ExternalProvider
	cb       *gobreaker.CircuitBreaker
}

// NewBreaker 이름(보통 Integration ID)별 회로 차단기를 생성합니다.
func NewBreaker(provider contract.ExternalProvider, name string, cfg BreakerConfig) *Breaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || IsBenign(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			applog.WithComponentAndFields(component, applog.Fields{
				"provider": provider,
				"circuit":  name,
				"from":     from.String(),
				"to":       to.String(),
			}).Warn("회로 차단기 상태가 변경되었습니다")
		},
	}

	return &Breaker{
		provider: provider,
		cb:       gobreaker.NewCircuitBreaker(settings),
	}
}

// Do fn을 회로 차단기를 거쳐 실행합니다.
func (b *Breaker) Do(fn func() error) error {
	if b == nil {
		return fn()
	}

	_, err := b.cb.Execute(func() (any, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &Error{
			Provider: b.provider,
			Code:     CodeCircuitOpen,
			Message:  b.cb.Name(),
			Cause:    err,
		}
	}

	return err
}

// State 현재 회로 상태를 반환합니다.
func (b *Breaker) State() gobreaker.State {
	if b == nil {
		return gobreaker.StateClosed
	}
	return b.cb.State()
}

// breakerPoster TextPoster를 회로 차단기로 감쌉니다.
type breakerPoster struct {
	next    TextPoster
	breaker *Breaker
}

// WithBreaker next를 회로 차단기로 보호하는 TextPoster를 반환합니다. breaker가 nil이면 next를 그대로 반환합니다.
func WithBreaker(next TextPoster, breaker *Breaker) TextPoster {
	if breaker == nil {
		return next
	}
	return &breakerPoster{next: next, breaker: breaker}
}

func (p *breakerPoster) PostText(ctx context.Context, channelID, text string) error {
	return p.breaker.Do(func() error {
		return p.next.PostText(ctx, channelID, text)
	})
}

func (p *breakerPoster) LogKey() string {
	if k, ok := p.next.(LogKeyer); ok {
		return k.LogKey()
	}
	return defaultBasicSendLogKey
}
