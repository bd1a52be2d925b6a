package notification

import (
	"context"
	"sort"
	"sync"

	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
)

// Provider 하나의 메신저 플랫폼으로 알림을 전달합니다.
//
// slack, telegram 패키지의 Provider가 이 인터페이스를 구현합니다.
type Provider interface {
	// Dispatch 알림을 recipients에게 전달합니다. 채널 조회 실패만 에러로 반환합니다.
	Dispatch(ctx context.Context, n *contract.Notification, recipients []contract.Actor, shared contract.Context, extraByActor map[contract.Actor]contract.Context) (*contract.Report, error)

	// SendRawMessage text를 channelID로 그대로 보내고 결과 상태를 반환합니다.
	SendRawMessage(ctx context.Context, integration contract.Integration, channelID, text string) contract.DeliveryStatus
}

// Registry ExternalProvider별 Provider 구현체를 보관합니다.
type Registry struct {
	mu        sync.RWMutex
	providers map[contract.ExternalProvider]Provider
}

// NewRegistry 빈 Registry를 생성합니다.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[contract.ExternalProvider]Provider),
	}
}

// Register provider의 구현체를 등록합니다. 같은 provider를 두 번 등록하면 에러를 반환합니다.
func (r *Registry) Register(provider contract.ExternalProvider, p Provider) error {
	if provider == "" {
		return apperrors.New(apperrors.InvalidInput, "Provider 이름은 비워둘 수 없습니다")
	}
	if p == nil {
		return apperrors.Newf(apperrors.InvalidInput, "'%s' Provider 구현체가 nil입니다", provider)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[provider]; exists {
		return NewErrDuplicateProvider(provider)
	}
	r.providers[provider] = p

	return nil
}

// Lookup provider의 구현체를 반환합니다.
func (r *Registry) Lookup(provider contract.ExternalProvider) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[provider]
	if !ok {
		return nil, NewErrProviderNotFound(provider)
	}
	return p, nil
}

// Providers 등록된 Provider 이름을 정렬하여 반환합니다.
func (r *Registry) Providers() []contract.ExternalProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]contract.ExternalProvider, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	return names
}
