package dispatcher

import (
	"context"

	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
)

// Resolver 수신자별로 알림을 보낼 채널과 Integration을 조회합니다.
// 한 번의 디스패치에서 모든 수신자에 대해 한 번만 호출됩니다.
type Resolver interface {
	Resolve(ctx context.Context, organizationID string, recipients []contract.Actor, provider contract.ExternalProvider) (contract.ChannelIntegrationMap, error)
}

// Renderer 하나의 수신자에게 보낼 Provider 고유의 메시지(A)를 생성합니다.
// extra는 해당 수신자의 추가 컨텍스트이며 nil일 수 있습니다.
type Renderer[A any] interface {
	GetAttachments(ctx context.Context, n *contract.Notification, recipient contract.Actor, shared, extra contract.Context) (A, error)
}

// Delivery 하나의 (수신자, 채널)에 대한 전송 요청입니다.
type Delivery[A any] struct {
	Notification *contract.Notification
	Recipient    contract.Actor
	ChannelID    string
	Integration  contract.Integration
	Attachments  A
	Shared       contract.Context
}

// Client 렌더링된 메시지를 채널로 보냅니다.
// 실패 시 가능한 한 *delivery.Error를 반환해야 합니다.
type Client[A any] interface {
	NotifyRecipient(ctx context.Context, d Delivery[A]) error
}

// Metrics 디스패치 결과를 집계합니다. 반환값이 없으며 실패해도 디스패치에 영향을 주지 않습니다.
type Metrics interface {
	// IncSent 디스패치 호출마다 정확히 한 번 호출됩니다.
	IncSent(name, instance string)
	// ObserveDelivery (수신자, 채널) 작업 단위마다 호출됩니다.
	ObserveDelivery(provider contract.ExternalProvider, status contract.DeliveryStatus)
}

type nopMetrics struct{}

func (nopMetrics) IncSent(string, string)                                             {}
func (nopMetrics) ObserveDelivery(contract.ExternalProvider, contract.DeliveryStatus) {}
