// Package slack 알림을 Slack 사용자와 팀에게 전달하는 Provider입니다.
//
// 수신자마다 Block Kit 메시지를 한 번 렌더링하여 해당 수신자의 모든 채널로 보냅니다.
// Integration의 client 설정에 따라 slack-go SDK 또는 chat.postMessage 직접 호출을 사용합니다.
package slack

import (
	"context"

	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/delivery"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/dispatcher"
)

// LogKeyNotify 수신자에게 알림을 보내지 못했을 때 남기는 로그 메시지입니다.
const LogKeyNotify = "slack.notify-recipient.error"

// Service 디스패처의 Renderer와 Client 역할을 합니다.
type Service struct {
	factory  *Factory
	renderer *Renderer
}

// NewService Service를 생성합니다.
func NewService(factory *Factory, renderer *Renderer) *Service {
	return &Service{factory: factory, renderer: renderer}
}

// GetAttachments dispatcher.Renderer를 구현합니다.
func (s *Service) GetAttachments(ctx context.Context, n *contract.Notification, recipient contract.Actor, shared, extra contract.Context) (Attachments, error) {
	return s.renderer.GetAttachments(ctx, n, recipient, shared, extra)
}

// NotifyRecipient dispatcher.Client를 구현합니다.
func (s *Service) NotifyRecipient(ctx context.Context, d dispatcher.Delivery[Attachments]) error {
	p, err := s.factory.Poster(d.Integration)
	if err != nil {
		return err
	}

	return s.factory.Breaker(d.Integration.ID).Do(func() error {
		return p.PostAttachments(ctx, d.ChannelID, d.Attachments)
	})
}

// Provider Slack 알림 디스패치와 텍스트 응답 전송을 함께 제공합니다.
type Provider struct {
	*dispatcher.Dispatcher[Attachments]
	*delivery.BasicSender
}

// New Slack Provider를 생성합니다.
func New(resolver dispatcher.Resolver, cfg Config, opts ...dispatcher.Option) *Provider {
	factory := NewFactory(cfg)
	svc := NewService(factory, NewRenderer())

	opts = append([]dispatcher.Option{dispatcher.WithErrorLogKey(LogKeyNotify)}, opts...)

	return &Provider{
		Dispatcher:  dispatcher.New[Attachments](contract.ProviderSlack, resolver, svc, svc, opts...),
		BasicSender: delivery.NewBasicSender(contract.ProviderSlack, factory),
	}
}
