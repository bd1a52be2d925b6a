// Package telegram 알림을 Telegram 채팅방으로 전달하는 Provider입니다.
//
// Integration 하나가 봇 하나에 대응하며, 채널 ID는 채팅방 ID(숫자) 또는 공개 채널 이름("@name")입니다.
package telegram

import (
	"context"

	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/delivery"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/dispatcher"
)

// LogKeyNotify 수신자에게 알림을 보내지 못했을 때 남기는 로그 메시지입니다.
const LogKeyNotify = "telegram.notify-recipient.error"

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
func (s *Service) GetAttachments(ctx context.Context, n *contract.Notification, recipient contract.Actor, shared, extra contract.Context) (Message, error) {
	return s.renderer.GetAttachments(ctx, n, recipient, shared, extra)
}

// NotifyRecipient dispatcher.Client를 구현합니다.
func (s *Service) NotifyRecipient(ctx context.Context, d dispatcher.Delivery[Message]) error {
	p, err := s.factory.Poster(d.Integration)
	if err != nil {
		return err
	}

	return s.factory.Breaker(d.Integration.ID).Do(func() error {
		return p.PostMessage(ctx, d.ChannelID, d.Attachments)
	})
}

// Provider Telegram 알림 디스패치와 텍스트 응답 전송을 함께 제공합니다.
type Provider struct {
	*dispatcher.Dispatcher[Message]
	*delivery.BasicSender
}

// New Telegram Provider를 생성합니다.
func New(resolver dispatcher.Resolver, cfg Config, opts ...dispatcher.Option) *Provider {
	return newProvider(resolver, NewFactory(cfg), opts...)
}

func newProvider(resolver dispatcher.Resolver, factory *Factory, opts ...dispatcher.Option) *Provider {
	svc := NewService(factory, NewRenderer())
	opts = append([]dispatcher.Option{dispatcher.WithErrorLogKey(LogKeyNotify)}, opts...)

	return &Provider{
		Dispatcher:  dispatcher.New[Message](contract.ProviderTelegram, resolver, svc, svc, opts...),
		BasicSender: delivery.NewBasicSender(contract.ProviderTelegram, factory),
	}
}
