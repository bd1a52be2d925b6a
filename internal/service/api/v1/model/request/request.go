// Package request v1 API의 요청 본문 모델을 정의합니다.
package request

import (
	"encoding/json"

	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/google/uuid"
)

// NotificationRequest 알림 디스패치 요청 본문
type NotificationRequest struct {
	// 애플리케이션 ID (X-Application-Id 헤더를 사용하지 않는 레거시 클라이언트용)
	ApplicationID string `json:"application_id" example:"billing"`

	// 알림을 전달할 Provider. 비어 있으면 애플리케이션의 기본 Provider를 사용합니다.
	Provider string `json:"provider" validate:"omitempty,oneof=slack telegram" korean:"provider" example:"slack"`

	Notification NotificationPayload `json:"notification" validate:"required" korean:"notification"`

	// 수신자 목록 ("user:<id>" 또는 "team:<id>")
	Recipients []string `json:"recipients" validate:"min=1,dive,actor" korean:"recipients" example:"user:42,team:7"`

	// 모든 수신자에게 공통으로 전달되는 렌더링 컨텍스트
	Shared map[string]any `json:"shared,omitempty" swaggertype:"object"`

	// 수신자별 렌더링 컨텍스트 (키: "user:<id>")
	ExtraByActor map[string]map[string]any `json:"extra_by_actor,omitempty" swaggertype:"object"`
}

// NotificationPayload 디스패치할 알림 이벤트
type NotificationPayload struct {
	// 알림 ID. 비어 있으면 서버가 새로 발급합니다.
	ID string `json:"id,omitempty" validate:"omitempty,uuid" korean:"notification.id"`

	Type           string `json:"type" validate:"required,oneof=alert-rule activity" korean:"notification.type" example:"alert-rule"`
	OrganizationID string `json:"organization_id" validate:"required" korean:"notification.organization_id" example:"acme"`
	MetricsKey     string `json:"metrics_key" validate:"required,max=100" korean:"notification.metrics_key" example:"alert_rule"`
	Title          string `json:"title" validate:"max=250" korean:"notification.title" example:"Error rate above 5%"`
	Message        string `json:"message" validate:"max=8000" korean:"notification.message" example:"<p>payment-api</p>"`
	URL            string `json:"url,omitempty" validate:"omitempty,http_url" korean:"notification.url"`
	Level          string `json:"level,omitempty" validate:"omitempty,oneof=info warning error fatal" korean:"notification.level" example:"error"`

	// Provider 렌더러가 해석하는 부가 정보 (fields, event_count 등)
	Data json.RawMessage `json:"data,omitempty" swaggertype:"object"`
}

// ToDispatchRequest 요청 본문을 알림 서비스의 디스패치 요청으로 변환합니다.
// 구조체 검증을 통과한 요청에서만 호출해야 합니다.
func (r *NotificationRequest) ToDispatchRequest(defaultProvider contract.ExternalProvider) (contract.DispatchRequest, error) {
	n := &contract.Notification{
		Type:           contract.NotificationType(r.Notification.Type),
		OrganizationID: r.Notification.OrganizationID,
		MetricsKey:     r.Notification.MetricsKey,
		Title:          r.Notification.Title,
		Message:        r.Notification.Message,
		URL:            r.Notification.URL,
		Level:          contract.Level(r.Notification.Level),
		Data:           r.Notification.Data,
	}
	if r.Notification.ID != "" {
		id, err := uuid.Parse(r.Notification.ID)
		if err != nil {
			return contract.DispatchRequest{}, err
		}
		n.ID = id
	}

	recipients := make([]contract.Actor, 0, len(r.Recipients))
	for _, s := range r.Recipients {
		actor, err := contract.ParseActor(s)
		if err != nil {
			return contract.DispatchRequest{}, err
		}
		recipients = append(recipients, actor)
	}

	var extraByActor map[contract.Actor]contract.Context
	if len(r.ExtraByActor) > 0 {
		extraByActor = make(map[contract.Actor]contract.Context, len(r.ExtraByActor))
		for key, extra := range r.ExtraByActor {
			actor, err := contract.ParseActor(key)
			if err != nil {
				return contract.DispatchRequest{}, err
			}
			extraByActor[actor] = extra
		}
	}

	provider := contract.ExternalProvider(r.Provider)
	if provider == "" {
		provider = defaultProvider
	}

	return contract.DispatchRequest{
		Provider:     provider,
		Notification: n,
		Recipients:   recipients,
		Shared:       r.Shared,
		ExtraByActor: extraByActor,
	}, nil
}

// MessageRequest 렌더링 없이 하나의 채널로 텍스트를 보내는 요청 본문
type MessageRequest struct {
	ApplicationID string `json:"application_id" example:"billing"`

	Provider      string `json:"provider" validate:"omitempty,oneof=slack telegram" korean:"provider" example:"telegram"`
	IntegrationID string `json:"integration_id" validate:"required" korean:"integration_id" example:"ops-telegram"`
	ChannelID     string `json:"channel_id" validate:"required" korean:"channel_id" example:"-1001234567890"`
	Text          string `json:"text" validate:"required,max=20000" korean:"text" example:"배포가 완료되었습니다"`
}

// ToMessageRequest 요청 본문을 알림 서비스의 메시지 요청으로 변환합니다.
func (r *MessageRequest) ToMessageRequest(defaultProvider contract.ExternalProvider) contract.MessageRequest {
	provider := contract.ExternalProvider(r.Provider)
	if provider == "" {
		provider = defaultProvider
	}

	return contract.MessageRequest{
		Provider:      provider,
		IntegrationID: r.IntegrationID,
		ChannelID:     r.ChannelID,
		Text:          r.Text,
	}
}
