package contract

import (
	"context"
)

// DispatchRequest 하나의 알림을 여러 수신자에게 전달하기 위한 요청입니다.
type DispatchRequest struct {
	Provider     ExternalProvider
	Notification *Notification
	Recipients   []Actor
	Shared       Context

	// ExtraByActor 수신자별 추가 컨텍스트입니다. nil이면 수신자별 덮어쓰기가 없습니다.
	ExtraByActor map[Actor]Context
}

// MessageRequest 렌더링 없이 하나의 채널에 텍스트를 그대로 보내는 요청입니다.
// 슬래시 커맨드 응답 등 수신자 조회를 거치지 않는 경로에서 사용합니다.
type MessageRequest struct {
	Provider      ExternalProvider
	IntegrationID string
	ChannelID     string
	Text          string
}

// NotificationSender API 등 외부 진입점이 알림 서비스를 사용하는 인터페이스입니다.
type NotificationSender interface {
	// Notify 알림을 등록된 Provider로 디스패치합니다.
	// 채널 조회 실패만 에러로 반환되며, 개별 전송 실패는 Report에 기록됩니다.
	Notify(ctx context.Context, req DispatchRequest) (*Report, error)

	// SendMessage 텍스트 메시지를 하나의 채널로 보냅니다.
	// 전송 실패는 로그로만 남고 호출자에게 전파되지 않으며, 결과 상태만 반환합니다.
	SendMessage(ctx context.Context, req MessageRequest) (DeliveryStatus, error)
}

// NotificationHealthChecker 알림 서비스의 상태를 확인하는 인터페이스입니다.
type NotificationHealthChecker interface {
	Health() error
}
