package contract

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// NotificationType 알림의 종류입니다. (예: alert-rule, activity)
type NotificationType string

const (
	NotificationTypeAlertRule NotificationType = "alert-rule"
	NotificationTypeActivity  NotificationType = "activity"
)

// Level 알림의 심각도입니다. 렌더러가 색상이나 아이콘을 결정하는 데 사용합니다.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelFatal   Level = "fatal"
)

// Notification 애플리케이션에서 발생한 하나의 알림 이벤트입니다.
//
// 디스패치가 진행되는 동안 읽기 전용으로 취급되며, 호출자가 소유합니다.
// Data는 렌더러가 해석하는 원본 JSON으로, fields/event_count 등 Provider별 부가 정보를 담습니다.
type Notification struct {
	ID             uuid.UUID        `json:"id"`
	Type           NotificationType `json:"type"`
	OrganizationID string           `json:"organization_id"`
	MetricsKey     string           `json:"metrics_key"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	URL            string           `json:"url,omitempty"`
	Level          Level            `json:"level,omitempty"`
	Data           json.RawMessage  `json:"data,omitempty"`
}

// Validate 디스패치에 필요한 최소 필드가 채워져 있는지 확인합니다.
func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationRequired
	}
	if strings.TrimSpace(n.OrganizationID) == "" {
		return ErrOrganizationRequired
	}
	if strings.TrimSpace(n.MetricsKey) == "" {
		return ErrMetricsKeyRequired
	}
	if strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Message) == "" {
		return ErrMessageRequired
	}
	return nil
}

// EnsureID ID가 비어 있으면 새 UUID를 할당합니다.
func (n *Notification) EnsureID() uuid.UUID {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return n.ID
}
