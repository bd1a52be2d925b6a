package request

import (
	"encoding/json"
	"testing"

	"github.com/darkkaiser/notify-dispatcher/internal/pkg/validator"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notificationJSON = `{
	"provider": "slack",
	"notification": {
		"id": "3f2b8c4e-0f0a-4a4e-9a57-0d3c4a7e9b11",
		"type": "alert-rule",
		"organization_id": "acme",
		"metrics_key": "alert_rule",
		"title": "Error rate above 5%",
		"message": "<p>payment-api</p>",
		"level": "error",
		"data": {"event_count": 3}
	},
	"recipients": ["user:42", "team:7"],
	"shared": {"project": "payment-api"},
	"extra_by_actor": {"user:42": {"settings_url": "https://example.com/settings"}}
}`

func decodeNotification(t *testing.T, body string) *NotificationRequest {
	t.Helper()

	req := new(NotificationRequest)
	require.NoError(t, json.Unmarshal([]byte(body), req))
	return req
}

func TestNotificationRequest_ToDispatchRequest(t *testing.T) {
	req := decodeNotification(t, notificationJSON)
	require.NoError(t, validator.Struct(req))

	got, err := req.ToDispatchRequest(contract.ProviderTelegram)
	require.NoError(t, err)

	assert.Equal(t, contract.ProviderSlack, got.Provider)
	assert.Equal(t, uuid.MustParse("3f2b8c4e-0f0a-4a4e-9a57-0d3c4a7e9b11"), got.Notification.ID)
	assert.Equal(t, contract.NotificationTypeAlertRule, got.Notification.Type)
	assert.Equal(t, contract.LevelError, got.Notification.Level)
	assert.JSONEq(t, `{"event_count": 3}`, string(got.Notification.Data))
	assert.Equal(t, []contract.Actor{
		{Type: contract.ActorTypeUser, ID: "42"},
		{Type: contract.ActorTypeTeam, ID: "7"},
	}, got.Recipients)
	assert.Equal(t, "payment-api", got.Shared["project"])
	assert.Equal(t, "https://example.com/settings", got.ExtraByActor[contract.Actor{Type: contract.ActorTypeUser, ID: "42"}]["settings_url"])
}

func TestNotificationRequest_DefaultProviderAndID(t *testing.T) {
	req := &NotificationRequest{
		Notification: NotificationPayload{Type: "activity", OrganizationID: "acme", MetricsKey: "activity", Message: "hi"},
		Recipients:   []string{"user:1"},
	}
	require.NoError(t, validator.Struct(req))

	got, err := req.ToDispatchRequest(contract.ProviderTelegram)
	require.NoError(t, err)

	assert.Equal(t, contract.ProviderTelegram, got.Provider)
	assert.Equal(t, uuid.Nil, got.Notification.ID, "ID 발급은 알림 서비스가 담당합니다")
	assert.Nil(t, got.ExtraByActor)
}

func TestNotificationRequest_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*NotificationRequest)
		want   string
	}{
		{"Unknown provider", func(r *NotificationRequest) { r.Provider = "discord" }, "provider는 허용된 값 중 하나여야 합니다 [slack telegram]"},
		{"Missing recipients", func(r *NotificationRequest) { r.Recipients = nil }, "recipients는 최소 1 이상이어야 합니다"},
		{"Bad recipient", func(r *NotificationRequest) { r.Recipients = []string{"42"} }, "recipients[0]는 'user:<id>' 또는 'team:<id>' 형식이어야 합니다 (입력값: 42)"},
		{"Missing organization", func(r *NotificationRequest) { r.Notification.OrganizationID = "" }, "notification.organization_id는 필수입니다"},
		{"Unknown type", func(r *NotificationRequest) { r.Notification.Type = "digest" }, "notification.type는 허용된 값 중 하나여야 합니다 [alert-rule activity]"},
		{"Bad id", func(r *NotificationRequest) { r.Notification.ID = "abc" }, "notification.id는 올바른 UUID 형식이어야 합니다"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := decodeNotification(t, notificationJSON)
			tt.mutate(req)

			err := validator.Struct(req)
			require.Error(t, err)
			assert.Equal(t, tt.want, validator.FormatValidationError(err))
		})
	}
}

func TestNotificationRequest_BadExtraKey(t *testing.T) {
	req := decodeNotification(t, notificationJSON)
	req.ExtraByActor = map[string]map[string]any{"robot:1": {}}

	_, err := req.ToDispatchRequest(contract.ProviderSlack)
	assert.Error(t, err)
}

func TestMessageRequest(t *testing.T) {
	req := &MessageRequest{IntegrationID: "ops-telegram", ChannelID: "-100123", Text: "배포 완료"}
	require.NoError(t, validator.Struct(req))

	assert.Equal(t, contract.MessageRequest{
		Provider:      contract.ProviderTelegram,
		IntegrationID: "ops-telegram",
		ChannelID:     "-100123",
		Text:          "배포 완료",
	}, req.ToMessageRequest(contract.ProviderTelegram))

	req.Provider = "slack"
	assert.Equal(t, contract.ProviderSlack, req.ToMessageRequest(contract.ProviderTelegram).Provider)

	req.Text = ""
	err := validator.Struct(req)
	require.Error(t, err)
	assert.Equal(t, "text는 필수입니다", validator.FormatValidationError(err))
}
