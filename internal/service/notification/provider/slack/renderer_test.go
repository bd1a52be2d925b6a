package slack

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/google/uuid"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = contract.Actor{Type: contract.ActorTypeUser, ID: "alice"}

func newTestNotification() *contract.Notification {
	return &contract.Notification{
		ID:             uuid.MustParse("7f9c24e8-3b12-4c84-9d1e-2b5c5d1a6f01"),
		Type:           contract.NotificationTypeAlertRule,
		OrganizationID: "acme",
		MetricsKey:     "alert_rule",
		Title:          "CPU usage high",
		Message:        "<b>web-1</b> is above 90%",
		URL:            "https://example.com/alerts/1",
		Level:          contract.LevelWarning,
		Data:           json.RawMessage(`{"event_count":1234,"fields":[{"title":"Host","value":"web-1"},{"title":"Region","value":"ap-northeast-2"}]}`),
	}
}

func blockTypes(blocks []slack.Block) []slack.MessageBlockType {
	var types []slack.MessageBlockType
	for _, b := range blocks {
		types = append(types, b.BlockType())
	}
	return types
}

func TestRenderer_GetAttachments(t *testing.T) {
	r := NewRenderer()
	shared := contract.Context{"project_name": "web", "settings_url": "https://example.com/settings"}
	extra := contract.Context{"settings_url": "https://example.com/settings/alice"}

	got, err := r.GetAttachments(context.Background(), newTestNotification(), alice, shared, extra)
	require.NoError(t, err)

	assert.Equal(t, "CPU usage high", got.Text)
	assert.Equal(t, []slack.MessageBlockType{
		slack.MBTHeader, slack.MBTSection, slack.MBTSection, slack.MBTContext, slack.MBTAction, slack.MBTContext,
	}, blockTypes(got.Blocks))

	header := got.Blocks[0].(*slack.HeaderBlock)
	assert.Equal(t, ":warning: CPU usage high", header.Text.Text)

	body := got.Blocks[1].(*slack.SectionBlock)
	assert.Equal(t, "*web-1* is above 90%", body.Text.Text)

	fields := got.Blocks[2].(*slack.SectionBlock)
	require.Len(t, fields.Fields, 2)
	assert.Equal(t, "*Host*\nweb-1", fields.Fields[0].Text)

	raw, err := json.Marshal(got.Blocks[3])
	require.NoError(t, err)
	assert.Contains(t, string(raw), "1,234")

	raw, err = json.Marshal(got.Blocks[5])
	require.NoError(t, err)
	assert.Contains(t, string(raw), "https://example.com/settings/alice", "수신자별 컨텍스트가 우선해야 합니다")
	assert.Contains(t, string(raw), "프로젝트: web")
}

func TestFooterText_EscapesSettingsURL(t *testing.T) {
	got := footerText(&renderContext{ProjectName: "web", SettingsURL: "https://example.com/s?tab=a|b>c"})

	assert.Equal(t, "프로젝트: web | <https://example.com/s?tab=a%7Cb%3Ec|알림 설정>", got)
}

func TestRenderer_MinimalNotification(t *testing.T) {
	n := &contract.Notification{OrganizationID: "acme", MetricsKey: "activity", Message: "<p>Assigned to <i>you</i></p>"}

	got, err := NewRenderer().GetAttachments(context.Background(), n, alice, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Assigned to you", got.Text)
	assert.Equal(t, []slack.MessageBlockType{slack.MBTSection}, blockTypes(got.Blocks))
}

func TestRenderer_InvalidData(t *testing.T) {
	n := newTestNotification()
	n.Data = json.RawMessage(`{"fields":`)

	_, err := NewRenderer().GetAttachments(context.Background(), n, alice, nil, nil)
	assert.Error(t, err)
}

func TestRenderer_FieldLimit(t *testing.T) {
	var fields []map[string]string
	for i := 0; i < 15; i++ {
		fields = append(fields, map[string]string{"title": "k", "value": "v"})
	}
	data, err := json.Marshal(map[string]any{"fields": fields})
	require.NoError(t, err)

	n := newTestNotification()
	n.Data = data

	got, err := NewRenderer().GetAttachments(context.Background(), n, alice, nil, nil)
	require.NoError(t, err)

	section := got.Blocks[2].(*slack.SectionBlock)
	assert.Len(t, section.Fields, maxFields)
}
