package contract

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotification_Validate(t *testing.T) {
	valid := func() *Notification {
		return &Notification{
			Type:           NotificationTypeAlertRule,
			OrganizationID: "acme",
			MetricsKey:     "alert_rule",
			Title:          "CPU usage high",
		}
	}

	tests := []struct {
		name    string
		mutate  func(n *Notification) *Notification
		wantErr error
	}{
		{"Valid", func(n *Notification) *Notification { return n }, nil},
		{"Nil", func(*Notification) *Notification { return nil }, ErrNotificationRequired},
		{"Missing organization", func(n *Notification) *Notification { n.OrganizationID = " "; return n }, ErrOrganizationRequired},
		{"Missing metrics key", func(n *Notification) *Notification { n.MetricsKey = ""; return n }, ErrMetricsKeyRequired},
		{"Empty content", func(n *Notification) *Notification { n.Title = ""; n.Message = ""; return n }, ErrMessageRequired},
		{"Message only", func(n *Notification) *Notification { n.Title = ""; n.Message = "body"; return n }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mutate(valid()).Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestNotification_EnsureID(t *testing.T) {
	n := &Notification{}
	id := n.EnsureID()
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, id, n.EnsureID(), "이미 할당된 ID는 유지되어야 합니다")
}

func TestParseActor(t *testing.T) {
	actor, err := ParseActor("user:42")
	require.NoError(t, err)
	assert.Equal(t, Actor{Type: ActorTypeUser, ID: "42"}, actor)
	assert.Equal(t, "user:42", actor.String())

	actor, err = ParseActor(" team:ops ")
	require.NoError(t, err)
	assert.Equal(t, ActorTypeTeam, actor.Type)

	for _, bad := range []string{"", "user", "user:", "robot:1"} {
		_, err := ParseActor(bad)
		assert.Error(t, err, bad)
	}
}

func TestReport_Count(t *testing.T) {
	r := &Report{Outcomes: []Outcome{
		{Status: StatusDelivered},
		{Status: StatusSuppressed},
		{Status: StatusDelivered},
		{Status: StatusFailed},
	}}

	assert.Equal(t, 2, r.Count(StatusDelivered))
	assert.Equal(t, 1, r.Count(StatusSuppressed))
	assert.Equal(t, 1, r.Count(StatusFailed))
	assert.Equal(t, 0, r.Count(StatusRenderFailed))

	var nilReport *Report
	assert.Equal(t, 0, nilReport.Count(StatusDelivered))
}
