package resolver

import (
	"context"
	"testing"

	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = contract.Actor{Type: contract.ActorTypeUser, ID: "alice"}
	bob   = contract.Actor{Type: contract.ActorTypeUser, ID: "bob"}
	ops   = contract.Actor{Type: contract.ActorTypeTeam, ID: "ops"}

	slackA   = contract.Integration{ID: "slack-a", Provider: contract.ProviderSlack, ClientKind: contract.ClientKindSDK}
	slackB   = contract.Integration{ID: "slack-b", Provider: contract.ProviderSlack, ClientKind: contract.ClientKindHTTP}
	telegram = contract.Integration{ID: "tg", Provider: contract.ProviderTelegram}
)

func newTestResolver(t *testing.T) *StaticResolver {
	t.Helper()

	r, err := NewStaticResolver([]contract.Integration{slackA, slackB, telegram}, []Route{
		{OrganizationID: "acme", Recipient: alice, ChannelID: "C1", IntegrationID: "slack-a"},
		{OrganizationID: "acme", Recipient: alice, ChannelID: "C2", IntegrationID: "slack-b"},
		{OrganizationID: "acme", Recipient: alice, ChannelID: "1001", IntegrationID: "tg"},
		{OrganizationID: "acme", Recipient: ops, ChannelID: "1002", IntegrationID: "tg"},
		{OrganizationID: "other", Recipient: bob, ChannelID: "C9", IntegrationID: "slack-a"},
	})
	require.NoError(t, err)

	return r
}

func TestStaticResolver_Resolve(t *testing.T) {
	r := newTestResolver(t)

	got, err := r.Resolve(context.Background(), "acme", []contract.Actor{alice, bob, ops, alice}, contract.ProviderSlack)
	require.NoError(t, err)

	assert.Equal(t, contract.ChannelIntegrationMap{
		alice: {"C1": slackA, "C2": slackB},
	}, got)

	got, err = r.Resolve(context.Background(), "acme", []contract.Actor{alice, ops}, contract.ProviderTelegram)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, telegram, got[ops]["1002"])
}

func TestStaticResolver_ScopedByOrganization(t *testing.T) {
	r := newTestResolver(t)

	got, err := r.Resolve(context.Background(), "acme", []contract.Actor{bob}, contract.ProviderSlack)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = r.Resolve(context.Background(), "other", []contract.Actor{bob}, contract.ProviderSlack)
	require.NoError(t, err)
	assert.Contains(t, got, bob)
}

func TestStaticResolver_ReturnsFreshMap(t *testing.T) {
	r := newTestResolver(t)

	first, err := r.Resolve(context.Background(), "acme", []contract.Actor{alice}, contract.ProviderSlack)
	require.NoError(t, err)
	delete(first[alice], "C1")

	second, err := r.Resolve(context.Background(), "acme", []contract.Actor{alice}, contract.ProviderSlack)
	require.NoError(t, err)
	assert.Len(t, second[alice], 2)
}

func TestStaticResolver_CanceledContext(t *testing.T) {
	r := newTestResolver(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, "acme", []contract.Actor{alice}, contract.ProviderSlack)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Timeout))
}

func TestNewStaticResolver_Errors(t *testing.T) {
	_, err := NewStaticResolver([]contract.Integration{slackA, slackA}, nil)
	assert.True(t, apperrors.Is(err, apperrors.Conflict))

	_, err = NewStaticResolver([]contract.Integration{slackA}, []Route{{OrganizationID: "acme", Recipient: alice, ChannelID: "C1", IntegrationID: "missing"}})
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))

	_, err = NewStaticResolver([]contract.Integration{slackA}, []Route{{OrganizationID: "acme", Recipient: alice, IntegrationID: "slack-a"}})
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}
