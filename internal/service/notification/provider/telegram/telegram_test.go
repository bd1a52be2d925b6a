package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/delivery"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBot struct {
	mock.Mock
}

func (m *mockBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	args := m.Called(c)
	return tgbotapi.Message{}, args.Error(0)
}

var (
	alice = contract.Actor{Type: contract.ActorTypeUser, ID: "alice"}
	bot1  = contract.Integration{ID: "tg-1", Provider: contract.ProviderTelegram, Token: "123456:ABC"}
)

func newTestFactory(bot botClient) *Factory {
	f := NewFactory(Config{RateLimit: 1000, RateBurst: 1000})
	f.newBot = func(contract.Integration) (botClient, error) { return bot, nil }
	return f
}

func sentTo(chatID int64, parseMode string) any {
	return mock.MatchedBy(func(c tgbotapi.Chattable) bool {
		msg, ok := c.(tgbotapi.MessageConfig)
		return ok && msg.ChatID == chatID && msg.ParseMode == parseMode
	})
}

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantBenign bool
	}{
		{"Chat not found", &tgbotapi.Error{Code: 400, Message: "Bad Request: chat not found"}, delivery.CodeChannelNotFound, true},
		{"Blocked value form", tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}, delivery.CodeChannelNotFound, true},
		{"Rate limited", &tgbotapi.Error{Code: 429, Message: "Too Many Requests", ResponseParameters: tgbotapi.ResponseParameters{RetryAfter: 3}}, delivery.CodeRateLimited, false},
		{"Other API error", &tgbotapi.Error{Code: 400, Message: "Bad Request: message is too long"}, "", false},
		{"Transport", errors.New("connection reset"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := normalizeError(tt.err)

			var de *delivery.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.wantCode, de.Code)
			assert.Equal(t, tt.wantBenign, delivery.IsBenign(err))
		})
	}

	assert.NoError(t, normalizeError(nil))
}

func TestPoster_PostText_SplitsLongMessages(t *testing.T) {
	bot := &mockBot{}
	var chunks []string
	bot.On("Send", sentTo(1001, "")).Run(func(args mock.Arguments) {
		chunks = append(chunks, args.Get(0).(tgbotapi.MessageConfig).Text)
	}).Return(nil)

	p, err := newTestFactory(bot).Poster(bot1)
	require.NoError(t, err)

	text := strings.Repeat("가", messageMaxLength+10)
	require.NoError(t, p.PostText(context.Background(), "1001", text))

	require.Len(t, chunks, 2)
	assert.Equal(t, messageMaxLength, utf8.RuneCountInString(chunks[0]))
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestPoster_PostMessage_FallsBackToPlainText(t *testing.T) {
	bot := &mockBot{}
	bot.On("Send", sentTo(1001, tgbotapi.ModeHTML)).Return(&tgbotapi.Error{Code: 400, Message: "Bad Request: can't parse entities: unsupported start tag"}).Once()
	bot.On("Send", sentTo(1001, "")).Return(nil).Once()

	p, err := newTestFactory(bot).Poster(bot1)
	require.NoError(t, err)

	require.NoError(t, p.PostMessage(context.Background(), "1001", Message{HTML: "<b>broken"}))
	bot.AssertExpectations(t)
}

func TestPoster_RejectsEmptyMessage(t *testing.T) {
	bot := &mockBot{}

	p, err := newTestFactory(bot).Poster(bot1)
	require.NoError(t, err)

	err = p.PostMessage(context.Background(), "1001", Message{HTML: ""})
	require.Error(t, err)
	assert.Equal(t, contract.StatusFailed, delivery.Classify(err))

	assert.Error(t, p.PostText(context.Background(), "1001", "  \n"))
	bot.AssertNotCalled(t, "Send", mock.Anything)
}

func TestPoster_ChannelUsername(t *testing.T) {
	bot := &mockBot{}
	bot.On("Send", mock.MatchedBy(func(c tgbotapi.Chattable) bool {
		return c.(tgbotapi.MessageConfig).ChannelUsername == "@alerts"
	})).Return(nil).Once()

	p, err := newTestFactory(bot).Poster(bot1)
	require.NoError(t, err)

	require.NoError(t, p.PostText(context.Background(), "@alerts", "hi"))
	assert.Error(t, p.PostText(context.Background(), "not-a-chat", "hi"))
	bot.AssertExpectations(t)
}

func TestFactory_CachesPosters(t *testing.T) {
	created := 0
	f := NewFactory(Config{})
	f.newBot = func(contract.Integration) (botClient, error) {
		created++
		return &mockBot{}, nil
	}

	p1, err := f.Poster(bot1)
	require.NoError(t, err)
	p2, err := f.Poster(bot1)
	require.NoError(t, err)

	assert.Same(t, p1, p2)
	assert.Equal(t, 1, created)

	_, err = f.Poster(contract.Integration{ID: "s", Provider: contract.ProviderSlack, Token: "x"})
	assert.Error(t, err)
	_, err = f.Poster(contract.Integration{ID: "t", Provider: contract.ProviderTelegram})
	assert.Error(t, err)
}

func TestFactory_ConcurrentCreation(t *testing.T) {
	bot2 := contract.Integration{ID: "tg-2", Provider: contract.ProviderTelegram, Token: "654321:XYZ"}

	var created atomic.Int32
	release := make(chan struct{})
	f := NewFactory(Config{})
	f.newBot = func(integration contract.Integration) (botClient, error) {
		created.Add(1)
		if integration.ID == bot1.ID {
			<-release // getMe 응답 지연
		}
		return &mockBot{}, nil
	}

	var wg sync.WaitGroup
	posters := make([]*Poster, 5)
	for i := range posters {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := f.Poster(bot1)
			assert.NoError(t, err)
			posters[i] = p
		}(i)
	}

	// 느린 봇의 초기화가 다른 봇을 막지 않아야 함
	done := make(chan struct{})
	go func() {
		_, err := f.Poster(bot2)
		assert.NoError(t, err)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("다른 봇의 Poster 생성이 대기하였습니다")
	}

	close(release)
	wg.Wait()

	assert.Equal(t, int32(2), created.Load())
	for _, p := range posters {
		assert.Same(t, posters[0], p)
	}
}

func TestRenderer_GetAttachments(t *testing.T) {
	n := &contract.Notification{
		OrganizationID: "acme",
		MetricsKey:     "alert_rule",
		Title:          "Disk <full>",
		Message:        "<p><strong>db-1</strong> at 95%</p>",
		URL:            "https://example.com/a?x=1&y=2",
		Level:          contract.LevelError,
		Data:           json.RawMessage(`{"event_count":12000,"fields":[{"title":"Host","value":"db-1"}]}`),
	}

	got, err := NewRenderer().GetAttachments(context.Background(), n, alice,
		contract.Context{"project_name": "db"}, contract.Context{"settings_url": "https://example.com/s/alice"})
	require.NoError(t, err)

	want := strings.Join([]string{
		"<b>🔴 Disk &lt;full&gt;</b>",
		"<b>db-1</b> at 95%",
		"• <b>Host</b>: db-1\n발생 횟수: 12,000회",
		`<a href="https://example.com/a?x=1&amp;y=2">자세히 보기</a>`,
		"<i>프로젝트: db</i>\n" + `<a href="https://example.com/s/alice">알림 설정</a>`,
	}, "\n\n")
	assert.Equal(t, want, got.HTML)
}

func TestRenderer_GetAttachments_EmptyContent(t *testing.T) {
	n := &contract.Notification{
		OrganizationID: "acme",
		MetricsKey:     "alert_rule",
		Message:        "<p> </p>",
	}

	_, err := NewRenderer().GetAttachments(context.Background(), n, alice, contract.Context{"project_name": "db"}, nil)

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.RenderFailed))

	// 디스패치 결과는 전송 성공이 아니라 렌더링 실패로 집계되어야 함
	hook := test.NewGlobal()
	defer hook.Reset()

	bot := &mockBot{}
	p := newProvider(resolverFunc(func() contract.ChannelIntegrationMap {
		return contract.ChannelIntegrationMap{alice: {"1001": bot1}}
	}), newTestFactory(bot))

	report, err := p.Dispatch(context.Background(), n, []contract.Actor{alice}, contract.Context{"project_name": "db"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(contract.StatusRenderFailed))
	assert.Equal(t, 0, report.Count(contract.StatusDelivered))
	assert.Len(t, hook.AllEntries(), 1)
	bot.AssertNotCalled(t, "Send", mock.Anything)
}

func TestProvider_DispatchAndSendRawMessage(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	bot := &mockBot{}
	bot.On("Send", sentTo(1001, tgbotapi.ModeHTML)).Return(nil).Once()
	bot.On("Send", sentTo(1002, tgbotapi.ModeHTML)).Return(&tgbotapi.Error{Code: 400, Message: "Bad Request: chat not found"}).Once()
	bot.On("Send", sentTo(1003, "")).Return(&tgbotapi.Error{Code: 401, Message: "Unauthorized"}).Once()

	resolver := resolverFunc(func() contract.ChannelIntegrationMap {
		return contract.ChannelIntegrationMap{alice: {"1001": bot1, "1002": bot1}}
	})
	p := newProvider(resolver, newTestFactory(bot))

	n := &contract.Notification{OrganizationID: "acme", MetricsKey: "activity", Title: "Assigned"}
	report, err := p.Dispatch(context.Background(), n, []contract.Actor{alice}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(contract.StatusDelivered))
	assert.Equal(t, 1, report.Count(contract.StatusSuppressed))
	assert.Empty(t, hook.AllEntries())

	status := p.SendRawMessage(context.Background(), bot1, "1003", "pong")
	assert.Equal(t, contract.StatusFailed, status)
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logKeySend, hook.LastEntry().Message)
	assert.Contains(t, hook.LastEntry().Data["error"], "Unauthorized")

	bot.AssertExpectations(t)
}

type resolverFunc func() contract.ChannelIntegrationMap

func (f resolverFunc) Resolve(context.Context, string, []contract.Actor, contract.ExternalProvider) (contract.ChannelIntegrationMap, error) {
	return f(), nil
}
