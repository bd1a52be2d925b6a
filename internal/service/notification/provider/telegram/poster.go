package telegram

import (
	"context"
	"strconv"
	"strings"

	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/delivery"
	"github.com/darkkaiser/notify-dispatcher/pkg/strutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

const (
	// messageMaxLength Bot API가 허용하는 메시지 최대 길이(글자 수)입니다.
	messageMaxLength = 4096

	logKeySend = "telegram.send-message.error"
)

var errEmptyMessage = apperrors.New(apperrors.InvalidInput, "보낼 메시지 내용이 비어 있습니다")

// botClient 메시지 전송에 필요한 Bot API 기능입니다.
type botClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Poster 하나의 봇으로 채팅방에 메시지를 보냅니다.
type Poster struct {
	bot     botClient
	limiter *rate.Limiter
}

var _ delivery.TextPoster = (*Poster)(nil)
var _ delivery.LogKeyer = (*Poster)(nil)

// PostText 서식 없는 텍스트를 보냅니다. 길이 제한을 넘으면 나누어 보냅니다.
func (p *Poster) PostText(ctx context.Context, channelID, text string) error {
	if strings.TrimSpace(text) == "" {
		return errEmptyMessage
	}

	for _, chunk := range strutil.SplitRunes(text, messageMaxLength) {
		if err := p.send(ctx, channelID, chunk, ""); err != nil {
			return err
		}
	}
	return nil
}

// PostMessage HTML 서식의 메시지를 보냅니다.
// HTML 파싱에 실패한 조각은 태그를 제거한 텍스트로 다시 보냅니다.
func (p *Poster) PostMessage(ctx context.Context, channelID string, m Message) error {
	if strings.TrimSpace(m.HTML) == "" {
		return errEmptyMessage
	}

	for _, chunk := range strutil.SplitRunes(m.HTML, messageMaxLength) {
		err := p.send(ctx, channelID, chunk, tgbotapi.ModeHTML)
		if err != nil && isHTMLParseFailure(err) {
			err = p.send(ctx, channelID, strutil.StripHTMLTags(chunk), "")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Poster) LogKey() string { return logKeySend }

func (p *Poster) send(ctx context.Context, channelID, text, parseMode string) error {
	msg, err := newMessage(channelID, text)
	if err != nil {
		return err
	}
	msg.ParseMode = parseMode
	msg.DisableWebPagePreview = true

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return &delivery.Error{Provider: contract.ProviderTelegram, Cause: err}
		}
	}

	_, err = p.bot.Send(msg)
	return normalizeError(err)
}

// newMessage channelID가 숫자면 채팅방 ID로, "@"로 시작하면 공개 채널 이름으로 처리합니다.
func newMessage(channelID, text string) (tgbotapi.MessageConfig, error) {
	channelID = strings.TrimSpace(channelID)
	if strings.HasPrefix(channelID, "@") {
		return tgbotapi.NewMessageToChannel(channelID, text), nil
	}

	chatID, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		return tgbotapi.MessageConfig{}, apperrors.Wrapf(err, apperrors.InvalidInput, "텔레그램 채팅방 ID가 올바르지 않습니다: '%s'", channelID)
	}
	return tgbotapi.NewMessage(chatID, text), nil
}
