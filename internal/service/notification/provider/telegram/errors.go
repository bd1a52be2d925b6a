package telegram

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/delivery"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// 채팅방이 삭제되었거나 봇이 더 이상 메시지를 보낼 수 없는 경우의 응답 문구입니다.
// Slack의 channel_not_found와 같은 의미로 취급합니다.
var channelGonePhrases = []string{
	"chat not found",
	"bot was kicked",
	"bot was blocked by the user",
	"group chat was upgraded to a supergroup",
}

// htmlParseFailurePhrase HTML 파싱 모드에서 태그가 올바르지 않을 때의 응답 문구입니다.
const htmlParseFailurePhrase = "can't parse entities"

// asAPIError 에러 체인에서 tgbotapi.Error를 찾습니다. 값과 포인터 형태를 모두 처리합니다.
func asAPIError(err error) (*tgbotapi.Error, bool) {
	var ptr *tgbotapi.Error
	if errors.As(err, &ptr) {
		return ptr, true
	}

	var val tgbotapi.Error
	if errors.As(err, &val) {
		return &val, true
	}

	return nil, false
}

// normalizeError Bot API 에러를 *delivery.Error로 변환합니다.
func normalizeError(err error) error {
	if err == nil {
		return nil
	}

	apiErr, ok := asAPIError(err)
	if !ok {
		return &delivery.Error{Provider: contract.ProviderTelegram, Cause: err}
	}

	de := &delivery.Error{
		Provider:   contract.ProviderTelegram,
		StatusCode: apiErr.Code,
		Message:    apiErr.Message,
		Cause:      err,
	}

	lower := strings.ToLower(apiErr.Message)
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		de.Code = delivery.CodeRateLimited
		de.RetryAfter = time.Duration(apiErr.RetryAfter) * time.Second
	case containsAny(lower, channelGonePhrases):
		de.Code = delivery.CodeChannelNotFound
	}

	return de
}

func isHTMLParseFailure(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && strings.Contains(strings.ToLower(apiErr.Message), htmlParseFailurePhrase)
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
