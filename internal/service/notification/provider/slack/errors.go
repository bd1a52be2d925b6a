package slack

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
	"github.com/darkkaiser/notify-dispatcher/internal/service/notification/delivery"
	"github.com/slack-go/slack"
	"github.com/tidwall/gjson"
)

// expiredURLBody response_url의 유효 기간이 지났을 때 Slack이 돌려주는 본문입니다.
const expiredURLBody = "Expired url"

// normalizeError slack-go 클라이언트의 에러를 *delivery.Error로 변환합니다.
func normalizeError(err error) error {
	if err == nil {
		return nil
	}

	var rateLimited *slack.RateLimitedError
	if errors.As(err, &rateLimited) {
		return &delivery.Error{
			Provider:   contract.ProviderSlack,
			Code:       delivery.CodeRateLimited,
			StatusCode: http.StatusTooManyRequests,
			RetryAfter: rateLimited.RetryAfter,
			Cause:      err,
		}
	}

	var apiErr slack.SlackErrorResponse
	if errors.As(err, &apiErr) {
		return &delivery.Error{
			Provider: contract.ProviderSlack,
			Code:     apiErr.Err,
			Cause:    err,
		}
	}

	var statusErr slack.StatusCodeError
	if errors.As(err, &statusErr) {
		return &delivery.Error{
			Provider:   contract.ProviderSlack,
			StatusCode: statusErr.Code,
			Message:    statusErr.Status,
			Cause:      err,
		}
	}

	return &delivery.Error{Provider: contract.ProviderSlack, Cause: err}
}

// parseHTTPResponse chat.postMessage 또는 response_url 응답을 해석합니다.
//
// JSON 응답은 ok/error 필드로 판단합니다. response_url은 성공 시 "ok", 만료 시 "Expired url"을
// 일반 텍스트로 돌려주므로 JSON이 아닌 본문도 처리합니다.
func parseHTTPResponse(statusCode int, header http.Header, body []byte) error {
	if statusCode == http.StatusTooManyRequests {
		retryAfter, _ := strconv.Atoi(header.Get("Retry-After"))
		return &delivery.Error{
			Provider:   contract.ProviderSlack,
			Code:       delivery.CodeRateLimited,
			StatusCode: statusCode,
			RetryAfter: time.Duration(retryAfter) * time.Second,
		}
	}

	if gjson.ValidBytes(body) {
		result := gjson.ParseBytes(body)
		if ok := result.Get("ok"); ok.Exists() {
			if ok.Bool() {
				return nil
			}
			return &delivery.Error{
				Provider:   contract.ProviderSlack,
				Code:       result.Get("error").String(),
				StatusCode: statusCode,
			}
		}
	}

	text := strings.TrimSpace(string(body))
	success := statusCode >= 200 && statusCode < 300

	switch {
	case success && strings.EqualFold(text, "ok"):
		return nil
	case text == expiredURLBody:
		return &delivery.Error{Provider: contract.ProviderSlack, Code: delivery.CodeExpiredURL, StatusCode: statusCode, Message: text}
	case success:
		return &delivery.Error{Provider: contract.ProviderSlack, Code: delivery.CodeUnexpectedResponse, StatusCode: statusCode, Message: text}
	default:
		// 코드가 없으므로 IsBenign은 본문 문자열로 판단합니다.
		return &delivery.Error{Provider: contract.ProviderSlack, StatusCode: statusCode, Message: text}
	}
}
