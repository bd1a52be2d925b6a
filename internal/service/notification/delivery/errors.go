package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
)

// 메신저 API 에러를 플랫폼에 관계없이 분류하기 위한 코드입니다.
// Provider 어댑터는 플랫폼 고유의 에러를 이 코드로 정규화합니다.
const (
	// CodeChannelNotFound 채널(채팅방)이 삭제되었거나 봇이 더 이상 접근할 수 없습니다.
	CodeChannelNotFound = "channel_not_found"

	// CodeExpiredURL 응답 URL(response_url)의 유효 기간이 지났습니다.
	CodeExpiredURL = "expired_url"

	// CodeRateLimited 플랫폼이 호출 빈도를 제한했습니다.
	CodeRateLimited = "ratelimited"

	// CodeCircuitOpen 연속된 실패로 회로 차단기가 열려 호출을 시도하지 않았습니다.
	CodeCircuitOpen = "circuit_open"

	// CodeUnexpectedResponse 응답 본문을 해석할 수 없습니다.
	CodeUnexpectedResponse = "unexpected_response"
)

// benignCodes 정상적인 운영 중에도 발생하는 실패로 간주하여 로그 없이 무시하는 코드입니다.
var benignCodes = map[string]struct{}{
	CodeChannelNotFound: {},
	CodeExpiredURL:      {},
}

// benignSubstrings 구조화된 코드가 없는 에러에 적용하는 문자열 매칭 규칙입니다.
var benignSubstrings = []string{
	"Expired url",
	"channel_not_found",
}

// Error 메신저 API 호출 실패를 표현하는 구조화된 에러입니다.
type Error struct {
	Provider   contract.ExternalProvider
	Code       string // 플랫폼이 돌려준 에러 코드 (없으면 빈 문자열)
	StatusCode int    // HTTP 상태 코드 (알 수 없으면 0)
	Message    string
	RetryAfter time.Duration
	Cause      error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}

	switch {
	case e.Code != "" && msg != "" && msg != e.Code:
		return fmt.Sprintf("%s api error: %s: %s", e.Provider, e.Code, msg)
	case e.Code != "":
		return fmt.Sprintf("%s api error: %s", e.Provider, e.Code)
	default:
		return fmt.Sprintf("%s api error: %s", e.Provider, msg)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsBenign 에러가 로그 없이 무시해도 되는 예상된 실패인지 판단합니다.
//
// 구조화된 코드가 있으면 코드로만 판단하고, 코드가 없을 때만 에러 문자열의 첫 줄에서
// "Expired url", "channel_not_found"를 찾습니다.
func IsBenign(err error) bool {
	if err == nil {
		return false
	}

	var de *Error
	if errors.As(err, &de) && de.Code != "" {
		_, ok := benignCodes[de.Code]
		return ok
	}

	line, _, _ := strings.Cut(err.Error(), "\n")
	for _, s := range benignSubstrings {
		if strings.Contains(line, s) {
			return true
		}
	}

	return false
}

// Classify 전송 결과 에러를 결과 상태로 변환합니다.
func Classify(err error) contract.DeliveryStatus {
	switch {
	case err == nil:
		return contract.StatusDelivered
	case IsBenign(err):
		return contract.StatusSuppressed
	default:
		return contract.StatusFailed
	}
}
