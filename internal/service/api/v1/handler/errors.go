package handler

import (
	"fmt"

	"github.com/darkkaiser/notify-dispatcher/internal/service/api/httputil"
)

var (
	// ErrInvalidBody 요청 본문을 JSON으로 해석할 수 없을 때 반환됩니다.
	ErrInvalidBody = httputil.NewBadRequestError("요청 본문을 파싱할 수 없습니다. JSON 형식을 확인해주세요")

	// ErrUnauthenticated 인증 미들웨어를 거치지 않은 요청이 핸들러에 도달했을 때 반환됩니다.
	ErrUnauthenticated = httputil.NewUnauthorizedError("인증되지 않은 요청입니다")

	// ErrProviderRequired 요청과 애플리케이션 설정 모두에 Provider가 없을 때 반환됩니다.
	ErrProviderRequired = httputil.NewBadRequestError("provider는 필수입니다 (애플리케이션에 기본 Provider가 설정되어 있지 않습니다)")
)

// NewErrAppIDMismatch 요청 본문의 application_id가 인증된 애플리케이션과 다를 때 반환하는 에러를 생성합니다.
func NewErrAppIDMismatch(reqAppID, authAppID string) error {
	return httputil.NewBadRequestError(fmt.Sprintf("요청 본문의 application_id와 인증된 애플리케이션이 일치하지 않습니다 (요청: %s, 인증: %s)", reqAppID, authAppID))
}

// NewErrValidationFailed 요청 본문 검증 실패 메시지로 400 에러를 생성합니다.
func NewErrValidationFailed(msg string) error {
	return httputil.NewBadRequestError(msg)
}
