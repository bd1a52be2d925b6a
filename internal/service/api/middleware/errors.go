package middleware

import (
	"net/http"

	"github.com/darkkaiser/notify-dispatcher/internal/service/api/constants"
	"github.com/darkkaiser/notify-dispatcher/internal/service/api/httputil"
)

var (
	// ErrAppKeyRequired X-App-Key 헤더와 app_key 쿼리 파라미터가 모두 없을 때 반환됩니다.
	ErrAppKeyRequired = httputil.NewBadRequestError("app_key는 필수입니다 (X-App-Key 헤더 또는 app_key 쿼리 파라미터)")

	// ErrApplicationIDRequired X-Application-Id 헤더와 요청 본문 모두에 application_id가 없을 때 반환됩니다.
	ErrApplicationIDRequired = httputil.NewBadRequestError("application_id는 필수입니다")

	ErrBodyTooLarge   = httputil.NewHTTPError(http.StatusRequestEntityTooLarge, "요청 본문이 너무 큽니다")
	ErrBodyReadFailed = httputil.NewBadRequestError("요청 본문을 읽을 수 없습니다")
	ErrEmptyBody      = httputil.NewBadRequestError("요청 본문이 비어있습니다")
	ErrInvalidJSON    = httputil.NewBadRequestError("잘못된 JSON 형식입니다")

	ErrRateLimitExceeded    = httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)
	ErrUnsupportedMediaType = httputil.NewHTTPError(http.StatusUnsupportedMediaType, constants.ErrMsgUnsupportedMediaType)
)
