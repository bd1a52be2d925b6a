package notification

import (
	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
	"github.com/darkkaiser/notify-dispatcher/internal/service/contract"
)

var (
	// ErrServiceNotRunning 서비스가 시작되지 않았거나 종료 절차가 진행 중이어서 요청을 처리할 수 없을 때 반환됩니다.
	ErrServiceNotRunning = apperrors.New(apperrors.Unavailable, "알림 서비스가 실행 중이 아니어서 요청을 처리할 수 없습니다")

	// ErrNoProviders 등록된 Provider가 하나도 없을 때 반환됩니다.
	ErrNoProviders = apperrors.New(apperrors.Unavailable, "등록된 알림 Provider가 없습니다. 설정 파일을 확인해 주세요")
)

// NewErrProviderNotFound 등록되지 않은 Provider가 요청되었을 때 반환하는 에러를 생성합니다.
func NewErrProviderNotFound(provider contract.ExternalProvider) error {
	return apperrors.Newf(apperrors.NotFound, "등록되지 않은 알림 Provider입니다: '%s'", provider)
}

// NewErrDuplicateProvider 같은 Provider가 두 번 등록되었을 때 반환하는 에러를 생성합니다.
func NewErrDuplicateProvider(provider contract.ExternalProvider) error {
	return apperrors.Newf(apperrors.Conflict, "이미 등록된 알림 Provider입니다: '%s'", provider)
}

// NewErrIntegrationNotFound 설정에 없는 Integration ID가 요청되었을 때 반환하는 에러를 생성합니다.
func NewErrIntegrationNotFound(integrationID string) error {
	return apperrors.Newf(apperrors.NotFound, "등록되지 않은 Integration입니다: '%s'", integrationID)
}
