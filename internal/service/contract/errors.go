package contract

import (
	apperrors "github.com/darkkaiser/notify-dispatcher/internal/pkg/errors"
)

var (
	// ErrNotificationRequired 알림 객체가 전달되지 않았을 때 반환됩니다.
	ErrNotificationRequired = apperrors.New(apperrors.InvalidInput, "알림 정보는 필수입니다")

	// ErrOrganizationRequired 알림의 조직 ID가 비어 있을 때 반환됩니다.
	ErrOrganizationRequired = apperrors.New(apperrors.InvalidInput, "알림의 organization_id는 비워둘 수 없습니다")

	// ErrMetricsKeyRequired 알림의 metrics_key가 비어 있을 때 반환됩니다.
	ErrMetricsKeyRequired = apperrors.New(apperrors.InvalidInput, "알림의 metrics_key는 비워둘 수 없습니다")

	// ErrMessageRequired 알림의 제목과 본문이 모두 비어 있을 때 반환됩니다.
	ErrMessageRequired = apperrors.New(apperrors.InvalidInput, "알림의 제목과 본문이 모두 비어 있습니다")
)
