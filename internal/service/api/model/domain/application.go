// Package domain API 계층에서 사용하는 도메인 모델을 정의합니다.
package domain

import "github.com/darkkaiser/notify-dispatcher/internal/service/contract"

// Application 알림 API 사용이 허가된 클라이언트 애플리케이션입니다.
type Application struct {
	ID          string // 애플리케이션 식별자
	Title       string // 애플리케이션 이름
	Description string // 애플리케이션 설명

	// DefaultProvider 요청에 provider가 없을 때 사용하는 Provider입니다. 비어 있을 수 있습니다.
	DefaultProvider contract.ExternalProvider

	AppKey string
}
